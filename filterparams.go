package inkwell

import "math"

// TransferSlope is the alpha transfer slope. Alpha goes from fully
// transparent to fully opaque within 1/TransferSlope of the threshold.
const TransferSlope = 100.0

// FilterParameters configures a blur -> alpha threshold -> flood composite:
// Gaussian blur with BlurRadius, then outAlpha = clamp(slope*inAlpha +
// intercept, 0, 1), then FillColor drawn through that alpha mask.
type FilterParameters struct {
	BlurRadius        float64
	TransferSlope     float64
	TransferIntercept float64
	FillColor         Color
}

// Transfer applies the alpha transfer function to a single alpha value.
func (p FilterParameters) Transfer(alpha float64) float64 {
	return Clamp(p.TransferSlope*alpha+p.TransferIntercept, 0, 1)
}

// Threshold recovers the input alpha at which Transfer crosses 0.5.
func (p FilterParameters) Threshold() float64 {
	return (0.5 - p.TransferIntercept) / p.TransferSlope
}

// DeriveFilterParameters maps the animated blur and threshold scalars to
// filter parameters with a zero-centered transfer: intercept is
// -threshold*slope. threshold is clamped to [0, 1] and blur to >= 0. The
// function is pure.
func DeriveFilterParameters(blur, threshold float64, fill Color) FilterParameters {
	return FilterPipeline{}.Derive(blur, threshold, fill)
}

// FilterPipeline derives filter parameters for one scene. Center re-centers
// the transfer when the scene measures threshold from a midpoint: intercept
// becomes (Center - threshold) * slope. The zero pipeline is zero-centered.
type FilterPipeline struct {
	Center float64
}

// Derive is the pipeline's pure mapping.
func (fp FilterPipeline) Derive(blur, threshold float64, fill Color) FilterParameters {
	if math.IsNaN(blur) || blur < 0 {
		blur = 0
	}
	threshold = Clamp(threshold, 0, 1)
	return FilterParameters{
		BlurRadius:        blur,
		TransferSlope:     TransferSlope,
		TransferIntercept: -threshold*TransferSlope + fp.Center*TransferSlope,
		FillColor:         fill,
	}
}

type filterKey struct {
	blur, threshold float64
	fill            Color
}

// FilterCache memoizes the last derivation of a pipeline. Scenes that
// recompute every frame skip the work while the inputs rest.
type FilterCache struct {
	Pipeline FilterPipeline

	key    filterKey
	params FilterParameters
	valid  bool
	hits   int
}

// Derive returns the cached parameters when the inputs are unchanged.
func (c *FilterCache) Derive(blur, threshold float64, fill Color) FilterParameters {
	k := filterKey{blur, threshold, fill}
	if c.valid && k == c.key {
		c.hits++
		return c.params
	}
	c.key = k
	c.params = c.Pipeline.Derive(blur, threshold, fill)
	c.valid = true
	return c.params
}

// Hits returns how many calls were served from the cache.
func (c *FilterCache) Hits() int { return c.hits }
