package scene

import (
	"github.com/phanxgames/inkwell"
	"go.uber.org/zap"
)

// CyclingWords is the default word list.
var CyclingWords = []string{
	"Granola",
	"Innovation",
	"Creativity",
	"Excellence",
	"Discovery",
	"Adventure",
	"Tomorrow",
}

// WordCycleConfig configures the word cycle.
type WordCycleConfig struct {
	Words    []string
	Interval float64 // seconds between words, >0

	Duration   float64 // enter and exit animation length, >0
	BlurAmount float64 // blur of a word fully out, >=0
	Threshold  float64 // alpha threshold in [0,1]
	Fill       inkwell.Color
	Easing     inkwell.Easing

	// ExitDuration is the watchdog for exiting words. Zero means Duration.
	ExitDuration float64
}

// DefaultWordCycleConfig returns the stock configuration.
func DefaultWordCycleConfig() WordCycleConfig {
	return WordCycleConfig{
		Words:      CyclingWords,
		Interval:   3,
		Duration:   0.6,
		BlurAmount: 8,
		Threshold:  0.8,
		Fill:       inkwell.ColorInk,
		Easing:     inkwell.Ease,
	}
}

func (c WordCycleConfig) validate() error {
	bad := func(field, reason string) error {
		return &inkwell.ConfigError{Component: "word cycle", Field: field, Reason: reason}
	}
	switch {
	case len(c.Words) == 0:
		return bad("words", "must not be empty")
	case !(c.Interval > 0):
		return bad("interval", "must be > 0")
	case !(c.Duration > 0):
		return bad("duration", "must be > 0")
	case !(c.BlurAmount >= 0):
		return bad("blur_amount", "must be >= 0")
	case !(c.Threshold >= 0 && c.Threshold <= 1):
		return bad("threshold", "must be in [0, 1]")
	case !(c.ExitDuration >= 0):
		return bad("exit_duration", "must be >= 0")
	}
	return nil
}

// Word is one mounted word. Exiting words stay in the list until their exit
// completes; they are drawn at the same anchor as the entering word so the
// two overlap (pop layout).
type Word struct {
	Handle inkwell.Handle
	Index  int
	Text   string

	// Filter and Opacity are refreshed after every frame.
	Filter  inkwell.FilterParameters
	Opacity float64

	presence *inkwell.Presence
	blur     *inkwell.Value
	opacity  *inkwell.Value
	filters  inkwell.FilterCache
}

// State returns the word's presence state.
func (w *Word) State() inkwell.PresenceState { return w.presence.State() }

// Blur returns the word's current blur radius.
func (w *Word) Blur() float64 { return w.blur.Get() }

// WordCycle shows one word at a time, replacing it every Interval. Each word
// sharpens out of a blur on enter and dissolves back into it on exit.
type WordCycle struct {
	cfg      WordCycleConfig
	tunables inkwell.Tunables

	rt         *inkwell.Runtime
	sched      *inkwell.Scheduler
	timer      inkwell.TimerID
	removeHook func()

	index   int
	words   []*Word
	anchor  inkwell.Vec2
	mounted bool
}

// NewWordCycle validates cfg and returns an unmounted scene. A scene built
// from a config struct has an empty control surface; New gives it one.
func NewWordCycle(cfg WordCycleConfig) (*WordCycle, error) {
	if cfg.Easing == nil {
		cfg.Easing = inkwell.Ease
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &WordCycle{cfg: cfg, tunables: inkwell.Tunables{}}, nil
}

// NewWordCycleFromTunables builds the scene from the word-cycle control
// surface (duration, blurAmount, threshold).
func NewWordCycleFromTunables(t inkwell.Tunables) (*WordCycle, error) {
	r := tunableReader{t: t, scene: "word cycle"}
	cfg := DefaultWordCycleConfig()
	cfg.Duration = r.get("duration")
	cfg.BlurAmount = r.get("blurAmount")
	cfg.Threshold = r.get("threshold")
	if r.err != nil {
		return nil, r.err
	}
	wc, err := NewWordCycle(cfg)
	if err != nil {
		return nil, err
	}
	wc.tunables = t.Clone()
	return wc, nil
}

// Name implements Scene.
func (wc *WordCycle) Name() string { return "word-cycle" }

// Config returns the current configuration.
func (wc *WordCycle) Config() WordCycleConfig { return wc.cfg }

// Mount starts the cycle with the first word.
func (wc *WordCycle) Mount(rt *inkwell.Runtime) error {
	if wc.mounted {
		return nil
	}
	wc.rt = rt
	wc.sched = inkwell.NewScheduler()
	rt.Add(wc.sched)
	wc.timer = wc.sched.Every(wc.cfg.Interval, wc.advance)
	wc.removeHook = rt.After(wc.derive)
	wc.mounted = true
	if err := wc.mountWord(wc.index); err != nil {
		wc.Close()
		return err
	}
	return nil
}

// Layout centers words in the viewport.
func (wc *WordCycle) Layout(width, height float64) {
	wc.anchor = inkwell.Vec2{X: width / 2, Y: height / 2}
}

// Anchor returns the point every word is centered on.
func (wc *WordCycle) Anchor() inkwell.Vec2 { return wc.anchor }

// Toggle skips to the next word and restarts the interval.
func (wc *WordCycle) Toggle() {
	if !wc.mounted || wc.sched == nil {
		return
	}
	wc.sched.Cancel(wc.timer)
	wc.advance()
	wc.timer = wc.sched.Every(wc.cfg.Interval, wc.advance)
}

func (wc *WordCycle) advance() {
	if cur := wc.Current(); cur != nil {
		cur.presence.SetPresent(false)
	}
	wc.index = (wc.index + 1) % len(wc.cfg.Words)
	if err := wc.mountWord(wc.index); err != nil {
		inkwell.Logger().Error("word cycle: mount word", zap.Error(err))
	}
}

func (wc *WordCycle) exitDuration() float64 {
	if wc.cfg.ExitDuration > 0 {
		return wc.cfg.ExitDuration
	}
	return wc.cfg.Duration
}

func (wc *WordCycle) mountWord(i int) error {
	w := &Word{
		Index:   i,
		Text:    wc.cfg.Words[i],
		blur:    inkwell.NewValue(wc.cfg.BlurAmount),
		opacity: inkwell.NewValue(0),
		filters: inkwell.FilterCache{Pipeline: inkwell.FilterPipeline{Center: 0.5}},
	}
	// Enter and Exit read wc.cfg when they run, so tunable changes apply to
	// the next transition.
	p, err := wc.rt.Mount(inkwell.PresenceConfig{
		ExitDuration: wc.exitDuration(),
		Enter: func() []inkwell.Animation {
			wc.animate(w, 0, 1)
			return []inkwell.Animation{w.blur, w.opacity}
		},
		Exit: func() []inkwell.Animation {
			wc.animate(w, wc.cfg.BlurAmount, 0)
			return []inkwell.Animation{w.blur, w.opacity}
		},
		OnExitComplete: func() { wc.forget(w) },
	})
	if err != nil {
		return err
	}
	w.presence = p
	w.Handle = p.Handle()
	wc.refresh(w)
	wc.words = append(wc.words, w)
	inkwell.Logger().Debug("word cycle: mounted",
		zap.Stringer("handle", w.Handle), zap.String("word", w.Text))
	return nil
}

func (wc *WordCycle) animate(w *Word, blur, opacity float64) {
	logAnimation("word cycle", w.blur.AnimateTo(blur, wc.cfg.Duration, wc.cfg.Easing))
	logAnimation("word cycle", w.opacity.AnimateTo(opacity, wc.cfg.Duration, wc.cfg.Easing))
}

func (wc *WordCycle) forget(w *Word) {
	for i, x := range wc.words {
		if x == w {
			wc.words = append(wc.words[:i], wc.words[i+1:]...)
			return
		}
	}
}

func (wc *WordCycle) derive(inkwell.Frame) {
	for _, w := range wc.words {
		wc.refresh(w)
	}
}

func (wc *WordCycle) refresh(w *Word) {
	w.Filter = w.filters.Derive(w.blur.Get(), wc.cfg.Threshold, wc.cfg.Fill)
	w.Opacity = w.opacity.Get()
}

// Words returns the mounted words, oldest first.
func (wc *WordCycle) Words() []*Word {
	return append([]*Word(nil), wc.words...)
}

// Current returns the word that is entering or present, or nil.
func (wc *WordCycle) Current() *Word {
	for i := len(wc.words) - 1; i >= 0; i-- {
		if wc.words[i].presence.IsPresent() {
			return wc.words[i]
		}
	}
	return nil
}

// Set implements Scene. A value that would leave the config invalid is
// rejected with a *inkwell.ConfigError.
func (wc *WordCycle) Set(name string, v float64) (float64, error) {
	return setTunable(wc.tunables, name, v, func(x float64) error {
		cfg := wc.cfg
		switch name {
		case "duration":
			cfg.Duration = x
		case "blurAmount":
			cfg.BlurAmount = x
		case "threshold":
			cfg.Threshold = x
		}
		if err := cfg.validate(); err != nil {
			return err
		}
		wc.cfg = cfg
		return nil
	})
}

// Tunables implements Scene.
func (wc *WordCycle) Tunables() inkwell.Tunables { return wc.tunables.Clone() }

// Channels reports the current word's blur, opacity and transfer intercept,
// the blur of the newest exiting word, and the live word count.
func (wc *WordCycle) Channels() map[string]float64 {
	ch := map[string]float64{"words": float64(len(wc.words))}
	if cur := wc.Current(); cur != nil {
		ch["blur"] = cur.Blur()
		ch["opacity"] = cur.Opacity
		ch["intercept"] = cur.Filter.TransferIntercept
	}
	for i := len(wc.words) - 1; i >= 0; i-- {
		if w := wc.words[i]; w.State() == inkwell.Exiting {
			ch["exiting.blur"] = w.Blur()
			break
		}
	}
	return ch
}

// Close stops the cycle. Live words are sent their exit signal so the
// runtime drops them once their exits finish.
func (wc *WordCycle) Close() {
	if !wc.mounted {
		return
	}
	wc.mounted = false
	wc.sched.Close()
	wc.rt.Remove(wc.sched)
	wc.removeHook()
	for _, w := range wc.Words() {
		w.presence.SetPresent(false)
	}
}
