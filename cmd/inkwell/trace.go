package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/phanxgames/inkwell"
	"github.com/phanxgames/inkwell/scene"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// plotOptions are shared by every trace subcommand.
type plotOptions struct {
	width, height int
	seconds       float64
}

func (o *plotOptions) register(cmd *cobra.Command, seconds float64) {
	cmd.Flags().IntVar(&o.width, "width", 72, "plot width in columns")
	cmd.Flags().IntVar(&o.height, "height", 12, "plot height in rows")
	cmd.Flags().Float64Var(&o.seconds, "time", seconds, "seconds to simulate")
}

func newTraceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "simulate frame by frame and plot the result",
	}
	cmd.AddCommand(newTraceSpringCmd(a), newTraceKeyframesCmd(a), newTraceSceneCmd(a))
	return cmd
}

func newTraceSpringCmd(a *app) *cobra.Command {
	cfg := inkwell.DefaultSpringConfig
	var (
		opts     plotOptions
		from, to float64
	)
	cmd := &cobra.Command{
		Use:   "spring",
		Short: "plot a spring moving from one value to another",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			series, err := traceSpring(cfg, from, to, opts.seconds, a.cfg.FrameDelta())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render("spring"))
			fmt.Fprintln(out, strings.Join([]string{
				field("omega", num(round3(cfg.AngularFrequency()))),
				field("zeta", num(round3(cfg.DampingRatio()))),
				field("settled after", settledAfter(series, to, a.cfg.FrameDelta())),
			}, "  "))
			return plot(out, series, opts, fmt.Sprintf("%g -> %g", from, to))
		},
	}
	opts.register(cmd, 1.5)
	cmd.Flags().Float64Var(&cfg.VisualDuration, "duration", cfg.VisualDuration, "visual duration in seconds")
	cmd.Flags().Float64Var(&cfg.Bounce, "bounce", cfg.Bounce, "bounce in [-1, 1]")
	cmd.Flags().Float64Var(&cfg.RestDelta, "rest-delta", cfg.RestDelta, "settle distance")
	cmd.Flags().Float64Var(&cfg.RestSpeed, "rest-speed", cfg.RestSpeed, "settle speed")
	cmd.Flags().Float64Var(&from, "from", 0, "start value")
	cmd.Flags().Float64Var(&to, "to", 100, "target value")
	return cmd
}

func newTraceKeyframesCmd(a *app) *cobra.Command {
	var (
		opts     plotOptions
		values   []float64
		offsets  []float64
		duration float64
		easing   string
	)
	cmd := &cobra.Command{
		Use:   "keyframes",
		Short: "plot a keyframe track",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, ok := inkwell.EasingByName(easing)
			if !ok {
				return fmt.Errorf("unknown easing %q", easing)
			}
			track := inkwell.Track{Values: values, Offsets: offsets, Duration: duration, Easing: e}
			series, err := traceKeyframes(track, opts.seconds, a.cfg.FrameDelta())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render("keyframes"))
			fmt.Fprintln(out, field("easing", easing)+"  "+field("duration", num(duration)+"s"))
			return plot(out, series, opts, fmt.Sprint(values))
		},
	}
	opts.register(cmd, 0)
	cmd.Flags().Float64SliceVar(&values, "values", []float64{0, 100}, "keyframe values")
	cmd.Flags().Float64SliceVar(&offsets, "offsets", nil, "keyframe offsets in [0, 1], one per value")
	cmd.Flags().Float64Var(&duration, "duration", 1, "track duration in seconds")
	cmd.Flags().StringVar(&easing, "ease", "ease", "easing curve name")
	return cmd
}

func newTraceSceneCmd(a *app) *cobra.Command {
	var (
		opts          plotOptions
		script        string
		channels      []string
		sets          []string
		toggles       []float64
		width, height float64
	)
	cmd := &cobra.Command{
		Use:   "scene <name>",
		Short: "run a scene headlessly and plot its channels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := parseSets(sets)
			if err != nil {
				return err
			}
			sc, err := scene.New(args[0], overrides)
			if err != nil {
				return err
			}
			rt := inkwell.NewRuntime(a.cfg)
			if err := sc.Mount(rt); err != nil {
				return err
			}
			defer sc.Close()
			sc.Layout(width, height)

			rec := newRecorder()
			dt := a.cfg.FrameDelta()
			if script != "" {
				data, err := os.ReadFile(script)
				if err != nil {
					return err
				}
				r, err := scene.LoadScript(data)
				if err != nil {
					return err
				}
				maxFrames := int(math.Max(opts.seconds, 60) / dt)
				if err := scene.Play(sc, rt, r, dt, maxFrames, func(inkwell.Frame) { rec.record(sc.Channels()) }); err != nil {
					return err
				}
				for _, m := range r.Marks() {
					a.logger.Info("mark", zap.String("label", m.Label), zap.Uint64("frame", m.Frame.Index),
						zap.Any("channels", m.Channels))
				}
			} else {
				runFor(sc, rt, opts.seconds, dt, toggles, rec)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render(scene.Title(args[0])))
			fmt.Fprintln(out, field("frames", strconv.Itoa(rec.frames)))
			names := rec.names()
			if len(channels) > 0 {
				names = channels
			}
			for _, name := range names {
				series, ok := rec.series[name]
				if !ok {
					return fmt.Errorf("scene %s has no channel %q (have %s)", args[0], name, strings.Join(rec.names(), ", "))
				}
				if err := plot(out, series, opts, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
	opts.register(cmd, 4)
	cmd.Flags().StringVar(&script, "script", "", "YAML step script to play instead of a free run")
	cmd.Flags().StringSliceVar(&channels, "channel", nil, "channels to plot (default all)")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "tunable override as name=value, repeatable")
	cmd.Flags().Float64SliceVar(&toggles, "toggle-at", nil, "seconds at which to toggle the scene")
	cmd.Flags().Float64Var(&width, "viewport-width", 1000, "viewport width")
	cmd.Flags().Float64Var(&height, "viewport-height", 800, "viewport height")
	return cmd
}

// traceSpring samples a spring once per frame.
func traceSpring(cfg inkwell.SpringConfig, from, to, seconds, dt float64) ([]float64, error) {
	s, err := inkwell.NewSpring(cfg, from)
	if err != nil {
		return nil, err
	}
	s.SetTarget(to)
	n := frameCount(seconds, dt)
	series := make([]float64, 0, n+1)
	series = append(series, from)
	for i := 0; i < n; i++ {
		series = append(series, s.Tick(dt))
	}
	return series, nil
}

// traceKeyframes samples a track at frame boundaries. A zero seconds
// samples exactly the track's duration.
func traceKeyframes(track inkwell.Track, seconds, dt float64) ([]float64, error) {
	seq, err := inkwell.NewSequence(track)
	if err != nil {
		return nil, err
	}
	if seconds <= 0 {
		seconds = seq.Duration()
	}
	n := frameCount(seconds, dt)
	series := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		series = append(series, seq.ValueAt(float64(i)*dt))
	}
	return series, nil
}

// runFor advances rt for seconds, toggling sc at each requested time.
func runFor(sc scene.Scene, rt *inkwell.Runtime, seconds, dt float64, toggles []float64, rec *recorder) {
	pending := append([]float64(nil), toggles...)
	sort.Float64s(pending)
	for i, n := 0, frameCount(seconds, dt); i < n; i++ {
		for len(pending) > 0 && pending[0] <= rt.LastFrame().Time {
			sc.Toggle()
			pending = pending[1:]
		}
		rt.Update(dt)
		rec.record(sc.Channels())
	}
}

func frameCount(seconds, dt float64) int {
	if seconds <= 0 || dt <= 0 {
		return 0
	}
	return int(math.Round(seconds / dt))
}

// settledAfter reports the time of the first sample from which the series
// stays on target.
func settledAfter(series []float64, target, dt float64) string {
	for i := range series {
		if tailEquals(series[i:], target) {
			return strconv.FormatFloat(float64(i)*dt, 'f', 3, 64) + "s"
		}
	}
	return "never"
}

func tailEquals(xs []float64, v float64) bool {
	for _, x := range xs {
		if x != v {
			return false
		}
	}
	return len(xs) > 0
}

// recorder collects scene channels frame by frame. A channel that appears
// late is back-filled with its first value, one that disappears repeats its
// last.
type recorder struct {
	series map[string][]float64
	frames int
}

func newRecorder() *recorder {
	return &recorder{series: make(map[string][]float64)}
}

func (r *recorder) record(ch map[string]float64) {
	for name, v := range ch {
		if _, ok := r.series[name]; !ok {
			fill := make([]float64, r.frames, r.frames+64)
			for i := range fill {
				fill[i] = v
			}
			r.series[name] = fill
		}
	}
	for name, s := range r.series {
		v, ok := ch[name]
		if !ok {
			v = s[len(s)-1]
		}
		r.series[name] = append(s, v)
	}
	r.frames++
}

func (r *recorder) names() []string {
	names := make([]string, 0, len(r.series))
	for name := range r.series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// parseSets turns name=value pairs into tunable overrides.
func parseSets(sets []string) (inkwell.Tunables, error) {
	if len(sets) == 0 {
		return nil, nil
	}
	t := inkwell.Tunables{}
	for _, kv := range sets {
		name, raw, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("--set %q: want name=value", kv)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("--set %s: %w", name, err)
		}
		t[name] = inkwell.Tunable{Value: v}
	}
	return t, nil
}

func plot(w io.Writer, series []float64, opts plotOptions, caption string) error {
	if len(series) < 2 {
		return fmt.Errorf("%s: not enough samples to plot", caption)
	}
	chart := asciigraph.Plot(series,
		asciigraph.Width(opts.width),
		asciigraph.Height(opts.height),
		asciigraph.Caption(caption))
	_, err := fmt.Fprintln(w, graphStyle.Render(chart))
	return err
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
