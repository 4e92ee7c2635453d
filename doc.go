// Package inkwell is the animation runtime behind animated UI scenes such as
// words that bleed in and out of ink, or a panel that springs open to fill
// the space measured for it.
//
// inkwell drives numbers, not pixels. A host (an [Ebitengine] game, a test,
// a terminal tracer) calls [Runtime.Update] once per tick and reads the
// animated values back out.
//
// # Quick start
//
//	rt := inkwell.NewRuntime(inkwell.RuntimeConfig{MaxDelta: 0.1})
//	width, _ := inkwell.NewSpring(inkwell.DefaultSpringConfig, 0)
//	rt.Add(width)
//	width.SetTarget(320)
//	for !width.IsSettled() {
//		rt.Update(1.0 / 60)
//	}
//
// # Building blocks
//
// [Spring] is a damped harmonic oscillator configured in visual terms
// ([SpringConfig.VisualDuration], [SpringConfig.Bounce]). Retargeting keeps
// position and velocity; only [Spring.Jump] moves it discontinuously.
//
// [Sequence] plays a [Track] of keyframes once, with a cubic Bezier or named
// [Easing] per segment. [Playback] runs a sequence against frames.
//
// [Value] is a single animated scalar driven by at most one spring or
// keyframe run at a time; starting a new run discards the old one.
//
// [Presence] gates the removal of an entity: exiting entities stay alive
// until their exit animations finish or the exit watchdog fires, and
// OnExitComplete is called exactly once.
//
// [Oracle] measures host elements once per layout pass, before animations
// tick, so springs react to fresh geometry in the same frame.
//
// [DeriveFilterParameters] converts blur and threshold into the coefficients
// of a blur, alpha threshold and flood fill composite. Package ebitenfx
// renders that composite; package scene wires everything into demo scenes.
//
// [Ebitengine]: https://ebitengine.org
package inkwell
