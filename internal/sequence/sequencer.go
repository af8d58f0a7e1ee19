// Package sequence runs the scripted capture and reappear animations on
// the ball's visual transform.
//
// Scripts are advanced by the same frame clock as the motion engine. A
// script either runs to completion, which fires its completion callback,
// or is aborted, which does not.
package sequence

import (
	"time"

	"github.com/san-kum/holesim/internal/dynamo"
)

const (
	DefaultCaptureDuration  = 300 * time.Millisecond
	DefaultReappearDuration = 300 * time.Millisecond

	CaptureScale = 0.5

	ScriptCapture  = "capture"
	ScriptReappear = "reappear"
)

type Options struct {
	CaptureDuration  time.Duration
	ReappearDuration time.Duration
	Ease             Easing
}

func DefaultOptions() Options {
	return Options{
		CaptureDuration:  DefaultCaptureDuration,
		ReappearDuration: DefaultReappearDuration,
		Ease:             EaseInOut,
	}
}

type Sequencer struct {
	opts   Options
	visual Visual
	active *player
	done   func()
}

func New(opts Options) *Sequencer {
	if opts.Ease == nil {
		opts.Ease = EaseInOut
	}
	return &Sequencer{opts: opts, visual: Identity()}
}

func (s *Sequencer) Visual() Visual { return s.visual }
func (s *Sequencer) Running() bool  { return s.active != nil }

// Active is the name of the running script, or "".
func (s *Sequencer) Active() string {
	if s.active == nil {
		return ""
	}
	return s.active.script.Name
}

// CaptureScript translates the ball by offset, then fades it out while
// shrinking it to half size.
func (s *Sequencer) CaptureScript(offset dynamo.Vec2) Script {
	d := s.opts.CaptureDuration.Seconds()
	from := s.visual.Translate
	return Script{
		Name: ScriptCapture,
		Steps: []Step{
			{
				{Property: TranslateX, From: from.X, To: offset.X, Duration: d, Ease: s.opts.Ease},
				{Property: TranslateY, From: from.Y, To: offset.Y, Duration: d, Ease: s.opts.Ease},
			},
			{
				{Property: Alpha, From: 1, To: 0, Duration: d, Ease: s.opts.Ease},
				{Property: ScaleX, From: 1, To: CaptureScale, Duration: d, Ease: s.opts.Ease},
				{Property: ScaleY, From: 1, To: CaptureScale, Duration: d, Ease: s.opts.Ease},
			},
		},
	}
}

func (s *Sequencer) ReappearScript() Script {
	d := s.opts.ReappearDuration.Seconds()
	return Script{
		Name: ScriptReappear,
		Steps: []Step{
			{{Property: Alpha, From: 0, To: 1, Duration: d, Ease: s.opts.Ease}},
		},
	}
}

// Capture starts the capture script; done runs once it completes.
func (s *Sequencer) Capture(offset dynamo.Vec2, done func()) {
	s.Play(s.CaptureScript(offset), done)
}

// Reappear starts the fade-in script; done runs once it completes.
func (s *Sequencer) Reappear(done func()) {
	s.Play(s.ReappearScript(), done)
}

// Play replaces any running script without completing it.
func (s *Sequencer) Play(script Script, done func()) {
	s.active = &player{script: script}
	s.done = done
}

// ResetTransform returns translation and scale to identity, leaving alpha.
func (s *Sequencer) ResetTransform() {
	s.visual.Translate = dynamo.Vec2{}
	s.visual.Scale = dynamo.Vec2{X: 1, Y: 1}
}

// Abort drops the running script without firing its callback.
func (s *Sequencer) Abort() {
	s.active = nil
	s.done = nil
}

// Reset aborts and restores the identity transform.
func (s *Sequencer) Reset() {
	s.Abort()
	s.visual = Identity()
}

// Advance moves the running script forward by dt seconds. The completion
// callback runs after the script is cleared, so it may start another.
func (s *Sequencer) Advance(dt float64) {
	if s.active == nil {
		return
	}
	if !s.active.advance(&s.visual, dt) {
		return
	}
	done := s.done
	s.active = nil
	s.done = nil
	if done != nil {
		done()
	}
}
