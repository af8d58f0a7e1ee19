package sequence

import "github.com/san-kum/holesim/internal/dynamo"

// Visual is the presentation transform layered over the ball's logical
// position. It never feeds back into motion.
type Visual struct {
	Translate dynamo.Vec2
	Scale     dynamo.Vec2
	Alpha     float64
}

func Identity() Visual {
	return Visual{Scale: dynamo.Vec2{X: 1, Y: 1}, Alpha: 1}
}

type Property int

const (
	TranslateX Property = iota
	TranslateY
	ScaleX
	ScaleY
	Alpha
)

func (v *Visual) set(p Property, value float64) {
	switch p {
	case TranslateX:
		v.Translate.X = value
	case TranslateY:
		v.Translate.Y = value
	case ScaleX:
		v.Scale.X = value
	case ScaleY:
		v.Scale.Y = value
	case Alpha:
		v.Alpha = value
	}
}

// Tween interpolates one property over Duration seconds.
type Tween struct {
	Property Property
	From     float64
	To       float64
	Duration float64
	Ease     Easing
}

func (tw Tween) valueAt(elapsed float64) float64 {
	if tw.Duration <= 0 || elapsed >= tw.Duration {
		return tw.To
	}
	t := elapsed / tw.Duration
	ease := tw.Ease
	if ease == nil {
		ease = EaseInOut
	}
	return Lerp(tw.From, tw.To, ease(t))
}

// Step is a group of tweens that run together. Steps of a script run one
// after another.
type Step []Tween

func (s Step) duration() float64 {
	d := 0.0
	for _, tw := range s {
		if tw.Duration > d {
			d = tw.Duration
		}
	}
	return d
}

// Script is a named, ordered list of steps.
type Script struct {
	Name  string
	Steps []Step
}

func (s Script) Duration() float64 {
	d := 0.0
	for _, st := range s.Steps {
		d += st.duration()
	}
	return d
}

// player runs a script against a Visual.
type player struct {
	script  Script
	step    int
	elapsed float64
}

// advance applies dt seconds and reports whether the script has finished.
func (p *player) advance(v *Visual, dt float64) bool {
	remaining := dt
	for p.step < len(p.script.Steps) {
		st := p.script.Steps[p.step]
		p.elapsed += remaining
		for _, tw := range st {
			v.set(tw.Property, tw.valueAt(p.elapsed))
		}
		d := st.duration()
		if p.elapsed < d {
			return false
		}
		remaining = p.elapsed - d
		p.elapsed = 0
		p.step++
		if remaining <= 0 && p.step < len(p.script.Steps) {
			return false
		}
	}
	return true
}
