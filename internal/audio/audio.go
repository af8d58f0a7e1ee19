package audio

import (
	"log/slog"
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/san-kum/holesim/internal/engine"
	"github.com/san-kum/holesim/internal/logging"
)

const (
	SampleRate = 44100
	BufferSize = 512
	maxVoices  = 16
)

// Chime pitches in Hz.
const (
	BounceNote    = 659.25
	CaptureNote   = 196.00
	ReappearNote  = 880.00
	bounceRefVel  = 3000.0
	captureGain   = 0.6
	reappearGain  = 0.25
	voiceDecay    = 6.0
	filterCutoff  = 2400.0
	masterVolume  = 0.3
	silenceCutoff = 1e-4
)

type voice struct {
	freq, gain, age float64
}

// Processor mixes short decaying chimes into a stereo portaudio stream.
// It implements engine.Observer so it can be attached to a controller.
type Processor struct {
	Stream *portaudio.Stream
	Active bool

	mu     sync.Mutex
	voices []voice
	filter [2]float64
	log    *slog.Logger
}

func NewProcessor(log *slog.Logger) *Processor {
	if log == nil {
		log = logging.Discard().Logger
	}
	return &Processor{log: log, voices: make([]voice, 0, maxVoices)}
}

func (a *Processor) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.ProcessAudio)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}
	a.log.Debug("audio stream started", "rate", SampleRate, "buffer", BufferSize)
	a.Stream = stream
	a.Active = true
	return nil
}

func (a *Processor) Stop() {
	if a.Stream != nil {
		a.Stream.Stop()
		a.Stream.Close()
		a.Stream = nil
	}
	if a.Active {
		portaudio.Terminate()
	}
	a.Active = false
}

// Trigger starts a chime. The oldest voice is dropped when all are busy.
func (a *Processor) Trigger(freq, gain float64) {
	if gain <= 0 || freq <= 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.voices) == maxVoices {
		a.voices = a.voices[1:]
	}
	a.voices = append(a.voices, voice{freq: freq, gain: math.Min(gain, 1)})
}

// Voices reports how many chimes are still sounding.
func (a *Processor) Voices() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.voices)
}

func (a *Processor) OnEvent(e engine.Event) {
	switch e.Kind {
	case engine.EventHandoff:
		a.Trigger(BounceNote, 0.15+0.35*math.Min(math.Abs(e.Velocity)/bounceRefVel, 1))
	case engine.EventCaptured:
		a.Trigger(CaptureNote, captureGain)
		a.Trigger(CaptureNote*1.5, captureGain/2)
	case engine.EventReappeared:
		a.Trigger(ReappearNote, reappearGain)
	}
}

func (a *Processor) OnFrame(engine.Snapshot) {}

func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

func lpf(sample, cutoff, dt, state float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	return state + alpha*(sample-state)
}

// ProcessAudio is the portaudio callback. Left and right channels are
// detuned slightly against each other.
func (a *Processor) ProcessAudio(out [][]float32) {
	const dt = 1.0 / SampleRate
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range out[0] {
		var l, r float64
		for j := range a.voices {
			v := &a.voices[j]
			env := v.gain * math.Exp(-voiceDecay*v.age)
			l += env * triangle(v.age*v.freq*0.999)
			r += env * triangle(v.age*v.freq*1.001)
			v.age += dt
		}
		a.filter[0] = lpf(l, filterCutoff, dt, a.filter[0])
		a.filter[1] = lpf(r, filterCutoff, dt, a.filter[1])
		out[0][i] = float32(a.filter[0] * masterVolume)
		out[1][i] = float32(a.filter[1] * masterVolume)
	}

	live := a.voices[:0]
	for _, v := range a.voices {
		if v.gain*math.Exp(-voiceDecay*v.age) > silenceCutoff {
			live = append(live, v)
		}
	}
	a.voices = live
}
