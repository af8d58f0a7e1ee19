package audio

import (
	"testing"

	"github.com/san-kum/holesim/internal/engine"
)

func buffers(n int) [][]float32 {
	return [][]float32{make([]float32, n), make([]float32, n)}
}

func TestEventsTriggerChimes(t *testing.T) {
	tests := []struct {
		kind engine.EventKind
		want int
	}{
		{engine.EventHandoff, 1},
		{engine.EventCaptured, 2},
		{engine.EventReappeared, 1},
		{engine.EventFlingStarted, 0},
		{engine.EventSettled, 0},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			p := NewProcessor(nil)
			p.OnEvent(engine.Event{Kind: tt.kind, Velocity: 1200})
			if got := p.Voices(); got != tt.want {
				t.Errorf("voices = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestChimeDecaysToSilence(t *testing.T) {
	p := NewProcessor(nil)
	p.Trigger(440, 1)

	out := buffers(BufferSize)
	p.ProcessAudio(out)
	var peak float32
	for _, s := range out[0] {
		if s > peak {
			peak = s
		} else if -s > peak {
			peak = -s
		}
	}
	if peak == 0 {
		t.Fatal("chime produced no signal")
	}

	// three seconds of audio is enough for exp(-6t) to drop below the cutoff
	for i := 0; i < 3*SampleRate/BufferSize; i++ {
		p.ProcessAudio(out)
	}
	if p.Voices() != 0 {
		t.Errorf("voices = %d after decay", p.Voices())
	}
}

func TestVoiceLimit(t *testing.T) {
	p := NewProcessor(nil)
	for i := 0; i < maxVoices+5; i++ {
		p.Trigger(440, 0.5)
	}
	if p.Voices() != maxVoices {
		t.Errorf("voices = %d, want %d", p.Voices(), maxVoices)
	}
	p.Trigger(440, 0)
	if p.Voices() != maxVoices {
		t.Error("silent trigger added a voice")
	}
}
