package audio

import (
	"testing"
)

func drain(t *testing.T, s interface {
	Stream([][2]float64) (int, bool)
}, limit int) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for total <= limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			for _, v := range buf[i] {
				if v > peak {
					peak = v
				}
				if -v > peak {
					peak = -v
				}
			}
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatalf("stream did not end within %d samples", limit)
	return total, peak
}

func TestCrunchLength(t *testing.T) {
	s := Crunch(SampleRate, 1.0, 42)
	want := SampleRate.N(crunchDuration)

	n, peak := drain(t, s, want*2)
	if n != want {
		t.Errorf("streamed %d samples, want %d", n, want)
	}
	if peak == 0 {
		t.Error("crunch is silent at full volume")
	}
	if peak > 1.0 {
		t.Errorf("peak %f exceeds full scale", peak)
	}
}

func TestCrunchMuted(t *testing.T) {
	s := Crunch(SampleRate, 0, 42)
	if _, peak := drain(t, s, SampleRate.N(crunchDuration)*2); peak != 0 {
		t.Errorf("muted crunch peak = %f, want 0", peak)
	}
}

func TestCrunchDeterministic(t *testing.T) {
	a := Crunch(SampleRate, 0.5, 7)
	b := Crunch(SampleRate, 0.5, 7)

	bufA := make([][2]float64, 256)
	bufB := make([][2]float64, 256)
	a.Stream(bufA)
	b.Stream(bufB)
	for i := range bufA {
		if bufA[i] != bufB[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, bufA[i], bufB[i])
		}
	}
}

func TestPlayerWithoutDeviceIsNoOp(t *testing.T) {
	p := NewBeepPlayer(0.5)
	// Not initialized: must not touch the speaker.
	p.PlayGrowth()
	p.Close()

	var _ Player = p
	var _ Player = Nop{}
}
