package gesture

import "time"

// MoveSample is one recorded drag position.
type MoveSample struct {
	At   time.Time
	X, Y float64
}

// sampler keeps the recent drag positions used to estimate release velocity.
// Averaging over a short window instead of the last two samples keeps a tiny
// reverse motion right before release from flipping the coast direction.
type sampler struct {
	samples []MoveSample
}

func (s *sampler) reset() {
	s.samples = s.samples[:0]
}

// add appends a sample and drops samples older than the horizon, measured
// from the newest one. The newest sample is always kept.
func (s *sampler) add(at time.Time, x, y float64) {
	s.samples = append(s.samples, MoveSample{At: at, X: x, Y: y})
	drop := 0
	for drop < len(s.samples)-1 && millis(at.Sub(s.samples[drop].At)) > velocityHorizonMs {
		drop++
	}
	if drop > 0 {
		n := copy(s.samples, s.samples[drop:])
		s.samples = s.samples[:n]
	}
}

// velocity returns units per millisecond between the oldest and newest
// samples. Fewer than two samples means no motion.
func (s *sampler) velocity() (vx, vy float64) {
	if len(s.samples) < 2 {
		return 0, 0
	}
	first := s.samples[0]
	last := s.samples[len(s.samples)-1]
	dt := millis(last.At.Sub(first.At))
	if dt < minSampleElapsedMs {
		dt = minSampleElapsedMs
	}
	return finite((last.X - first.X) / dt), finite((last.Y - first.Y) / dt)
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
