package sim

import "time"

// TimeSource reports the current time.
type TimeSource interface {
	Now() time.Time
}

// Steady is a simulated clock that moves forward by Interval on every
// reading. Headless runs use it to stand in for a display's frame clock.
type Steady struct {
	At       time.Time
	Interval time.Duration
}

func (s *Steady) Now() time.Time {
	s.At = s.At.Add(s.Interval)
	return s.At
}

// Clock turns frame timestamps into deltas. Its first reading after a reset
// yields zero rather than the time since some unrelated earlier frame.
type Clock struct {
	last time.Time
	set  bool
}

// Reset forgets the previous timestamp.
func (c *Clock) Reset() {
	c.last = time.Time{}
	c.set = false
}

// IsSet reports whether a timestamp has been recorded since the last reset.
func (c *Clock) IsSet() bool { return c.set }

// Delta records now and returns the seconds elapsed since the previous
// reading, or 0 for the first reading. Time running backwards also yields 0.
func (c *Clock) Delta(now time.Time) float64 {
	if !c.set {
		c.last = now
		c.set = true
		return 0
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	if dt < 0 {
		return 0
	}
	return dt
}
