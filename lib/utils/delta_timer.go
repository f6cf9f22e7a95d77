package utils

import "time"

// DeltaTimer measures the time between successive frames. The zero value
// reports a zero delta for the first frame.
type DeltaTimer struct {
	time.Time
}

func (d *DeltaTimer) Next() time.Duration {
	return d.NextAt(time.Now())
}

// NextAt is Next with the frame timestamp supplied by the caller, so the
// whole frame sees one timestamp.
func (d *DeltaTimer) NextAt(now time.Time) time.Duration {
	defer d.Set(now)
	if d.IsZero() {
		return 0
	}
	return now.Sub(d.Time)
}

func (d *DeltaTimer) Set(t time.Time) {
	d.Time = t
}

func (d *DeltaTimer) Reset() {
	d.Time = time.Time{}
}
