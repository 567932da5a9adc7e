package pipeline

import "time"

// AdaptiveBatchSize tracks how many sub-steps to run per host-loop
// iteration so that each batch's wall-clock duration stays within a
// target band — large enough to amortize scheduling overhead, small
// enough that a host driving a UI or a progress observer stays
// responsive. It holds an exponential moving average of measured
// batch durations and resizes the batch when the average drifts
// outside the band.
type AdaptiveBatchSize struct {
	size       int
	min        int
	max        int
	targetMin  time.Duration
	targetMax  time.Duration
	alpha      float64
	emaMs      float64
	haveSample bool
}

// NewAdaptiveBatchSize builds an AdaptiveBatchSize from engine tuning
// values. initial/min/max are sub-step counts; targetMinMs/targetMaxMs
// are the duration band in milliseconds; alpha is the EMA smoothing
// factor.
func NewAdaptiveBatchSize(initial, min, max int, targetMinMs, targetMaxMs, alpha float64) *AdaptiveBatchSize {
	if initial < 1 {
		initial = 1
	}
	return &AdaptiveBatchSize{
		size:      initial,
		min:       min,
		max:       max,
		targetMin: durationMs(targetMinMs),
		targetMax: durationMs(targetMaxMs),
		alpha:     alpha,
	}
}

func durationMs(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

// BatchSize returns the current recommended batch size.
func (a *AdaptiveBatchSize) BatchSize() int { return a.size }

// ReportBatch feeds back the measured duration of a just-executed
// batch and resizes the next batch: halve (floor at min) if the
// smoothed duration exceeds the target band's max, grow by one (cap
// at max) if it falls under the band's min, otherwise hold steady.
func (a *AdaptiveBatchSize) ReportBatch(elapsed time.Duration) {
	ms := float64(elapsed) / float64(time.Millisecond)
	if !a.haveSample {
		a.emaMs = ms
		a.haveSample = true
	} else {
		a.emaMs = a.alpha*ms + (1-a.alpha)*a.emaMs
	}

	emaDur := durationMs(a.emaMs)
	switch {
	case emaDur > a.targetMax:
		a.size = a.size / 2
		if a.size < a.min {
			a.size = a.min
		}
	case emaDur < a.targetMin:
		a.size++
		if a.size > a.max {
			a.size = a.max
		}
	}
}

// Reset restores the batch size to initial (at least 1) and clears
// the EMA, for a fresh run.
func (a *AdaptiveBatchSize) Reset(initial int) {
	if initial < 1 {
		initial = 1
	}
	a.size = initial
	a.emaMs = 0
	a.haveSample = false
}
