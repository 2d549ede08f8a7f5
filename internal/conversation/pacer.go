package conversation

import (
	"context"
	"time"
)

// Pacer waits out the typing delay before an assistant message.
type Pacer interface {
	Wait(ctx context.Context, d time.Duration) error
}

// NewPacer scales every delay by scale. A non-positive scale never waits.
func NewPacer(scale float64) Pacer {
	if scale <= 0 {
		return instantPacer{}
	}
	return realtimePacer{scale: scale}
}

type instantPacer struct{}

func (instantPacer) Wait(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

type realtimePacer struct {
	scale float64
}

func (p realtimePacer) Wait(ctx context.Context, d time.Duration) error {
	d = time.Duration(float64(d) * p.scale)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
