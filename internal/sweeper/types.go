package sweeper

import (
	"context"
	"time"

	"github.com/lotbump/lotbump/pkg/market"
)

// Market is the part of market.Client the sweeper drives.
type Market interface {
	DiscoverCategories(ctx context.Context, s *market.Session) ([]string, error)
	Raise(ctx context.Context, s *market.Session, categoryURL string) (market.Result, error)
}

// Clock reports the current wall-clock time.
type Clock interface {
	Now() time.Time
}

// Sleeper blocks for d or until ctx is done, whichever comes first.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// Report summarises one completed sweep.
type Report struct {
	Categories int
	Raised     int
	Failed     int
	// Resubmitted counts attempts the site asked to confirm with a node
	// selection. They are also counted as Raised or Failed.
	Resubmitted int
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type timerSleeper struct{}

func (timerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
