package sweeper

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/adhocore/gronx"
	"github.com/lotbump/lotbump/pkg/logger"
	"github.com/lotbump/lotbump/pkg/market"
)

const (
	DefaultDelay   = 3 * time.Second
	DefaultBackoff = 60 * time.Second

	// maxSleepCap bounds a single wait for a cron tick so that wall-clock
	// jumps (NTP steps, DST, system sleep) are noticed within a minute.
	maxSleepCap = 60 * time.Second
)

var ErrNoWait = errors.New("sweeper: cooldown or schedule required")

// Options configures a Sweeper. A zero Delay or Backoff means
// DefaultDelay or DefaultBackoff. Cooldown may be zero and is ignored when
// Schedule is set.
type Options struct {
	Delay    time.Duration
	Cooldown time.Duration
	Backoff  time.Duration
	// Schedule is a 5-field cron expression; when set the sweeper waits
	// for its next tick instead of sleeping Cooldown.
	Schedule string

	Logger  logger.Logger
	Clock   Clock
	Sleeper Sleeper
}

// Sweeper repeatedly raises every category of one authenticated session.
type Sweeper struct {
	market   Market
	session  *market.Session
	delay    time.Duration
	cooldown time.Duration
	backoff  time.Duration
	schedule string
	log      logger.Logger
	clock    Clock
	sleeper  Sleeper
}

// New creates a Sweeper for session. The session is shared read-only.
func New(m Market, session *market.Session, opts Options) (*Sweeper, error) {
	if opts.Schedule == "" && opts.Cooldown < 0 {
		return nil, ErrNoWait
	}
	if opts.Schedule != "" && !gronx.IsValid(opts.Schedule) {
		return nil, fmt.Errorf("sweeper: invalid schedule %q", opts.Schedule)
	}
	s := &Sweeper{
		market:   m,
		session:  session,
		delay:    opts.Delay,
		cooldown: opts.Cooldown,
		backoff:  opts.Backoff,
		schedule: opts.Schedule,
		log:      opts.Logger,
		clock:    opts.Clock,
		sleeper:  opts.Sleeper,
	}
	if s.delay <= 0 {
		s.delay = DefaultDelay
	}
	if s.backoff <= 0 {
		s.backoff = DefaultBackoff
	}
	if s.log == nil {
		s.log = logger.NewNopLogger()
	}
	if s.clock == nil {
		s.clock = systemClock{}
	}
	if s.sleeper == nil {
		s.sleeper = timerSleeper{}
	}
	return s, nil
}

// Run sweeps until ctx is cancelled and then returns ctx.Err().
// A failed sweep is logged, followed by the backoff, and the next sweep
// starts again from discovery.
func (s *Sweeper) Run(ctx context.Context) error {
	for {
		report, err := s.Sweep(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			s.log.Error("sweep failed: %v", err)
			s.log.Info("retrying in %s", s.backoff)
			if err := s.sleeper.Sleep(ctx, s.backoff); err != nil {
				return err
			}
			continue
		}
		s.log.Info("sweep done: %d categories, %d raised, %d failed, %d confirmed with node selection",
			report.Categories, report.Raised, report.Failed, report.Resubmitted)
		if err := s.wait(ctx); err != nil {
			return err
		}
	}
}

// Sweep discovers the categories once and attempts a raise on each of them,
// sleeping the per-category delay after every attempt. The first error
// aborts the sweep. A panic inside the sweep is returned as an error.
func (s *Sweeper) Sweep(ctx context.Context) (report Report, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("PANIC [sweep]: %v\n%s", r, debug.Stack())
			err = fmt.Errorf("sweeper: panic: %v", r)
		}
	}()

	urls, err := s.market.DiscoverCategories(ctx, s.session)
	if err != nil {
		return report, fmt.Errorf("discover categories: %w", err)
	}
	report.Categories = len(urls)
	s.log.Info("found %d categories", len(urls))

	for _, u := range urls {
		res, err := s.market.Raise(ctx, s.session, u)
		if err != nil {
			return report, fmt.Errorf("raise %s: %w", u, err)
		}
		if res.Outcome == market.Success {
			report.Raised++
		} else {
			report.Failed++
		}
		if len(res.NodeIDs) > 0 {
			report.Resubmitted++
		}
		if err := s.sleeper.Sleep(ctx, s.delay); err != nil {
			return report, err
		}
	}
	return report, nil
}

// wait blocks until the next sweep is due.
func (s *Sweeper) wait(ctx context.Context) error {
	if s.schedule == "" {
		return s.sleeper.Sleep(ctx, s.cooldown)
	}
	next, err := gronx.NextTickAfter(s.schedule, s.clock.Now(), false)
	if err != nil {
		s.log.Warning("no next tick for %q: %v, sleeping %s", s.schedule, err, s.backoff)
		return s.sleeper.Sleep(ctx, s.backoff)
	}
	s.log.Info("next sweep at %s", next.Format(time.DateTime))
	for {
		d := next.Sub(s.clock.Now())
		if d <= 0 {
			return nil
		}
		if d > maxSleepCap {
			d = maxSleepCap
		}
		if err := s.sleeper.Sleep(ctx, d); err != nil {
			return err
		}
	}
}
