// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/openballot/openballot/cliparse"
	"github.com/openballot/openballot/mailer"
	"github.com/openballot/openballot/models"
	"github.com/openballot/openballot/store"
	"github.com/openballot/openballot/tally"
)

// Algorithms are the pluggable tally functions. Tests substitute stubs to
// observe which algorithms run.
type Algorithms struct {
	SplitCycleDefeat             func(*tally.Profile) *tally.Defeat
	SplitCycleWinners            func(*tally.Profile) []string
	StableVotingWithExplanations func(*tally.Profile) ([]string, map[string][]tally.Explanation)
	StableVoting                 func(*tally.Profile) []string
	SplittingNumbers             func(*tally.Profile) map[string]int
}

func DefaultAlgorithms() Algorithms {
	return Algorithms{
		SplitCycleDefeat: func(p *tally.Profile) *tally.Defeat {
			return tally.SplitCycleDefeat(p, nil)
		},
		SplitCycleWinners: func(p *tally.Profile) []string {
			return tally.SplitCycleWinners(p, nil)
		},
		StableVotingWithExplanations: tally.StableVotingWithExplanations,
		StableVoting:                 tally.StableVoting,
		SplittingNumbers:             tally.SplittingNumbers,
	}
}

// Manager owns all poll operations. Every mutation of a given poll runs
// under that poll's writer lock and is written back with a version check,
// so concurrent submissions cannot clobber each other's ballots.
type Manager struct {
	store  store.PollStore
	mailer mailer.Mailer
	cfg    cliparse.Config
	logger *slog.Logger

	algs Algorithms
	now  func() time.Time
	pick func(n int) int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewManager(st store.PollStore, m mailer.Mailer, cfg cliparse.Config) *Manager {
	return &Manager{
		store:  st,
		mailer: m,
		cfg:    cfg,
		logger: slog.Default(),
		algs:   DefaultAlgorithms(),
		now:    time.Now,
		pick:   rand.IntN,
		locks:  make(map[string]*sync.Mutex),
	}
}

// SetAlgorithms overrides the tally functions. Test hook.
func (m *Manager) SetAlgorithms(a Algorithms) { m.algs = a }

// SetClock overrides the clock. Test hook.
func (m *Manager) SetClock(now func() time.Time) { m.now = now }

// SetPicker overrides the tie-break draw. Test hook.
func (m *Manager) SetPicker(pick func(n int) int) { m.pick = pick }

func (m *Manager) pollLock(id string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[id]
	if !ok {
		l = &sync.Mutex{}
		m.locks[id] = l
	}
	return l
}

const maxWriteAttempts = 3

// mutate runs fn on the freshly loaded poll and writes it back, holding the
// poll's writer lock. A version conflict (an external writer) triggers a
// reload and retry.
func (m *Manager) mutate(ctx context.Context, id string, fn func(*models.Poll) error) (*models.Poll, error) {
	lock := m.pollLock(id)
	lock.Lock()
	defer lock.Unlock()

	var lastErr error
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		p, err := m.load(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := fn(p); err != nil {
			return nil, err
		}
		err = m.store.UpdateOne(ctx, p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, store.ErrVersionConflict) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("poll %s: too many concurrent writers: %w", id, lastErr)
}

func (m *Manager) load(ctx context.Context, id string) (*models.Poll, error) {
	p, err := m.store.FindOne(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrPollNotFound
	}
	return p, err
}

// sendMail delivers in the background; failures are logged, never returned.
func (m *Manager) sendMail(msgs ...mailer.Message) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		for _, msg := range msgs {
			if err := m.mailer.Send(ctx, msg); err != nil {
				m.logger.Error("email send failed", "to", msg.To, "tag", msg.Tag, "error", err)
			}
		}
	}()
}

func (m *Manager) voteURL(pollID, voterID string) string {
	return fmt.Sprintf("%s/vote/%s?vid=%s", m.cfg.SiteURL, pollID, voterID)
}

func (m *Manager) adminURL(pollID, ownerID string) string {
	return fmt.Sprintf("%s/admin/%s?oid=%s", m.cfg.SiteURL, pollID, ownerID)
}
