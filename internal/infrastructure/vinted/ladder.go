package vinted

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/DRSN-tech/resale-backend/internal/cfg"
	"github.com/DRSN-tech/resale-backend/internal/domain"
	"github.com/DRSN-tech/resale-backend/internal/infrastructure/metrics"
	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/DRSN-tech/resale-backend/pkg/logger"
)

// Attempt: запись о попытке одной стратегии для итоговой ошибки.
type Attempt struct {
	Strategy string
	Outcome  Outcome
	Blocked  bool
	Err      string
}

// ExhaustedError возвращается, когда ни одна стратегия не дала объявлений.
// errors.Is срабатывает на e.ErrImportExhausted и на причину:
// e.ErrImportBlocked или e.ErrImportUnavailable.
type ExhaustedError struct {
	Attempts []Attempt
	cause    error
}

func newExhaustedError(attempts []Attempt) *ExhaustedError {
	cause := e.ErrImportUnavailable
	for _, a := range attempts {
		if a.Blocked {
			cause = e.ErrImportBlocked
			break
		}
	}

	return &ExhaustedError{Attempts: attempts, cause: cause}
}

func (x *ExhaustedError) Error() string {
	parts := make([]string, 0, len(x.Attempts))
	for _, a := range x.Attempts {
		s := a.Strategy + "=" + string(a.Outcome)
		if a.Err != "" {
			s += "(" + a.Err + ")"
		}
		parts = append(parts, s)
	}

	return fmt.Sprintf("%s: %s [%s]", e.ErrImportExhausted, x.cause, strings.Join(parts, "; "))
}

func (x *ExhaustedError) Unwrap() []error {
	return []error{x.cause, e.ErrImportExhausted}
}

// Blocked сообщает, что хотя бы одна стратегия упёрлась в антибот-защиту.
func (x *ExhaustedError) Blocked() bool {
	return x.cause == e.ErrImportBlocked
}

// Ladder перебирает стратегии по порядку до первой, вернувшей объявления.
type Ladder struct {
	strategies []Strategy
	timeout    time.Duration
	delay      time.Duration
	logger     logger.Logger
}

func NewLadder(strategies []Strategy, cfg *cfg.ImportCfg, logger logger.Logger) *Ladder {
	return &Ladder{
		strategies: strategies,
		timeout:    cfg.StrategyTimeout,
		delay:      cfg.StrategyDelay,
		logger:     logger,
	}
}

// FetchListings запускает стратегии последовательно, каждую со своим таймаутом.
// Каждая стратегия пробуется не более одного раза.
func (l *Ladder) FetchListings(ctx context.Context, profile domain.MarketplaceProfile) ([]domain.Listing, error) {
	const op = "Ladder.FetchListings"

	attempts := make([]Attempt, 0, len(l.strategies))
	for i, s := range l.strategies {
		if err := ctx.Err(); err != nil {
			return nil, e.Wrap(op, err)
		}

		res := l.attempt(ctx, s, profile)
		metrics.ImportStrategyAttempts.WithLabelValues(s.Name(), string(res.Outcome)).Inc()

		if res.Outcome == OutcomeItems {
			l.logger.Infof("import strategy %s returned %d listings for member %s", s.Name(), len(res.Listings), profile.MemberID)
			return res.Listings, nil
		}

		// отмена родительского контекста прерывает перебор
		if err := ctx.Err(); err != nil {
			return nil, e.Wrap(op, err)
		}

		a := Attempt{Strategy: s.Name(), Outcome: res.Outcome, Blocked: res.Blocked}
		if res.Err != nil {
			a.Err = res.Err.Error()
		}
		attempts = append(attempts, a)
		l.logger.Warnf("import strategy %s: outcome=%s blocked=%t err=%s", s.Name(), res.Outcome, res.Blocked, a.Err)

		if i < len(l.strategies)-1 && l.delay > 0 {
			select {
			case <-time.After(l.delay):
			case <-ctx.Done():
				return nil, e.Wrap(op, ctx.Err())
			}
		}
	}

	return nil, newExhaustedError(attempts)
}

func (l *Ladder) attempt(ctx context.Context, s Strategy, profile domain.MarketplaceProfile) Result {
	if l.timeout <= 0 {
		return s.Attempt(ctx, profile)
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	return s.Attempt(ctx, profile)
}
