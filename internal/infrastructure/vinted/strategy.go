package vinted

import (
	"context"

	"github.com/DRSN-tech/resale-backend/internal/domain"
)

// Outcome: исход одной попытки стратегии.
type Outcome string

const (
	OutcomeItems  Outcome = "items"
	OutcomeEmpty  Outcome = "empty"
	OutcomeFailed Outcome = "failed"
)

// Result: результат попытки. Для OutcomeItems список Listings не пуст,
// для OutcomeFailed заполнен Err, а Blocked говорит о сработавшей антибот-защите.
type Result struct {
	Outcome  Outcome
	Listings []domain.Listing
	Err      error
	Blocked  bool
}

// Items возвращает успешный результат; пустой список превращается в Empty.
func Items(listings []domain.Listing) Result {
	if len(listings) == 0 {
		return Empty()
	}
	return Result{Outcome: OutcomeItems, Listings: listings}
}

func Empty() Result {
	return Result{Outcome: OutcomeEmpty}
}

func Failed(err error, blocked bool) Result {
	return Result{Outcome: OutcomeFailed, Err: err, Blocked: blocked}
}

// Strategy: один способ получить объявления профиля.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, profile domain.MarketplaceProfile) Result
}
