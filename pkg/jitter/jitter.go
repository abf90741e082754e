// Package jitter добавляет случайный разброс к задержкам повторов и периодическим таймерам,
// чтобы инстансы не синхронизировались.
package jitter

import (
	"math/rand"
	"sync"
	"time"
)

// DefaultJitter: стандартный коэффициент джиттера (50%)
const DefaultJitter = 0.5

var (
	globalRand = rand.New(rand.NewSource(time.Now().UnixNano()))
	randMutex  sync.Mutex
)

// Duration возвращает d с джиттером в диапазоне [d, d*(1+factor)].
func Duration(d time.Duration, factor float64) time.Duration {
	randMutex.Lock()
	f := globalRand.Float64()
	randMutex.Unlock()

	return scale(d, factor, f)
}

// DurationWithRand: то же, что Duration, но с переданным генератором.
func DurationWithRand(d time.Duration, factor float64, rng *rand.Rand) time.Duration {
	return scale(d, factor, rng.Float64())
}

// ExponentialBackoff возвращает base*2^attempt, ограниченное max, с джиттером.
// attempt считается с нуля.
func ExponentialBackoff(base, max time.Duration, attempt int, factor float64) time.Duration {
	backoff := base
	for i := 0; i < attempt && backoff < max; i++ {
		backoff *= 2
	}
	if backoff > max {
		backoff = max
	}

	return Duration(backoff, factor)
}

func scale(d time.Duration, factor, f float64) time.Duration {
	if d <= 0 || factor <= 0 {
		return d
	}
	return d + time.Duration(f*factor*float64(d))
}
