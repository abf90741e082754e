package kafka

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/resale-backend/internal/usecase"
	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/DRSN-tech/resale-backend/pkg/logger"
	"github.com/jackc/pgx/v5"
)

const (
	batchSize     = 10
	listenTimeout = 30 * time.Second
	staleAfter    = 5 * time.Minute
)

// OutboxSource: хранилище outbox с возвратом зависших событий.
type OutboxSource interface {
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*usecase.OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	ReleaseStale(ctx context.Context, olderThan time.Duration) (int64, error)
}

// OutboxWorker переносит события из outbox_events в Kafka.
// Будится через LISTEN и раз в listenTimeout проверяет таблицу сам.
type OutboxWorker struct {
	repo      OutboxSource
	logger    logger.Logger
	producer  usecase.MessageProducer
	stop      chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
	dbConnStr string
	channel   string
}

func NewOutboxWorker(
	repo OutboxSource,
	logger logger.Logger,
	producer usecase.MessageProducer,
	dbConnStr string,
	channel string,
) *OutboxWorker {
	return &OutboxWorker{
		repo:      repo,
		logger:    logger,
		producer:  producer,
		stop:      make(chan struct{}),
		dbConnStr: dbConnStr,
		channel:   channel,
	}
}

func (w *OutboxWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		// остатки с прошлого запуска
		w.logger.Infof("Draining pending outbox events on startup...")
		w.releaseStale(ctx)
		w.drain(ctx)

		w.listen(ctx)
	}()
}

func (w *OutboxWorker) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
	w.wg.Wait()
}

func (w *OutboxWorker) stopped(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	case <-w.stop:
		return true
	default:
		return false
	}
}

// sleep ждёт d; false, если воркер остановлен раньше.
func (w *OutboxWorker) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-time.After(d):
		return true
	case <-ctx.Done():
		return false
	case <-w.stop:
		return false
	}
}

func (w *OutboxWorker) connect(ctx context.Context) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, w.dbConnStr)
	if err != nil {
		return nil, e.Wrap("failed to connect for LISTEN", err)
	}

	if _, err = conn.Exec(ctx, "LISTEN "+w.channel); err != nil {
		_ = conn.Close(ctx)
		return nil, e.Wrap("failed to LISTEN", err)
	}

	w.logger.Infof("Subscribed to '%s' channel", w.channel)
	return conn, nil
}

func (w *OutboxWorker) listen(ctx context.Context) {
	var conn *pgx.Conn
	defer func() {
		if conn != nil {
			_ = conn.Close(context.Background())
		}
	}()

	for !w.stopped(ctx) {
		if conn == nil {
			c, err := w.connect(ctx)
			if err != nil {
				w.logger.Warnf("LISTEN connect failed: %v", err)
				if !w.sleep(ctx, 5*time.Second) {
					return
				}
				continue
			}
			conn = c
		}

		waitCtx, cancel := context.WithTimeout(ctx, listenTimeout)
		notif, err := conn.WaitForNotification(waitCtx)
		cancel()

		switch {
		case err == nil:
			if notif.Channel == w.channel {
				w.logger.Debugf("Received outbox notification, draining outbox events")
				w.drain(ctx)
			}
		case errors.Is(err, context.DeadlineExceeded):
			// тишина в канале: подбираем зависшие и пропущенные события
			w.releaseStale(ctx)
			w.drain(ctx)
		case errors.Is(err, context.Canceled):
			return
		default:
			w.logger.Warnf("Connection lost: %v. Reconnecting...", err)
			_ = conn.Close(context.Background())
			conn = nil
			if !w.sleep(ctx, 2*time.Second) {
				return
			}
		}
	}
}

func (w *OutboxWorker) releaseStale(ctx context.Context) {
	n, err := w.repo.ReleaseStale(ctx, staleAfter)
	if err != nil {
		w.logger.Warnf("release stale outbox events failed: %v", err)
		return
	}
	if n > 0 {
		w.logger.Infof("Released %d stale outbox events", n)
	}
}

func (w *OutboxWorker) drain(ctx context.Context) {
	for !w.stopped(ctx) {
		hasMore, err := w.processBatch(ctx)
		if err != nil {
			w.logger.Warnf("Batch processing failed: %v", err)
			return
		}
		if !hasMore {
			return
		}
	}
}

// processBatch возвращает hasMore == true, если пачка была полной.
// Неотправленные события остаются в processing до releaseStale.
func (w *OutboxWorker) processBatch(ctx context.Context) (bool, error) {
	events, err := w.repo.GetAndMarkAsProcessing(ctx, batchSize)
	if err != nil {
		return false, err
	}

	for _, event := range events {
		if err := w.processEvent(ctx, event); err != nil {
			w.logger.Warnf("publish outbox event %s failed: %v", event.EventID, err)
			if !isRetryableError(err) {
				continue
			}
			// брокер недоступен: остаток пачки всё равно не уйдёт
			return false, err
		}
		if err := w.repo.MarkAsProcessed(ctx, event.ID); err != nil {
			w.logger.Warnf("mark processed failed: %v", err)
		}
	}

	return len(events) == batchSize, nil
}

func (w *OutboxWorker) processEvent(ctx context.Context, event *usecase.OutboxEvent) error {
	return w.producer.WriteRawMessage(ctx, usecase.NewWriteRawMessageReq(messageKey(event), event.EventType, event.Payload))
}

func messageKey(event *usecase.OutboxEvent) string {
	if event.ArticleID == nil {
		return event.EventID
	}

	return strconv.FormatInt(*event.ArticleID, 10)
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	retryablePhrases := []string{
		"connection refused",
		"i/o timeout",
		"network is unreachable",
		"broker not available",
		"connection reset",
		"broken pipe",
		"no such host",
	}
	for _, phrase := range retryablePhrases {
		if strings.Contains(errStr, phrase) {
			return true
		}
	}
	return false
}
