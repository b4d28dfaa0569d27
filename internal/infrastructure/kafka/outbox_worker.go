package kafka

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/DRSN-tech/inventory-backend/internal/usecase"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/DRSN-tech/inventory-backend/pkg/jitter"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
	"github.com/jackc/pgx/v5"
)

const (
	defaultPollInterval = 10 * time.Second
	waitNotifyTimeout   = 30 * time.Second
	reconnectBase       = time.Second
	reconnectMax        = 30 * time.Second
)

// OutboxWorker переносит события из таблицы outbox_events в Kafka.
// Будится через LISTEN outbox_pending и дополнительно опрашивает таблицу раз в pollInterval,
// чтобы подобрать события, возвращённые в pending после ошибки публикации.
type OutboxWorker struct {
	repo         usecase.OutboxRepository
	logger       logger.Logger
	producer     usecase.MessageProducer
	channel      string
	dbConnStr    string
	batchSize    int
	pollInterval time.Duration

	wake chan struct{}
	stop chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

func NewOutboxWorker(
	repo usecase.OutboxRepository,
	logger logger.Logger,
	producer usecase.MessageProducer,
	dbConnStr string,
	channel string,
	batchSize int,
) *OutboxWorker {
	if batchSize <= 0 {
		batchSize = 10
	}

	return &OutboxWorker{
		repo:         repo,
		logger:       logger,
		producer:     producer,
		channel:      channel,
		dbConnStr:    dbConnStr,
		batchSize:    batchSize,
		pollInterval: defaultPollInterval,
		wake:         make(chan struct{}, 1),
		stop:         make(chan struct{}),
	}
}

func (w *OutboxWorker) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	w.wg.Add(3)
	go func() {
		defer w.wg.Done()
		defer cancel()
		<-w.stop
	}()

	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()

	go func() {
		defer w.wg.Done()
		w.listenOutboxNotifications(ctx)
	}()
}

// Stop останавливает воркер и ждёт завершения горутин.
func (w *OutboxWorker) Stop(_ context.Context) error {
	w.once.Do(func() { close(w.stop) })
	w.wg.Wait()
	return nil
}

func (w *OutboxWorker) run(ctx context.Context) {
	w.logger.Infof("Draining pending outbox events on startup...")
	w.drain(ctx)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Infof("Outbox worker stopped")
			return
		case <-w.wake:
			w.drain(ctx)
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

// notify будит run, не блокируясь, если сигнал уже ожидает обработки.
func (w *OutboxWorker) notify() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *OutboxWorker) drain(ctx context.Context) {
	for {
		hasMore, err := w.processBatch(ctx)
		if err != nil {
			if ctx.Err() == nil {
				w.logger.Warnf("Outbox batch processing failed: %v", err)
			}
			return
		}
		if !hasMore {
			return
		}
	}
}

func (w *OutboxWorker) listenOutboxNotifications(ctx context.Context) {
	backoff := jitter.NewBackoff(reconnectBase, reconnectMax)

	for ctx.Err() == nil {
		conn, err := w.connect(ctx)
		if err != nil {
			w.logger.Warnf("LISTEN connect failed (attempt %d): %v", backoff.Attempt()+1, err)
			if backoff.Wait(ctx) != nil {
				return
			}
			continue
		}

		backoff.Reset()
		// после переподключения могли пропустить уведомления
		w.notify()

		err = w.waitNotifications(ctx, conn)
		_ = conn.Close(context.Background())
		if ctx.Err() != nil {
			return
		}
		w.logger.Warnf("LISTEN connection lost: %v. Reconnecting...", err)
	}
}

func (w *OutboxWorker) connect(ctx context.Context) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, w.dbConnStr)
	if err != nil {
		return nil, e.Wrap("failed to connect for LISTEN", err)
	}

	if _, err = conn.Exec(ctx, "LISTEN "+pgx.Identifier{w.channel}.Sanitize()); err != nil {
		_ = conn.Close(ctx)
		return nil, e.Wrap("failed to LISTEN", err)
	}

	w.logger.Infof("Subscribed to '%s' channel", w.channel)
	return conn, nil
}

func (w *OutboxWorker) waitNotifications(ctx context.Context, conn *pgx.Conn) error {
	for {
		waitCtx, cancel := context.WithTimeout(ctx, waitNotifyTimeout)
		notif, err := conn.WaitForNotification(waitCtx)
		cancel()

		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
				continue
			}
			return err
		}

		if notif != nil && notif.Channel == w.channel {
			w.logger.Debugf("Received outbox notification, draining outbox events")
			w.notify()
		}
	}
}

// processBatch публикует одну пачку. hasMore=true, если пачка была полной.
func (w *OutboxWorker) processBatch(ctx context.Context) (bool, error) {
	events, err := w.repo.GetAndMarkAsProcessing(ctx, w.batchSize)
	if err != nil {
		return false, err
	}

	failed := 0
	for _, event := range events {
		if err := w.processEvent(ctx, event); err != nil {
			failed++
			w.logger.Warnf("Publish of outbox event %s failed, returning to pending: %v", event.EventID, err)
			if err := w.repo.MarkAsPending(context.WithoutCancel(ctx), event.ID); err != nil {
				w.logger.Warnf("mark pending failed: %v", err)
			}
			continue
		}

		if err := w.repo.MarkAsProcessed(context.WithoutCancel(ctx), event.ID); err != nil {
			w.logger.Warnf("mark processed failed: %v", err)
		}
	}

	// при ошибках публикации ждём следующего тика, а не крутимся в цикле
	return failed == 0 && len(events) == w.batchSize, nil
}

func (w *OutboxWorker) processEvent(ctx context.Context, event *usecase.OutboxEvent) error {
	return w.producer.WriteRawMessage(ctx, usecase.NewWriteRawMessageReq(event.ProductID, event.Payload))
}
