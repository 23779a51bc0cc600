package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"inventory/pkg/logger"
)

// ChangeChannel is the NOTIFY channel raised by triggers on invoices, stocks and products.
const ChangeChannel = "inventory_changed"

// InvalidationListener is called for every change notification. payload is the table name.
type InvalidationListener func(ctx context.Context, channel, payload string)

// Invalidator listens for PostgreSQL NOTIFY events on a dedicated connection
// and fans them out to listeners.
type Invalidator struct {
	pool *pgxpool.Pool

	listenersMu sync.RWMutex
	listeners   []InvalidationListener

	lifecycleMu sync.Mutex
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	started     bool
}

// NewInvalidator creates an invalidator on pool.
func NewInvalidator(pool *pgxpool.Pool) *Invalidator {
	return &Invalidator{pool: pool}
}

// OnChange registers a listener.
func (i *Invalidator) OnChange(l InvalidationListener) {
	i.listenersMu.Lock()
	i.listeners = append(i.listeners, l)
	i.listenersMu.Unlock()
}

// InvalidateReports registers a listener that drops the report cache.
func (i *Invalidator) InvalidateReports(c *ReportCache) {
	i.OnChange(func(ctx context.Context, _, payload string) {
		if err := c.InvalidateAll(ctx); err != nil {
			logger.Warn(ctx, "report cache invalidation failed", "table", payload, "error", err)
		}
	})
}

// Start begins listening in the background.
func (i *Invalidator) Start(ctx context.Context) {
	i.lifecycleMu.Lock()
	defer i.lifecycleMu.Unlock()
	if i.started {
		return
	}
	i.ctx, i.cancel = context.WithCancel(ctx)
	i.started = true

	i.wg.Add(1)
	go i.listenLoop()
	logger.Info(i.ctx, "cache invalidator started", "channel", ChangeChannel)
}

// Stop cancels the listener and waits for it to exit.
func (i *Invalidator) Stop() {
	i.lifecycleMu.Lock()
	if !i.started {
		i.lifecycleMu.Unlock()
		return
	}
	cancel := i.cancel
	i.started = false
	i.lifecycleMu.Unlock()

	cancel()
	i.wg.Wait()
	logger.Info(context.Background(), "cache invalidator stopped")
}

func (i *Invalidator) listenLoop() {
	defer i.wg.Done()

	for i.ctx.Err() == nil {
		conn, err := i.pool.Acquire(i.ctx)
		if err != nil {
			logger.Error(i.ctx, "failed to acquire connection for LISTEN", "error", err)
			i.sleep(time.Second)
			continue
		}

		if _, err := conn.Exec(i.ctx, "LISTEN "+ChangeChannel); err != nil {
			logger.Error(i.ctx, "failed to LISTEN", "error", err)
			conn.Release()
			i.sleep(time.Second)
			continue
		}

		i.waitForNotifications(conn)
		conn.Release()
	}
}

func (i *Invalidator) waitForNotifications(conn *pgxpool.Conn) {
	for {
		ctx, cancel := context.WithTimeout(i.ctx, 30*time.Second)
		notification, err := conn.Conn().WaitForNotification(ctx)
		cancel()

		if err != nil {
			if i.ctx.Err() != nil {
				return
			}
			if ctx.Err() != nil {
				// Idle timeout; keep the connection.
				continue
			}
			logger.Warn(i.ctx, "LISTEN connection lost", "error", err)
			return
		}

		logger.Debug(i.ctx, "received notification",
			"channel", notification.Channel,
			"payload", notification.Payload)
		i.dispatch(i.ctx, notification.Channel, notification.Payload)
	}
}

// dispatch calls every listener in turn, recovering panics.
func (i *Invalidator) dispatch(ctx context.Context, channel, payload string) {
	i.listenersMu.RLock()
	defer i.listenersMu.RUnlock()

	for _, listener := range i.listeners {
		func(l InvalidationListener) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error(ctx, "listener panic recovered", "channel", channel, "panic", r)
				}
			}()
			l(ctx, channel, payload)
		}(listener)
	}
}

func (i *Invalidator) sleep(d time.Duration) {
	select {
	case <-i.ctx.Done():
	case <-time.After(d):
	}
}
