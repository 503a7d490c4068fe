package realtime

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/toonsync/internal/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sethvargo/go-retry"
)

// Listener delivers raw NOTIFY payloads from channel to handle, one at a
// time, until ctx is done. It returns nil on cancellation.
type Listener interface {
	Listen(ctx context.Context, channel string, handle func(ctx context.Context, payload string)) error
}

// notifyConn is the part of *pgx.Conn a listening session uses.
type notifyConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	WaitForNotification(ctx context.Context) (*pgconn.Notification, error)
	Close(ctx context.Context) error
}

type ListenerOptions struct {
	// MinBackoff and MaxBackoff bound the reconnect delay.
	MinBackoff time.Duration
	MaxBackoff time.Duration
	// MaxRetries caps failed sessions in a row, counted from the last
	// session that delivered a notification. 0 retries forever.
	MaxRetries uint64
}

// PgListener holds a dedicated pgx connection in LISTEN mode and reconnects
// with exponential backoff when it drops.
type PgListener struct {
	dsn  string
	opts ListenerOptions
	log  logging.Logger

	connect func(ctx context.Context, dsn string) (notifyConn, error)
}

func NewPgListener(dsn string, opts ListenerOptions, log logging.Logger) *PgListener {
	if opts.MinBackoff <= 0 {
		opts.MinBackoff = 500 * time.Millisecond
	}
	if opts.MaxBackoff <= 0 {
		opts.MaxBackoff = 30 * time.Second
	}
	if log == nil {
		log = logging.Nop()
	}
	return &PgListener{
		dsn:  dsn,
		opts: opts,
		log:  log,
		connect: func(ctx context.Context, dsn string) (notifyConn, error) {
			return pgx.Connect(ctx, dsn)
		},
	}
}

// Listen runs sessions until ctx is done. A session that delivered at least
// one notification starts a fresh backoff, so MaxRetries counts failures
// since the last healthy session.
func (l *PgListener) Listen(ctx context.Context, channel string, handle func(ctx context.Context, payload string)) error {
	for {
		var healthy bool
		err := retry.Do(ctx, l.backoff(), func(ctx context.Context) error {
			delivered, err := l.session(ctx, channel, handle)
			if ctx.Err() != nil {
				return nil
			}
			l.log.Warn(ctx, "listener disconnected, reconnecting", "channel", channel, "delivered", delivered, "error", err)
			if delivered > 0 {
				healthy = true
				return nil
			}
			return retry.RetryableError(err)
		})
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return fmt.Errorf("listen %s: %w", channel, err)
		}
		if !healthy {
			return nil
		}
	}
}

func (l *PgListener) backoff() retry.Backoff {
	b := retry.NewExponential(l.opts.MinBackoff)
	b = retry.WithCappedDuration(l.opts.MaxBackoff, b)
	if l.opts.MaxRetries > 0 {
		b = retry.WithMaxRetries(l.opts.MaxRetries, b)
	}
	return b
}

// session returns how many notifications it handed to handle before the
// connection failed.
func (l *PgListener) session(ctx context.Context, channel string, handle func(ctx context.Context, payload string)) (int, error) {
	conn, err := l.connect(ctx, l.dsn)
	if err != nil {
		return 0, fmt.Errorf("connect: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = conn.Close(closeCtx)
	}()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{channel}.Sanitize()); err != nil {
		return 0, fmt.Errorf("listen: %w", err)
	}
	l.log.Info(ctx, "listening", "channel", channel)

	delivered := 0
	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return delivered, err
		}
		if n == nil {
			return delivered, errors.New("nil notification")
		}
		if n.Channel != channel {
			continue
		}
		handle(ctx, n.Payload)
		delivered++
	}
}
