package realtime

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/toonsync/internal/cloud"
	"github.com/dmitrijs2005/toonsync/internal/common"
	"github.com/dmitrijs2005/toonsync/internal/logging"
	"github.com/dmitrijs2005/toonsync/internal/models"
)

// UpdateFunc receives an inserted or updated note.
type UpdateFunc func(ctx context.Context, n models.Note)

// DeleteFunc receives the id of a note whose cloud row was removed.
type DeleteFunc func(ctx context.Context, id string)

// NoteSource re-reads a changed row. The cloud notes repository satisfies it.
type NoteSource interface {
	GetByID(ctx context.Context, id string) (*cloud.NoteRecord, error)
}

type Bridge struct {
	listener Listener
	notes    NoteSource
	channel  string
	log      logging.Logger
}

func NewBridge(listener Listener, notes NoteSource, channel string, log logging.Logger) *Bridge {
	if channel == "" {
		channel = common.DefaultRealtimeChannel
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Bridge{listener: listener, notes: notes, channel: channel, log: log}
}

// Subscription is a live feed started by Subscribe. Callbacks run on the
// subscription's goroutine, one event at a time, in delivery order.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once

	mu  sync.Mutex
	err error
}

// Done is closed once the feed has stopped.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Err reports why the feed stopped: the listener error, or
// common.ErrSubscriptionClosed after Unsubscribe. It is nil while running.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Subscription) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

func (s *Subscription) close() {
	s.once.Do(func() {
		s.setErr(common.ErrSubscriptionClosed)
		s.cancel()
	})
}

// Subscribe starts delivering changes to userID's notes. The feed runs until
// ctx is done or the subscription is released with Unsubscribe.
func (b *Bridge) Subscribe(ctx context.Context, userID string, onUpdate UpdateFunc, onDelete DeleteFunc) (*Subscription, error) {
	if userID == "" {
		return nil, errors.New("subscribe: empty user id")
	}
	if onUpdate == nil || onDelete == nil {
		return nil, errors.New("subscribe: nil callback")
	}

	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{cancel: cancel, done: make(chan struct{})}
	log := b.log.With("user_id", userID, "channel", b.channel)

	go func() {
		defer close(sub.done)
		defer cancel()

		log.Info(ctx, "subscription started")
		err := b.listener.Listen(ctx, b.channel, func(ctx context.Context, payload string) {
			b.dispatch(ctx, log, userID, payload, onUpdate, onDelete)
		})
		if err != nil {
			sub.setErr(err)
			log.Error(ctx, "subscription failed", "error", err)
			return
		}
		if ctx.Err() != nil {
			sub.setErr(fmt.Errorf("%w: %w", common.ErrSubscriptionClosed, ctx.Err()))
		} else {
			sub.setErr(common.ErrListenerClosed)
		}
		log.Info(ctx, "subscription stopped")
	}()

	return sub, nil
}

// Unsubscribe releases sub. It is safe to call more than once and on nil.
// It does not wait; use Done for that.
func (b *Bridge) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	sub.close()
}

func (b *Bridge) dispatch(ctx context.Context, log logging.Logger, userID, payload string, onUpdate UpdateFunc, onDelete DeleteFunc) {
	ev, err := ParseEvent(payload)
	if err != nil {
		log.Warn(ctx, "dropping malformed event", "error", err)
		return
	}
	if ev.UserID != userID {
		return
	}

	if ev.Type == OpDelete {
		onDelete(ctx, ev.ID)
		return
	}

	rec, err := b.notes.GetByID(ctx, ev.ID)
	if errors.Is(err, common.ErrNotFound) {
		log.Debug(ctx, "changed row already gone", "id", ev.ID)
		return
	}
	if err != nil {
		log.Warn(ctx, "dropping event, row fetch failed", "id", ev.ID, "error", err)
		return
	}
	if rec.UserID != userID {
		log.Warn(ctx, "dropping event, owner changed", "id", ev.ID)
		return
	}
	onUpdate(ctx, cloud.FromNoteRecord(*rec))
}
