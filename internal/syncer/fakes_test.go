package syncer

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/toonsync/internal/cloud"
	"github.com/dmitrijs2005/toonsync/internal/cloud/repositories/boards"
	"github.com/dmitrijs2005/toonsync/internal/cloud/repositories/labels"
	"github.com/dmitrijs2005/toonsync/internal/cloud/repositories/notes"
	"github.com/dmitrijs2005/toonsync/internal/common"
	"github.com/dmitrijs2005/toonsync/internal/models"
)

// fakeCloud is a user-scoped in-memory table keyed by id.
type fakeCloud[R any] struct {
	mu        sync.Mutex
	id        func(R) string
	owner     func(R) string
	rows      map[string]R
	order     []string
	selectErr error
	upsertErr map[string]error
	deleteErr error
	selects   int
	upserts   int
	deletes   int
}

func newFakeCloud[R any](id, owner func(R) string) *fakeCloud[R] {
	return &fakeCloud[R]{id: id, owner: owner, rows: map[string]R{}, upsertErr: map[string]error{}}
}

func (f *fakeCloud[R]) seed(rows ...R) {
	for _, r := range rows {
		f.store(r)
	}
}

func (f *fakeCloud[R]) store(r R) {
	id := f.id(r)
	if _, ok := f.rows[id]; !ok {
		f.order = append(f.order, id)
	}
	f.rows[id] = r
}

func (f *fakeCloud[R]) Upsert(ctx context.Context, r R) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	if err := f.upsertErr[f.id(r)]; err != nil {
		return err
	}
	f.store(r)
	return nil
}

func (f *fakeCloud[R]) SelectByUser(ctx context.Context, userID string) ([]R, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selects++
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	var out []R
	for _, id := range f.order {
		if r, ok := f.rows[id]; ok && f.owner(r) == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeCloud[R]) GetByID(ctx context.Context, id string) (*R, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &r, nil
}

func (f *fakeCloud[R]) DeleteByID(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.rows, id)
	return nil
}

var (
	_ notes.Repository  = (*fakeCloud[cloud.NoteRecord])(nil)
	_ labels.Repository = (*fakeCloud[cloud.LabelRecord])(nil)
	_ boards.Repository = (*fakeCloud[cloud.BoardRecord])(nil)
)

func newCloudNotes() *fakeCloud[cloud.NoteRecord] {
	return newFakeCloud(
		func(r cloud.NoteRecord) string { return r.ID },
		func(r cloud.NoteRecord) string { return r.UserID },
	)
}

func newCloudLabels() *fakeCloud[cloud.LabelRecord] {
	return newFakeCloud(
		func(r cloud.LabelRecord) string { return r.ID },
		func(r cloud.LabelRecord) string { return r.UserID },
	)
}

func newCloudBoards() *fakeCloud[cloud.BoardRecord] {
	return newFakeCloud(
		func(r cloud.BoardRecord) string { return r.ID },
		func(r cloud.BoardRecord) string { return r.UserID },
	)
}

// memStore is an in-memory local store.
type memStore[T any] struct {
	mu      sync.Mutex
	id      func(T) string
	items   map[string]T
	order   []string
	listErr error
	putErr  map[string]error
	puts    int

	// snapshot, when set, is what List returns instead of the live items.
	snapshot []T
}

func newMemStore[T any](id func(T) string, items ...T) *memStore[T] {
	s := &memStore[T]{id: id, items: map[string]T{}, putErr: map[string]error{}}
	for _, it := range items {
		s.store(it)
	}
	return s
}

func (s *memStore[T]) store(v T) {
	id := s.id(v)
	if _, ok := s.items[id]; !ok {
		s.order = append(s.order, id)
	}
	s.items[id] = v
}

func (s *memStore[T]) get(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[id]
	return v, ok
}

func (s *memStore[T]) List(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	if s.snapshot != nil {
		return s.snapshot, nil
	}
	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out, nil
}

func (s *memStore[T]) Put(ctx context.Context, v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts++
	if err := s.putErr[s.id(v)]; err != nil {
		return err
	}
	s.store(v)
	return nil
}

func (s *memStore[T]) ApplyRemote(ctx context.Context, incoming T, accept func(local *T) bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var cur *T
	if v, ok := s.items[s.id(incoming)]; ok {
		cur = &v
	}
	if !accept(cur) {
		return false, nil
	}
	s.puts++
	if err := s.putErr[s.id(incoming)]; err != nil {
		return false, err
	}
	s.store(incoming)
	return true, nil
}

var (
	_ NoteStore  = (*memStore[models.Note])(nil)
	_ LabelStore = (*memStore[models.Label])(nil)
	_ BoardStore = (*memStore[models.Board])(nil)
)

func newLocalNotes(items ...models.Note) *memStore[models.Note] {
	return newMemStore(func(n models.Note) string { return n.ID }, items...)
}

func newLocalLabels(items ...models.Label) *memStore[models.Label] {
	return newMemStore(func(l models.Label) string { return l.ID }, items...)
}

func newLocalBoards(items ...models.Board) *memStore[models.Board] {
	return newMemStore(func(b models.Board) string { return b.ID }, items...)
}

type fakeEntitlements struct {
	allow bool
	calls int
}

func (f *fakeEntitlements) CanSync(ctx context.Context, userID string) bool {
	f.calls++
	return f.allow
}
