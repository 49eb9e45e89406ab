package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/cleberrangel/pendientes-api/internal/mail"
	"github.com/cleberrangel/pendientes-api/internal/model"
)

type fakeSender struct {
	mu     sync.Mutex
	sent   []mail.Message
	failTo map[string]bool
}

func (f *fakeSender) Send(_ context.Context, msg mail.Message) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTo[msg.To] {
		return false
	}
	f.sent = append(f.sent, msg)
	return true
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fakePendingStore struct {
	items   []model.PendingItem
	listErr error
}

func (f *fakePendingStore) List(context.Context) ([]model.PendingItem, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.PendingItem(nil), f.items...), nil
}

func (f *fakePendingStore) Get(_ context.Context, id int64) (model.PendingItem, error) {
	for _, it := range f.items {
		if it.ID == id {
			return it, nil
		}
	}
	return model.PendingItem{}, fmt.Errorf("pendiente %d: %w", id, model.ErrNotFound)
}

func (f *fakePendingStore) MarkNotified(_ context.Context, id int64, date string) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].UltimaNotificacion = date
			return nil
		}
	}
	return model.ErrNotFound
}
