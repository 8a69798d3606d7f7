package inmemory

import (
	"context"
	"fmt"

	"github.com/dvloznov/polarix/internal/domain"
	"github.com/dvloznov/polarix/internal/store"
)

type transactionRepo struct{ s *Store }

func (r transactionRepo) ListTransactions(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := []*domain.Transaction{}
	for _, t := range r.s.transactions {
		if t.UserID == userID {
			txCopy := *t
			result = append(result, &txCopy)
		}
	}
	return result, nil
}

func (r transactionRepo) GetTransaction(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, t := range r.s.transactions {
		if t.ID == id && t.UserID == userID {
			txCopy := *t
			return &txCopy, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r transactionRepo) InsertTransaction(ctx context.Context, tx *domain.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, t := range r.s.transactions {
		if t.ID == tx.ID {
			return fmt.Errorf("InsertTransaction: %w", store.ErrDuplicate)
		}
	}
	txCopy := *tx
	r.s.transactions = append(r.s.transactions, &txCopy)
	return nil
}

func (r transactionRepo) ReplaceTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, t := range r.s.transactions {
		if t.ID == tx.ID && t.UserID == tx.UserID {
			t.Amount = tx.Amount
			t.Date = tx.Date
			t.Description = tx.Description
			t.Category = tx.Category
			t.Subcategory = tx.Subcategory
			t.Account = tx.Account
			txCopy := *t
			return &txCopy, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r transactionRepo) DeleteTransaction(ctx context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var removed int
	r.s.transactions, removed = removeWhere(r.s.transactions, func(t *domain.Transaction) bool {
		return t.ID == id && t.UserID == userID
	})
	if removed == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r transactionRepo) DeleteTransactionsByOwner(ctx context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.transactions, _ = removeWhere(r.s.transactions, func(t *domain.Transaction) bool { return t.UserID == userID })
	return nil
}
