package db

import (
	"context"
	"fmt"
	apperrors "hotelres/pkg/errors"
	"sync"
)

type TransactionFunc func(ctx context.Context) error

type TransactionManager interface {
	ExecuteTransaction(ctx context.Context, fn TransactionFunc) error
}

type txKey struct{}

type txState struct {
	undo []func()
}

// mutexTransactionManager runs one transaction at a time. Writes made inside fn
// register undo steps with OnRollback and are reverted if fn fails.
type mutexTransactionManager struct {
	mu sync.Mutex
}

func NewTransactionManager() TransactionManager {
	return &mutexTransactionManager{}
}

func (m *mutexTransactionManager) ExecuteTransaction(ctx context.Context, fn TransactionFunc) error {
	if InTransaction(ctx) {
		return fn(ctx)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("transaction not started: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	state := &txState{}
	err := fn(context.WithValue(ctx, txKey{}, state))
	if err != nil {
		for i := len(state.undo) - 1; i >= 0; i-- {
			state.undo[i]()
		}
		if apperrors.IsAppError(err) {
			return err
		}
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

func InTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*txState)
	return ok
}

// OnRollback registers fn to run if the surrounding transaction fails. Outside a
// transaction it is a no-op.
func OnRollback(ctx context.Context, fn func()) {
	if state, ok := ctx.Value(txKey{}).(*txState); ok {
		state.undo = append(state.undo, fn)
	}
}
