package repository

import (
	"context"
	"sync"

	"leave-api/internal/database"
	"leave-api/internal/model"
)

type contextKey string

const txKey contextKey = "store_tx"

// txState is the document loaded for one transaction
type txState struct {
	doc   *model.Document
	dirty bool
}

// TransactionManager serializes access to the store. A transaction loads the
// document once, lets every command run against it, and saves it once if any
// command mutated it.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

type transactionManager struct {
	store database.Store
	mu    sync.Mutex
}

func NewTransactionManager(store database.Store) TransactionManager {
	return &transactionManager{store: store}
}

// RunInTx runs fn with exclusive access to the document. Nested calls join
// the outer transaction. The document is discarded when fn fails.
func (t *transactionManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if _, ok := txFrom(ctx); ok {
		return fn(ctx)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	doc, err := t.store.Load(ctx)
	if err != nil {
		return err
	}
	state := &txState{doc: doc}
	if err := fn(context.WithValue(ctx, txKey, state)); err != nil {
		return err
	}
	if !state.dirty {
		return nil
	}
	return t.store.Save(ctx, state.doc)
}

func txFrom(ctx context.Context) (*txState, bool) {
	state, ok := ctx.Value(txKey).(*txState)
	return state, ok
}
