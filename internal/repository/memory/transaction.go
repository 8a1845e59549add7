package memory

import (
	"context"

	"github.com/cge-corrientes/huella-backend-go/internal/pkg/database"
)

type transactor struct{}

// NewTransactor returns a Transactor that runs fn directly. Memory writes are
// applied immediately and are not rolled back.
func NewTransactor() database.Transactor {
	return transactor{}
}

func (transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
