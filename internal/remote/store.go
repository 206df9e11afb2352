package remote

import (
	"context"
	"errors"

	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/order"
)

// ErrRemote wraps transport and server failures from the remote store.
var ErrRemote = errors.New("remote store error")

// Response is the remote store's answer to a submitted order.
type Response struct {
	ID    string `json:"id"`
	Total int    `json:"total"`
}

// Store fetches the catalog and accepts finalized orders.
type Store interface {
	List(ctx context.Context) ([]catalog.Product, error)
	Submit(ctx context.Context, o order.Order) (Response, error)
}
