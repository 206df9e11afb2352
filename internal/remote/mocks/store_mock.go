package mocks

import (
	"context"

	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/order"
	"github.com/example/storefront/internal/remote"
)

// MockStore is an in-memory remote.Store for tests.
type MockStore struct {
	Products []catalog.Product
	Resp     remote.Response

	ListErr   error
	SubmitErr error

	// For tracking calls in tests
	ListCalls   int
	SubmitCalls []order.Order
}

func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) List(ctx context.Context) ([]catalog.Product, error) {
	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Products, nil
}

func (m *MockStore) Submit(ctx context.Context, o order.Order) (remote.Response, error) {
	m.SubmitCalls = append(m.SubmitCalls, o)
	if m.SubmitErr != nil {
		return remote.Response{}, m.SubmitErr
	}
	if m.Resp == (remote.Response{}) {
		return remote.Response{ID: "order-1", Total: o.Total}, nil
	}
	return m.Resp, nil
}
