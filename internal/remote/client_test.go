package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/storefront/internal/domain/order"
)

func intPtr(v int) *int { return &v }

// ============================================
// List Tests
// ============================================

func TestClient_List_DecodesEnvelopeAndPrefixesImages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/product", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"total": 2,
			"items": [
				{"id": "p1", "title": "A", "category": "soft", "price": 100, "image": "/a.svg"},
				{"id": "p2", "title": "B", "category": "other", "price": null, "image": "/b.svg"}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "https://cdn.example.com/content")
	products, err := client.List(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, 100, *products[0].Price)
	assert.Equal(t, "https://cdn.example.com/content/a.svg", products[0].Image)
	assert.Nil(t, products[1].Price)
	assert.Equal(t, "https://cdn.example.com/content/b.svg", products[1].Image)
}

func TestClient_List_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.List(context.Background())

	assert.ErrorIs(t, err, ErrRemote)
	assert.ErrorContains(t, err, "500")
}

func TestClient_List_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": [`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.List(context.Background())

	assert.ErrorIs(t, err, ErrRemote)
}

func TestClient_List_ServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.List(context.Background())

	assert.ErrorIs(t, err, ErrRemote)
}

// ============================================
// Submit Tests
// ============================================

func TestClient_Submit_PostsOrderAndDecodesResponse(t *testing.T) {
	var received order.Order
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/order", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "28c57cb4", "total": 100}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	resp, err := client.Submit(context.Background(), order.Order{
		Items:   []string{"p1", "p2"},
		Total:   100,
		Payment: "card",
		Address: "Main St 1",
		Email:   "a@b.c",
		Phone:   "+7 (123) 456-78-90",
	})

	require.NoError(t, err)
	assert.Equal(t, Response{ID: "28c57cb4", Total: 100}, resp)
	assert.Equal(t, []string{"p1", "p2"}, received.Items)
	assert.Equal(t, "card", received.Payment)
}

func TestClient_Submit_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "item p9 not found"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.Submit(context.Background(), order.Order{})

	assert.ErrorIs(t, err, ErrRemote)
	assert.ErrorContains(t, err, "400")
}

func TestClient_Submit_AcceptsAny2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "x", "total": 0}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	resp, err := client.Submit(context.Background(), order.Order{})

	require.NoError(t, err)
	assert.Equal(t, "x", resp.ID)
}
