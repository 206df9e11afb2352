package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/events"
)

func intPtr(v int) *int { return &v }

// lastEvent captures the most recent occurrence of one event name.
func lastEvent(bus *events.Bus, name string) *events.Envelope {
	captured := &events.Envelope{}
	bus.Subscribe(events.Wildcard, func(payload any) {
		env := payload.(events.Envelope)
		if env.Event == name {
			*captured = env
		}
	})
	return captured
}

// ============================================
// Price Formatting Tests
// ============================================

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "100 synapses", FormatPrice(intPtr(100)))
	assert.Equal(t, "0 synapses", FormatPrice(intPtr(0)))
	assert.Equal(t, "Priceless", FormatPrice(nil))
}

// ============================================
// Catalog Tests
// ============================================

func TestViews_Catalog_RendersGridAndCounter(t *testing.T) {
	bus := events.NewBus()
	v := New(bus)

	s, err := v.Catalog([]catalog.Product{
		{ID: "p1", Title: "A", Category: "soft", Price: intPtr(100), Image: "/a.svg"},
		{ID: "p2", Title: "B", Category: "other", Price: nil, Image: "/b.svg"},
	}, 3)

	require.NoError(t, err)
	assert.Equal(t, "catalog", s.Name)
	html := string(s.HTML)
	assert.Contains(t, html, "100 synapses")
	assert.Contains(t, html, "Priceless")
	assert.Contains(t, html, ">3</span>")
}

func TestViews_Catalog_OpenEmitsProductOpenByTitle(t *testing.T) {
	bus := events.NewBus()
	got := lastEvent(bus, events.EventProductOpen)
	v := New(bus)
	s, err := v.Catalog(nil, 0)
	require.NoError(t, err)

	require.True(t, s.Act("open", "Mainframe hamster"))

	assert.Equal(t, events.ProductOpen{Title: "Mainframe hamster"}, got.Payload)
}

func TestViews_Catalog_BasketEmitsCartOpen(t *testing.T) {
	bus := events.NewBus()
	got := lastEvent(bus, events.EventCartOpen)
	v := New(bus)
	s, err := v.Catalog(nil, 0)
	require.NoError(t, err)

	require.True(t, s.Act("basket", ""))

	assert.Equal(t, events.CartOpen{}, got.Payload)
}

func TestViews_Catalog_UnknownActionRejected(t *testing.T) {
	bus := events.NewBus()
	v := New(bus)
	s, err := v.Catalog(nil, 0)
	require.NoError(t, err)

	assert.False(t, s.Act("self-destruct", ""))
}

// ============================================
// Product Detail Tests
// ============================================

func TestViews_ProductDetail_ButtonTogglesAddRemove(t *testing.T) {
	bus := events.NewBus()
	var seen []events.Envelope
	bus.Subscribe(events.Wildcard, func(payload any) {
		seen = append(seen, payload.(events.Envelope))
	})
	v := New(bus)
	p := catalog.Product{ID: "p1", Title: "A", Price: intPtr(100)}

	s, err := v.ProductDetail(p, false)
	require.NoError(t, err)
	assert.Contains(t, string(s.HTML), ">Buy<")

	require.True(t, s.Act("button", ""))
	require.True(t, s.Act("button", ""))
	require.True(t, s.Act("button", ""))

	require.Len(t, seen, 3)
	assert.Equal(t, events.EventCartAdd, seen[0].Event)
	assert.Equal(t, events.CartAdd{Product: p}, seen[0].Payload)
	assert.Equal(t, events.EventCartRemove, seen[1].Event)
	assert.Equal(t, events.CartRemove{ProductID: "p1"}, seen[1].Payload)
	assert.Equal(t, events.EventCartAdd, seen[2].Event)
}

func TestViews_ProductDetail_InCartShowsRemoveLabel(t *testing.T) {
	bus := events.NewBus()
	got := lastEvent(bus, events.EventCartRemove)
	v := New(bus)

	s, err := v.ProductDetail(catalog.Product{ID: "p1", Title: "A"}, true)
	require.NoError(t, err)

	assert.Contains(t, string(s.HTML), "Remove from cart")
	require.True(t, s.Act("button", ""))
	assert.Equal(t, events.CartRemove{ProductID: "p1"}, got.Payload)
}

// ============================================
// Basket Tests
// ============================================

func TestViews_Basket_OneBasedNumbering(t *testing.T) {
	bus := events.NewBus()
	v := New(bus)
	items := []cart.Item{
		{Product: catalog.Product{ID: "p1", Title: "A", Price: intPtr(100)}, Index: 0},
		{Product: catalog.Product{ID: "p2", Title: "B"}, Index: 1},
	}

	s, err := v.Basket(items, 100, func() {})

	require.NoError(t, err)
	html := string(s.HTML)
	assert.Contains(t, html, `basket__item-index">1<`)
	assert.Contains(t, html, `basket__item-index">2<`)
	assert.Contains(t, html, "100 synapses")
}

func TestViews_Basket_RemoveEmitsCartRemoveWithID(t *testing.T) {
	bus := events.NewBus()
	got := lastEvent(bus, events.EventCartRemove)
	v := New(bus)
	s, err := v.Basket(nil, 0, func() {})
	require.NoError(t, err)

	require.True(t, s.Act("remove", "p2"))

	assert.Equal(t, events.CartRemove{ProductID: "p2"}, got.Payload)
}

func TestViews_Basket_ProceedInvokesContinuation(t *testing.T) {
	bus := events.NewBus()
	v := New(bus)
	proceeded := false
	s, err := v.Basket(nil, 0, func() { proceeded = true })
	require.NoError(t, err)

	require.True(t, s.Act("proceed", ""))

	assert.True(t, proceeded)
}

// ============================================
// Order Step Tests
// ============================================

func TestViews_OrderStep_EmitsFullPairOnEveryChange(t *testing.T) {
	bus := events.NewBus()
	got := lastEvent(bus, events.EventOrderUpdate)
	v := New(bus)
	s, err := v.OrderStep("", "", false, "", func() {})
	require.NoError(t, err)

	require.True(t, s.Act("payment", "card"))
	upd := got.Payload.(events.OrderUpdate)
	require.NotNil(t, upd.Payment)
	require.NotNil(t, upd.Address)
	assert.Equal(t, "card", *upd.Payment)
	assert.Equal(t, "", *upd.Address)

	require.True(t, s.Act("address", "  Main St 1  "))
	upd = got.Payload.(events.OrderUpdate)
	assert.Equal(t, "card", *upd.Payment, "previous selection rides along")
	assert.Equal(t, "Main St 1", *upd.Address, "input is trimmed")
}

func TestViews_OrderStep_SelectedPaymentHighlighted(t *testing.T) {
	bus := events.NewBus()
	v := New(bus)

	s, err := v.OrderStep("cash", "Main St", true, "", func() {})

	require.NoError(t, err)
	html := string(s.HTML)
	assert.Contains(t, html, `data-value="cash">Cash`)
	assert.Contains(t, html, `button_alt-active" data-action="payment" data-value="cash"`)
	assert.NotContains(t, html, `button_alt-active" data-action="payment" data-value="card"`)
}

func TestViews_OrderStep_NextGatedOnValidity(t *testing.T) {
	bus := events.NewBus()
	v := New(bus)
	proceeded := false
	s, err := v.OrderStep("", "", false, "payment method is required", func() { proceeded = true })
	require.NoError(t, err)
	assert.Contains(t, string(s.HTML), "disabled")

	require.True(t, s.Act("next", ""))
	assert.False(t, proceeded)

	s.SetValidation(true, "")
	require.True(t, s.Act("next", ""))
	assert.True(t, proceeded)
}

// ============================================
// Contacts Step Tests
// ============================================

func TestViews_ContactsStep_EmitsFullPairOnEveryChange(t *testing.T) {
	bus := events.NewBus()
	got := lastEvent(bus, events.EventContactsUpdate)
	v := New(bus)
	s, err := v.ContactsStep("", "", false, "")
	require.NoError(t, err)

	require.True(t, s.Act("email", "a@b.c"))
	upd := got.Payload.(events.ContactsUpdate)
	require.NotNil(t, upd.Email)
	require.NotNil(t, upd.Phone)
	assert.Equal(t, "a@b.c", *upd.Email)
	assert.Equal(t, "", *upd.Phone)

	require.True(t, s.Act("phone", "+7 (123) 456-78-90"))
	upd = got.Payload.(events.ContactsUpdate)
	assert.Equal(t, "a@b.c", *upd.Email)
	assert.Equal(t, "+7 (123) 456-78-90", *upd.Phone)
}

func TestViews_ContactsStep_SubmitGatedOnValidity(t *testing.T) {
	bus := events.NewBus()
	got := lastEvent(bus, events.EventOrderSubmit)
	submitted := false
	bus.Subscribe(events.EventOrderSubmit, func(payload any) { submitted = true })
	v := New(bus)
	s, err := v.ContactsStep("a@b.c", "bad", false, "invalid phone format")
	require.NoError(t, err)

	require.True(t, s.Act("submit", ""))
	assert.False(t, submitted)

	s.SetValidation(true, "")
	require.True(t, s.Act("submit", ""))
	assert.True(t, submitted)
	assert.Equal(t, events.OrderSubmit{}, got.Payload)
}

func TestViews_ContactsStep_SetValidationLeavesMarkup(t *testing.T) {
	bus := events.NewBus()
	v := New(bus)
	s, err := v.ContactsStep("a@b.c", "+7 (123) 456-78-90", true, "")
	require.NoError(t, err)
	before := s.HTML

	s.SetValidation(false, "invalid email format")

	assert.Equal(t, before, s.HTML)
	assert.False(t, s.Valid)
	assert.Equal(t, "invalid email format", s.Message)
}

// ============================================
// Success Tests
// ============================================

func TestViews_Success_ShowsTotalAndClearsOnClose(t *testing.T) {
	bus := events.NewBus()
	var seen []string
	bus.Subscribe(events.Wildcard, func(payload any) {
		seen = append(seen, payload.(events.Envelope).Event)
	})
	v := New(bus)
	s, err := v.Success(750)
	require.NoError(t, err)

	assert.Contains(t, string(s.HTML), "750 synapses charged")

	require.True(t, s.Act("close", ""))
	assert.Equal(t, []string{events.EventModalClose, events.EventCartClear}, seen)
}

// ============================================
// Escaping Tests
// ============================================

func TestViews_Catalog_EscapesTitles(t *testing.T) {
	bus := events.NewBus()
	v := New(bus)

	s, err := v.Catalog([]catalog.Product{
		{ID: "p1", Title: `<script>alert("x")</script>`, Price: intPtr(1)},
	}, 0)

	require.NoError(t, err)
	assert.NotContains(t, string(s.HTML), "<script>alert")
}
