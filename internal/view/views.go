// Package view turns model snapshots into presentable surfaces. Renderers are
// pure over their inputs and hold no business logic: user intents are emitted
// as bus events or handed to caller-supplied continuations.
package view

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/events"
)

type Views struct {
	bus *events.Bus
}

func New(bus *events.Bus) *Views {
	return &Views{bus: bus}
}

// Catalog renders the product grid with the basket affordance. Opening a
// product emits product:open keyed by title; the basket emits cart:open.
func (v *Views) Catalog(products []catalog.Product, cartCount int) (*Surface, error) {
	html, err := render(catalogTmpl, struct {
		Products []catalog.Product
		Count    int
	}{products, cartCount})
	if err != nil {
		return nil, err
	}

	s := newSurface("catalog")
	s.HTML = html
	s.bind("open", func(title string) {
		v.bus.Publish(events.EventProductOpen, events.ProductOpen{Title: title})
	})
	s.bind("basket", func(string) {
		v.bus.Publish(events.EventCartOpen, events.CartOpen{})
	})
	return s, nil
}

// ProductDetail renders one product. The action button toggles between buy
// and remove-from-cart based on current cart membership.
func (v *Views) ProductDetail(p catalog.Product, inCart bool) (*Surface, error) {
	button := "Buy"
	if inCart {
		button = "Remove from cart"
	}
	html, err := render(productTmpl, struct {
		Product catalog.Product
		Button  string
	}{p, button})
	if err != nil {
		return nil, err
	}

	s := newSurface("product")
	s.HTML = html
	s.bind("button", func(string) {
		if inCart {
			v.bus.Publish(events.EventCartRemove, events.CartRemove{ProductID: p.ID})
		} else {
			v.bus.Publish(events.EventCartAdd, events.CartAdd{Product: p})
		}
		inCart = !inCart
	})
	return s, nil
}

// Basket renders cart items in index order with 1-based numbers and the
// running total. Proceeding invokes the caller-supplied continuation, keeping
// the basket decoupled from the step sequence.
func (v *Views) Basket(items []cart.Item, total int, onProceed func()) (*Surface, error) {
	html, err := render(basketTmpl, struct {
		Items []cart.Item
		Total int
		Unit  string
	}{items, total, currencyUnit})
	if err != nil {
		return nil, err
	}

	s := newSurface("basket")
	s.HTML = html
	s.bind("remove", func(productID string) {
		v.bus.Publish(events.EventCartRemove, events.CartRemove{ProductID: productID})
	})
	s.bind("proceed", func(string) {
		onProceed()
	})
	return s, nil
}

// OrderStep renders the payment/address form. Every selection or keystroke
// emits order:update with the full current pair, not deltas. The selected
// payment is a single value, so picking one method deselects the other.
func (v *Views) OrderStep(payment, address string, valid bool, message string, onProceed func()) (*Surface, error) {
	html, err := render(orderTmpl, struct {
		Payment, Address, Message string
		Valid                     bool
	}{payment, address, message, valid})
	if err != nil {
		return nil, err
	}

	s := newSurface("order")
	s.HTML = html
	s.SetValidation(valid, message)

	publish := func() {
		pay, addr := payment, address
		v.bus.Publish(events.EventOrderUpdate, events.OrderUpdate{Payment: &pay, Address: &addr})
	}
	s.bind("payment", func(value string) {
		payment = value
		publish()
	})
	s.bind("address", func(value string) {
		address = strings.TrimSpace(value)
		publish()
	})
	s.bind("next", func(string) {
		if s.Valid {
			onProceed()
		}
	})
	return s, nil
}

// ContactsStep renders the email/phone form. Submit is gated on the current
// validation result and emits order:submit; the orchestrator decides what the
// modal shows next.
func (v *Views) ContactsStep(email, phone string, valid bool, message string) (*Surface, error) {
	html, err := render(contactsTmpl, struct {
		Email, Phone, Message string
		Valid                 bool
	}{email, phone, message, valid})
	if err != nil {
		return nil, err
	}

	s := newSurface("contacts")
	s.HTML = html
	s.SetValidation(valid, message)

	publish := func() {
		em, ph := email, phone
		v.bus.Publish(events.EventContactsUpdate, events.ContactsUpdate{Email: &em, Phone: &ph})
	}
	s.bind("email", func(value string) {
		email = strings.TrimSpace(value)
		publish()
	})
	s.bind("phone", func(value string) {
		phone = strings.TrimSpace(value)
		publish()
	})
	s.bind("submit", func(string) {
		if !s.Valid {
			return
		}
		v.bus.Publish(events.EventOrderSubmit, events.OrderSubmit{})
	})
	return s, nil
}

// Success shows the charged total. Closing is the sole UI trigger for cart
// clearing: it emits modal:close and cart:clear.
func (v *Views) Success(total int) (*Surface, error) {
	html, err := render(successTmpl, struct {
		Total int
		Unit  string
	}{total, currencyUnit})
	if err != nil {
		return nil, err
	}

	s := newSurface("success")
	s.HTML = html
	s.bind("close", func(string) {
		v.bus.Publish(events.EventModalClose, events.ModalClose{})
		v.bus.Publish(events.EventCartClear, events.CartClear{})
	})
	return s, nil
}

func render(tmpl *template.Template, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}
	return template.HTML(buf.String()), nil
}
