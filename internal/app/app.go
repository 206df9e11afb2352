// Package app wires the bus, models, views and modal host into the
// storefront session. All model mutation happens in the event handlers here;
// views only read snapshots at render time.
package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/order"
	"github.com/example/storefront/internal/events"
	"github.com/example/storefront/internal/modal"
	"github.com/example/storefront/internal/remote"
	"github.com/example/storefront/internal/view"
)

const submitTimeout = 10 * time.Second

// ViewState tracks which surface currently occupies the modal.
type ViewState int

const (
	StateNone ViewState = iota
	StateProduct
	StateBasket
	StateOrder
	StateContacts
	StateSuccess
)

func (s ViewState) String() string {
	switch s {
	case StateProduct:
		return "product"
	case StateBasket:
		return "basket"
	case StateOrder:
		return "order"
	case StateContacts:
		return "contacts"
	case StateSuccess:
		return "success"
	default:
		return "none"
	}
}

// App is the per-session orchestrator. It owns the three models and the modal
// state machine, transitioning only through the registered event handlers.
type App struct {
	bus     *events.Bus
	catalog *catalog.Model
	cart    *cart.Model
	draft   *order.Draft
	modal   *modal.Host
	store   remote.Store
	views   *view.Views

	state  ViewState
	page   *view.Surface
	notice string
}

func New(bus *events.Bus, store remote.Store) *App {
	a := &App{
		bus:     bus,
		catalog: catalog.NewModel(),
		cart:    cart.NewModel(),
		draft:   order.NewDraft(),
		modal:   modal.NewHost(),
		store:   store,
		views:   view.New(bus),
		state:   StateNone,
	}
	a.register()
	return a
}

func (a *App) register() {
	a.bus.Subscribe(events.EventProductOpen, a.handleProductOpen)
	a.bus.Subscribe(events.EventCartOpen, a.handleCartOpen)
	a.bus.Subscribe(events.EventCartAdd, a.handleCartAdd)
	a.bus.Subscribe(events.EventCartRemove, a.handleCartRemove)
	a.bus.Subscribe(events.EventCartClear, a.handleCartClear)
	a.bus.Subscribe(events.EventOrderUpdate, a.handleOrderUpdate)
	a.bus.Subscribe(events.EventContactsUpdate, a.handleContactsUpdate)
	a.bus.Subscribe(events.EventOrderSubmit, a.handleOrderSubmit)
	a.bus.Subscribe(events.EventOrderSuccess, a.handleOrderSuccess)
	a.bus.Subscribe(events.EventOrderFail, a.handleOrderFail)
	a.bus.Subscribe(events.EventModalOpen, a.handleModalOpen)
	a.bus.Subscribe(events.EventModalClose, a.handleModalClose)
}

// LoadCatalog fetches the product list and seeds the catalog model.
func (a *App) LoadCatalog(ctx context.Context) error {
	products, err := a.store.List(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	a.catalog.SetProducts(products)
	log.Printf("[App] Catalog loaded: %d products", len(products))
	return nil
}

// Page renders the catalog grid from current model state and keeps it as the
// session's live page surface.
func (a *App) Page() (*view.Surface, error) {
	surface, err := a.views.Catalog(a.catalog.Products(), a.cart.Len())
	if err != nil {
		return nil, err
	}
	a.page = surface
	return surface, nil
}

// PageSurface returns the last rendered page surface, if any.
func (a *App) PageSurface() *view.Surface {
	return a.page
}

func (a *App) State() ViewState {
	return a.state
}

func (a *App) Modal() *modal.Host {
	return a.modal
}

func (a *App) Cart() *cart.Model {
	return a.cart
}

// Notice returns the latest user-facing failure notice, empty when none.
func (a *App) Notice() string {
	return a.notice
}

// Close requests the modal to close, through the bus like any other intent.
func (a *App) Close() {
	a.bus.Publish(events.EventModalClose, events.ModalClose{})
}

// Event handlers

func (a *App) handleProductOpen(payload any) {
	p, ok := payload.(events.ProductOpen)
	if !ok {
		return
	}
	product, ok := a.catalog.ByTitle(p.Title)
	if !ok {
		// Lookup misses indicate a data-consistency bug; drop the interaction.
		log.Printf("[App] %v: title %q", catalog.ErrNotFound, p.Title)
		return
	}
	surface, err := a.views.ProductDetail(product, a.cart.Has(product.ID))
	if err != nil {
		log.Printf("[App] Render product view: %v", err)
		return
	}
	a.modal.SetContent(surface)
	a.modal.Open()
	a.state = StateProduct
}

func (a *App) handleCartOpen(payload any) {
	a.showBasket(true)
}

func (a *App) handleCartAdd(payload any) {
	p, ok := payload.(events.CartAdd)
	if !ok {
		return
	}
	a.cart.Add(p.Product)
	a.publishCartUpdate()
}

func (a *App) handleCartRemove(payload any) {
	p, ok := payload.(events.CartRemove)
	if !ok {
		return
	}
	a.cart.Remove(p.ProductID)
	if a.state == StateBasket {
		// Re-render the open basket in place from current model state.
		a.showBasket(false)
	}
	a.publishCartUpdate()
}

func (a *App) handleCartClear(payload any) {
	a.cart.Clear()
	a.publishCartUpdate()
}

func (a *App) handleOrderUpdate(payload any) {
	u, ok := payload.(events.OrderUpdate)
	if !ok {
		return
	}
	if u.Payment != nil {
		a.draft.SetPayment(*u.Payment)
	}
	if u.Address != nil {
		a.draft.SetAddress(*u.Address)
	}
	a.pushValidation(StateOrder, events.EventOrderValidation, a.draft.ValidatePaymentStep())
}

func (a *App) handleContactsUpdate(payload any) {
	u, ok := payload.(events.ContactsUpdate)
	if !ok {
		return
	}
	if u.Email != nil {
		a.draft.SetEmail(*u.Email)
	}
	if u.Phone != nil {
		a.draft.SetPhone(*u.Phone)
	}
	a.pushValidation(StateContacts, events.EventContactsValidation, a.draft.ValidateContactsStep())
}

func (a *App) handleOrderSubmit(payload any) {
	finalized, err := a.draft.Finalize(a.cart.Items(), a.cart.Total())
	if err != nil {
		a.bus.Publish(events.EventOrderFail, events.OrderFail{Err: err})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
	defer cancel()

	if _, err := a.store.Submit(ctx, finalized); err != nil {
		a.bus.Publish(events.EventOrderFail, events.OrderFail{Err: err})
		return
	}
	a.bus.Publish(events.EventOrderSuccess, events.OrderSuccess{Order: finalized})
}

func (a *App) handleOrderSuccess(payload any) {
	p, ok := payload.(events.OrderSuccess)
	if !ok {
		return
	}
	surface, err := a.views.Success(p.Order.Total)
	if err != nil {
		log.Printf("[App] Render success view: %v", err)
		return
	}
	a.modal.SetContent(surface)
	a.modal.Open()
	a.state = StateSuccess
	a.notice = ""
	a.cart.Clear()
	a.draft.Clear()
	a.publishCartUpdate()
}

func (a *App) handleOrderFail(payload any) {
	p, ok := payload.(events.OrderFail)
	if !ok {
		return
	}
	log.Printf("[App] Order submission failed: %v", p.Err)
	a.notice = fmt.Sprintf("order submission failed: %v", p.Err)
	// Leave state and cart untouched so the user can retry; only the open
	// surface's message changes.
	if content := a.modal.Content(); content != nil {
		content.SetValidation(content.Valid, a.notice)
	}
}

func (a *App) handleModalOpen(payload any) {
	a.modal.Open()
}

func (a *App) handleModalClose(payload any) {
	if a.state == StateOrder || a.state == StateContacts {
		// Abandoned checkout drops the accumulated draft.
		a.draft.Clear()
	}
	a.modal.Close()
	a.state = StateNone
}

// Step transitions

func (a *App) showBasket(open bool) {
	surface, err := a.views.Basket(a.cart.Items(), a.cart.Total(), a.showOrderStep)
	if err != nil {
		log.Printf("[App] Render basket view: %v", err)
		return
	}
	a.modal.SetContent(surface)
	if open {
		a.modal.Open()
	}
	a.state = StateBasket
}

func (a *App) showOrderStep() {
	violations := a.draft.ValidatePaymentStep()
	surface, err := a.views.OrderStep(
		a.draft.Payment(), a.draft.Address(),
		len(violations) == 0, strings.Join(violations, ", "),
		a.showContactsStep,
	)
	if err != nil {
		log.Printf("[App] Render order view: %v", err)
		return
	}
	a.modal.SetContent(surface)
	a.modal.Open()
	a.state = StateOrder
}

func (a *App) showContactsStep() {
	violations := a.draft.ValidateContactsStep()
	surface, err := a.views.ContactsStep(
		a.draft.Email(), a.draft.Phone(),
		len(violations) == 0, strings.Join(violations, ", "),
	)
	if err != nil {
		log.Printf("[App] Render contacts view: %v", err)
		return
	}
	a.modal.SetContent(surface)
	a.modal.Open()
	a.state = StateContacts
}

func (a *App) publishCartUpdate() {
	a.bus.Publish(events.EventCartUpdate, events.CartUpdate{Count: a.cart.Len()})
}

// pushValidation publishes the step's validation result and pushes it into
// the currently open form surface without re-rendering it.
func (a *App) pushValidation(step ViewState, event string, violations []string) {
	valid := len(violations) == 0
	message := strings.Join(violations, ", ")
	a.bus.Publish(event, events.Validation{IsValid: valid, Message: message})
	if a.state == step {
		if content := a.modal.Content(); content != nil {
			content.SetValidation(valid, message)
		}
	}
}
