package events

import (
	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/order"
)

// Event names making up the wire contract between views and the orchestrator.
const (
	EventProductOpen        = "product:open"
	EventCartOpen           = "cart:open"
	EventCartAdd            = "cart:add"
	EventCartRemove         = "cart:remove"
	EventCartClear          = "cart:clear"
	EventCartUpdate         = "cart:update"
	EventOrderUpdate        = "order:update"
	EventContactsUpdate     = "contacts:update"
	EventOrderSubmit        = "order:submit"
	EventOrderSuccess       = "order:success"
	EventOrderFail          = "order:fail"
	EventModalOpen          = "modal:open"
	EventModalClose         = "modal:close"
	EventOrderValidation    = "order:validation"
	EventContactsValidation = "contacts:validation"
)

// One payload type per event name. Optional fields use pointers so a partial
// update can tell "absent" from "cleared".

type ProductOpen struct {
	Title string `json:"title"`
}

type CartOpen struct{}

type CartAdd struct {
	Product catalog.Product `json:"product"`
}

type CartRemove struct {
	ProductID string `json:"product_id"`
}

type CartClear struct{}

type CartUpdate struct {
	Count int `json:"count"`
}

type OrderUpdate struct {
	Payment *string `json:"payment,omitempty"`
	Address *string `json:"address,omitempty"`
}

type ContactsUpdate struct {
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

type OrderSubmit struct{}

type OrderSuccess struct {
	Order order.Order `json:"order"`
}

type OrderFail struct {
	Err error `json:"-"`
}

type ModalOpen struct{}

type ModalClose struct{}

// Validation is pushed back to the open form step after each update.
type Validation struct {
	IsValid bool   `json:"is_valid"`
	Message string `json:"message"`
}
