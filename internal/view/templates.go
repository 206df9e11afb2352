package view

import (
	"fmt"
	"html/template"
)

const (
	currencyUnit   = "synapses"
	pricelessLabel = "Priceless"
)

// FormatPrice renders a nullable price for display.
func FormatPrice(price *int) string {
	if price == nil {
		return pricelessLabel
	}
	return fmt.Sprintf("%d %s", *price, currencyUnit)
}

var funcs = template.FuncMap{
	"price": FormatPrice,
	"inc":   func(i int) int { return i + 1 },
}

var (
	catalogTmpl = template.Must(template.New("catalog").Funcs(funcs).Parse(`<div class="gallery">
{{- range .Products}}
  <button class="gallery__item card" data-action="open" data-value="{{.Title}}">
    <span class="card__category">{{.Category}}</span>
    <h2 class="card__title">{{.Title}}</h2>
    <img class="card__image" src="{{.Image}}" alt="{{.Title}}">
    <span class="card__price">{{price .Price}}</span>
  </button>
{{- end}}
</div>
<button class="header__basket" data-action="basket">Basket (<span class="header__basket-counter">{{.Count}}</span>)</button>
`))

	productTmpl = template.Must(template.New("product").Funcs(funcs).Parse(`<div class="card card_full">
  <span class="card__category">{{.Product.Category}}</span>
  <h2 class="card__title">{{.Product.Title}}</h2>
  <p class="card__text">{{.Product.Description}}</p>
  <img class="card__image" src="{{.Product.Image}}" alt="{{.Product.Title}}">
  <span class="card__price">{{price .Product.Price}}</span>
  <button class="card__button" data-action="button">{{.Button}}</button>
</div>
`))

	basketTmpl = template.Must(template.New("basket").Funcs(funcs).Parse(`<div class="basket">
  <h2 class="basket__title">Basket</h2>
  <ul class="basket__list">
{{- range .Items}}
    <li class="basket__item">
      <span class="basket__item-index">{{inc .Index}}</span>
      <span class="card__title">{{.Product.Title}}</span>
      <span class="card__price">{{price .Product.Price}}</span>
      <button class="basket__item-delete" data-action="remove" data-value="{{.Product.ID}}">Remove</button>
    </li>
{{- end}}
  </ul>
  <span class="basket__price">{{.Total}} {{.Unit}}</span>
  <button class="button" data-action="proceed">Checkout</button>
</div>
`))

	orderTmpl = template.Must(template.New("order").Funcs(funcs).Parse(`<form class="form" name="order">
  <div class="order__buttons">
    <button type="button" class="button{{if eq .Payment "card"}} button_alt-active{{end}}" data-action="payment" data-value="card">Card</button>
    <button type="button" class="button{{if eq .Payment "cash"}} button_alt-active{{end}}" data-action="payment" data-value="cash">Cash</button>
  </div>
  <label class="order__field">
    <span class="form__label">Delivery address</span>
    <input name="address" type="text" value="{{.Address}}" data-action="address">
  </label>
  <button type="submit" class="order__button" data-action="next"{{if not .Valid}} disabled{{end}}>Next</button>
  <span class="form__errors">{{.Message}}</span>
</form>
`))

	contactsTmpl = template.Must(template.New("contacts").Funcs(funcs).Parse(`<form class="form" name="contacts">
  <label class="order__field">
    <span class="form__label">Email</span>
    <input name="email" type="text" value="{{.Email}}" data-action="email">
  </label>
  <label class="order__field">
    <span class="form__label">Phone</span>
    <input name="phone" type="text" value="{{.Phone}}" data-action="phone">
  </label>
  <button type="submit" class="button" data-action="submit"{{if not .Valid}} disabled{{end}}>Pay</button>
  <span class="form__errors">{{.Message}}</span>
</form>
`))

	successTmpl = template.Must(template.New("success").Funcs(funcs).Parse(`<div class="order-success">
  <h2 class="order-success__title">Order placed</h2>
  <p class="order-success__description">{{.Total}} {{.Unit}} charged</p>
  <button class="order-success__close" data-action="close">Back to shopping</button>
</div>
`))
)
