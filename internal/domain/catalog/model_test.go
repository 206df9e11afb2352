package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func testProducts() []Product {
	return []Product{
		{ID: "p1", Title: "Mainframe hamster", Category: "other", Price: intPtr(100), Image: "/p1.svg"},
		{ID: "p2", Title: "Backend anti-stress", Category: "soft", Price: nil, Image: "/p2.svg"},
		{ID: "p3", Title: "Mainframe hamster", Category: "other", Price: intPtr(250), Image: "/p3.svg"},
	}
}

func TestModel_SetProducts_ReplacesOutright(t *testing.T) {
	model := NewModel()
	model.SetProducts(testProducts())
	model.SetProducts([]Product{{ID: "p9", Title: "Fresh"}})

	products := model.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "p9", products[0].ID)

	_, found := model.ByID("p1")
	assert.False(t, found)
}

func TestModel_SetProducts_CopiesInput(t *testing.T) {
	model := NewModel()
	input := testProducts()
	model.SetProducts(input)

	input[0].Title = "mutated"

	products := model.Products()
	assert.Equal(t, "Mainframe hamster", products[0].Title)
}

func TestModel_ByID(t *testing.T) {
	model := NewModel()
	model.SetProducts(testProducts())

	p, found := model.ByID("p2")
	require.True(t, found)
	assert.Equal(t, "Backend anti-stress", p.Title)
	assert.Nil(t, p.Price)

	_, found = model.ByID("missing")
	assert.False(t, found)
}

func TestModel_ByTitle_FirstMatchOnDuplicates(t *testing.T) {
	model := NewModel()
	model.SetProducts(testProducts())

	p, found := model.ByTitle("Mainframe hamster")
	require.True(t, found)
	assert.Equal(t, "p1", p.ID, "title collisions resolve to the first match")
}

func TestModel_ByTitle_NotFound(t *testing.T) {
	model := NewModel()
	model.SetProducts(testProducts())

	_, found := model.ByTitle("does not exist")
	assert.False(t, found)
}

func TestModel_Empty(t *testing.T) {
	model := NewModel()

	assert.Empty(t, model.Products())
	_, found := model.ByID("p1")
	assert.False(t, found)
}
