package types

import "fmt"

// Item is a validated item as handlers see it.
type Item struct {
	// Name of the item.
	// example: Foo
	Name string `json:"name" example:"Foo"`
	// Optional free-form description.
	// example: A very nice Item
	Description *string `json:"description" example:"A very nice Item"`
	// Price in the shop's currency.
	// example: 35.4
	Price float64 `json:"price" example:"35.4"`
	// Optional tax amount.
	// example: 3.2
	Tax *float64 `json:"tax" example:"3.2"`
}

// ItemIn is the wire form of an Item request body. Pointer fields keep
// "absent" apart from zero values so required fields can be enforced.
type ItemIn struct {
	Name        *string  `json:"name" validate:"required"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"required"`
	Tax         *float64 `json:"tax"`
}

// Item converts a validated body into the domain form.
// Callers must only use it after validation succeeded.
func (in *ItemIn) Item() Item {
	it := Item{Description: in.Description, Tax: in.Tax}
	if in.Name != nil {
		it.Name = *in.Name
	}
	if in.Price != nil {
		it.Price = *in.Price
	}
	return it
}

// ModelName is one of a closed set of model tags.
type ModelName string

const (
	ModelAlexNet ModelName = "alexnet"
	ModelResNet  ModelName = "resnet"
	ModelLeNet   ModelName = "lenet"
)

// ModelNames lists every member of ModelName in declaration order.
var ModelNames = []ModelName{ModelAlexNet, ModelResNet, ModelLeNet}

// ParseModelName returns the member matching s exactly.
func ParseModelName(s string) (ModelName, error) {
	for _, m := range ModelNames {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown model name %q", s)
}

// CatalogEntry is a single record of the fake item catalog.
type CatalogEntry struct {
	// example: Foo
	ItemName string `json:"item_name" example:"Foo"`
}
