package domain

import "time"

type Category string

const (
	CategorySkincare  Category = "skincare"
	CategoryMakeup    Category = "makeup"
	CategoryHaircare  Category = "haircare"
	CategoryFragrance Category = "fragrance"
)

func (c Category) Valid() bool {
	switch c {
	case CategorySkincare, CategoryMakeup, CategoryHaircare, CategoryFragrance:
		return true
	}
	return false
}

type Product struct {
	ID          string    `json:"_id"`
	ProductID   string    `json:"productId"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Stock       int       `json:"stock"`
	Category    Category  `json:"category"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductChanges lists the attributes an update writes; nil means unchanged.
type ProductChanges struct {
	Name        *string
	Price       *float64
	Description *string
	Stock       *int
	Category    *Category
	Images      []string
	UpdatedAt   time.Time
}
