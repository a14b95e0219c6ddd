package catalog

import (
	"sort"
	"time"
)

// Product is the catalog record as the remote API returns it. The client
// never mutates products locally; it round-trips whole records through the
// create/update/delete endpoints.
type Product struct {
	ID          int64   `json:"id,omitempty"`
	Name        string  `json:"name"`
	SKU         string  `json:"sku"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Price       float64 `json:"price"`
}

// Category groups products. The /categories endpoint nests the full product
// list; /categories/categories-only omits it.
type Category struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Products []Product `json:"products,omitempty"`
}

// Registration is the full account-registration record expected by the
// remote API. BirthDate is normalised to UTC before submission and may be
// nil. Admin is always false for self-registration.
type Registration struct {
	UserName    string     `json:"userName"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	BirthDate   *time.Time `json:"birthDate"`
	Address     string     `json:"address"`
	City        string     `json:"city"`
	ZipCode     int        `json:"zipCode"`
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phoneNumber"`
	Password    string     `json:"password"`
	Admin       bool       `json:"admin"`
}

// CategoriesByID sorts categories in place by ascending ID, the order the
// association view presents them in.
func CategoriesByID(categories []Category) []Category {
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].ID < categories[j].ID
	})
	return categories
}

// WithProducts filters to categories that contain at least one product.
func WithProducts(categories []Category) []Category {
	filtered := make([]Category, 0, len(categories))
	for _, c := range categories {
		if len(c.Products) > 0 {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// CategoryOf finds the category containing the product with the given ID.
// Returns nil when the product is uncategorised.
func CategoryOf(categories []Category, productID int64) *Category {
	for i := range categories {
		for _, p := range categories[i].Products {
			if p.ID == productID {
				return &categories[i]
			}
		}
	}
	return nil
}
