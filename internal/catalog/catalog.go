package catalog

import (
	"errors"

	"github.com/SAILENDHRAB21/PriceBite/internal/domain"
)

var ErrRestaurantNotFound = errors.New("restaurant not found")

// Restaurant is a browsable storefront. Display data only.
type Restaurant struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Rating       float64 `json:"rating"`
	DeliveryTime string  `json:"deliveryTime"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
}

// Catalog is the read-only restaurant and menu fixture. The menu is owned by
// an external catalog service in production; this mirrors its shape so the
// cart can resolve item ids server-side.
type Catalog struct {
	restaurants []Restaurant
	menus       map[string][]domain.MenuItem
	items       map[string]domain.MenuItem
}

func New() *Catalog {
	c := &Catalog{
		restaurants: restaurants,
		menus:       make(map[string][]domain.MenuItem),
		items:       make(map[string]domain.MenuItem),
	}
	for restaurantID, menu := range menus {
		c.menus[restaurantID] = menu
		for _, item := range menu {
			c.items[item.ID] = item
		}
	}
	return c
}

// Restaurants returns all storefronts in display order.
func (c *Catalog) Restaurants() []Restaurant {
	out := make([]Restaurant, len(c.restaurants))
	copy(out, c.restaurants)
	return out
}

// Menu returns the menu for one restaurant.
func (c *Catalog) Menu(restaurantID string) ([]domain.MenuItem, error) {
	menu, ok := c.menus[restaurantID]
	if !ok {
		return nil, ErrRestaurantNotFound
	}
	out := make([]domain.MenuItem, len(menu))
	copy(out, menu)
	return out, nil
}

// Item looks up a single menu item by id.
func (c *Catalog) Item(itemID string) (domain.MenuItem, bool) {
	item, ok := c.items[itemID]
	return item, ok
}
