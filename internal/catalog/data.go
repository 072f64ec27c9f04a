package catalog

import "github.com/SAILENDHRAB21/PriceBite/internal/domain"

var restaurants = []Restaurant{
	{
		ID:           "1",
		Name:         "Pizza Paradise",
		Rating:       4.5,
		DeliveryTime: "25-30 min",
		Category:     "Pizza, Italian",
		Description:  "Authentic Italian pizzas with fresh ingredients",
	},
	{
		ID:           "2",
		Name:         "Burger House",
		Rating:       4.3,
		DeliveryTime: "20-25 min",
		Category:     "Burgers, Fast Food",
		Description:  "Juicy burgers and crispy fries",
	},
	{
		ID:           "3",
		Name:         "Sushi Master",
		Rating:       4.7,
		DeliveryTime: "35-40 min",
		Category:     "Japanese, Sushi",
		Description:  "Fresh sushi and authentic Japanese cuisine",
	},
	{
		ID:           "4",
		Name:         "Tandoor Nights",
		Rating:       4.6,
		DeliveryTime: "30-35 min",
		Category:     "Indian, Tandoor",
		Description:  "Spicy Indian curries and tandoori dishes",
	},
}

var menus = map[string][]domain.MenuItem{
	"1": {
		{ID: "m1", Name: "Margherita Pizza", Description: "Classic tomato, mozzarella and basil", Price: 349, Category: "Pizza", IsVeg: true},
		{ID: "m2", Name: "Pepperoni Pizza", Description: "Loaded with spicy pepperoni", Price: 449, Category: "Pizza", IsVeg: false},
		{ID: "m3", Name: "Garlic Breadsticks", Description: "Oven-baked with garlic butter", Price: 149, Category: "Sides", IsVeg: true},
		{ID: "m4", Name: "Tiramisu", Description: "Espresso-soaked layers with mascarpone", Price: 199, Category: "Desserts", IsVeg: true},
	},
	"2": {
		{ID: "m5", Name: "Classic Cheeseburger", Description: "Beef patty with cheddar and pickles", Price: 299, Category: "Burgers", IsVeg: false},
		{ID: "m6", Name: "Veggie Burger", Description: "Grilled vegetable patty with fresh greens", Price: 249, Category: "Burgers", IsVeg: true},
		{ID: "m7", Name: "Crispy Fries", Description: "Golden fries with sea salt", Price: 99, Category: "Sides", IsVeg: true},
		{ID: "m8", Name: "Chocolate Shake", Description: "Thick shake with chocolate fudge", Price: 149, Category: "Beverages", IsVeg: true},
	},
	"3": {
		{ID: "m9", Name: "Salmon Nigiri", Description: "Fresh salmon over seasoned rice", Price: 499, Category: "Sushi", IsVeg: false},
		{ID: "m10", Name: "California Roll", Description: "Crab, avocado and cucumber", Price: 399, Category: "Rolls", IsVeg: false},
		{ID: "m11", Name: "Avocado Maki", Description: "Creamy avocado roll", Price: 299, Category: "Rolls", IsVeg: true},
		{ID: "m12", Name: "Miso Soup", Description: "Traditional soybean broth", Price: 129, Category: "Soups", IsVeg: true},
	},
	"4": {
		{ID: "m13", Name: "Butter Chicken", Description: "Creamy tomato gravy with tandoori chicken", Price: 389, Category: "Curries", IsVeg: false},
		{ID: "m14", Name: "Paneer Tikka", Description: "Char-grilled cottage cheese skewers", Price: 329, Category: "Tandoor", IsVeg: true},
		{ID: "m15", Name: "Dal Makhani", Description: "Slow-cooked black lentils", Price: 269, Category: "Curries", IsVeg: true},
		{ID: "m16", Name: "Garlic Naan", Description: "Tandoor-baked flatbread", Price: 69, Category: "Breads", IsVeg: true},
	},
}
