package model

// Category classifies an asset.
type Category string

const (
	CategoryGold     Category = "gold"
	CategoryCrypto   Category = "crypto"
	CategoryStock    Category = "stock"
	CategoryCurrency Category = "currency"
	CategoryOther    Category = "other"
)

// CategoryInfo holds the display metadata for a category.
type CategoryInfo struct {
	Label string
	Color string
}

// The single source for category labels and chart colors. Views must
// read from this table rather than keeping their own copies.
var categoryTable = map[Category]CategoryInfo{
	CategoryGold:     {Label: "Altın", Color: "#D4AF37"},
	CategoryCrypto:   {Label: "Kripto", Color: "#F7931A"},
	CategoryStock:    {Label: "Hisse", Color: "#00D9A5"},
	CategoryCurrency: {Label: "Döviz", Color: "#3B82F6"},
	CategoryOther:    {Label: "Diğer", Color: "#8B5CF6"},
}

const unknownCategoryColor = "#6B7280"

var categoryOrder = []Category{
	CategoryGold,
	CategoryCrypto,
	CategoryStock,
	CategoryCurrency,
	CategoryOther,
}

// Categories returns all known categories in display order.
func Categories() []Category {
	list := make([]Category, len(categoryOrder))
	copy(list, categoryOrder)

	return list
}

// Valid reports whether the category is one of the known values.
func (category Category) Valid() bool {
	_, ok := categoryTable[category]

	return ok
}

// Info returns display metadata for a category.
//
// Unknown categories fall back to their raw name and a neutral color.
func (category Category) Info() CategoryInfo {
	if info, ok := categoryTable[category]; ok {
		return info
	}

	return CategoryInfo{Label: string(category), Color: unknownCategoryColor}
}
