package models

// Category is the ticket tier. The tier decides the tariff applied when a
// ticket is purchased without an explicit price.
type Category string

const (
	CategorySilver   Category = "SILVER"
	CategoryGold     Category = "GOLD"
	CategoryPlatinum Category = "PLATINUM"
)

func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategorySilver, CategoryGold, CategoryPlatinum:
		return Category(s), true
	}
	return "", false
}
