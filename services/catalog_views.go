package services

import "github.com/Akashx1550/TrendMart-backend/models"

const (
	newCollectionSize = 8
	popularSize       = 4
	relatedSize       = 4
	popularCategory   = "women"
)

// Shuffler permutes n elements in place through swap.
type Shuffler func(n int, swap func(i, j int))

// NewCollectionView skips the first stored product and returns the last
// eight of the rest.
func NewCollectionView(products []models.Product) []models.Product {
	if len(products) <= 1 {
		return []models.Product{}
	}
	return lastN(products[1:], newCollectionSize)
}

// PopularView returns the first four products of an already filtered list.
func PopularView(products []models.Product) []models.Product {
	if len(products) > popularSize {
		products = products[:popularSize]
	}
	return append([]models.Product{}, products...)
}

// RelatedView shuffles a copy of products, drops the first element and
// returns the last four of the remainder.
func RelatedView(products []models.Product, shuffle Shuffler) []models.Product {
	if len(products) <= 1 {
		return []models.Product{}
	}
	shuffled := append([]models.Product{}, products...)
	shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return lastN(shuffled[1:], relatedSize)
}

func lastN(products []models.Product, n int) []models.Product {
	if len(products) > n {
		products = products[len(products)-n:]
	}
	return append([]models.Product{}, products...)
}
