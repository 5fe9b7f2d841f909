package handlers

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
)

/* =======================
   DRAG PERMUTATION
======================= */

// moveItem removes the element at source and reinserts it at destination.
// A negative destination (cancelled drag) or destination equal to source
// returns the list unchanged.
func moveItem(products []models.Product, source, destination int) []models.Product {
	if source < 0 || source >= len(products) {
		return products
	}
	if destination < 0 || destination == source || destination >= len(products) {
		return products
	}

	reordered := make([]models.Product, 0, len(products))
	reordered = append(reordered, products[:source]...)
	reordered = append(reordered, products[source+1:]...)

	tail := append([]models.Product{}, reordered[destination:]...)
	reordered = append(reordered[:destination], products[source])
	reordered = append(reordered, tail...)

	return reordered
}

/* =======================
   FILTERED-REORDER PROJECTION
======================= */

// projectDisplayedOrder applies the relative order of a displayed (possibly
// filtered) id list onto the full catalog. Products outside the displayed
// subset keep their positions, so ordinals written afterwards are always
// valid for the whole list, not just the visible subsequence.
//
// Every displayed id must belong to the catalog and appear at most once.
func projectDisplayedOrder(full []models.Product, displayed []primitive.ObjectID) ([]models.Product, error) {
	byID := make(map[primitive.ObjectID]models.Product, len(full))
	for _, p := range full {
		byID[p.ID] = p
	}

	displayedSet := make(map[primitive.ObjectID]struct{}, len(displayed))
	for _, id := range displayed {
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("unknown product id: %s", id.Hex())
		}
		if _, dup := displayedSet[id]; dup {
			return nil, fmt.Errorf("duplicate product id: %s", id.Hex())
		}
		displayedSet[id] = struct{}{}
	}

	projected := make([]models.Product, 0, len(full))
	next := 0
	for _, p := range full {
		if _, ok := displayedSet[p.ID]; ok {
			projected = append(projected, byID[displayed[next]])
			next++
			continue
		}
		projected = append(projected, p)
	}

	return projected, nil
}
