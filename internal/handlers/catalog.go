package handlers

import (
	"sort"
	"strings"

	"storefront/internal/models"
)

/* =======================
   CATALOG ORDERING
======================= */

// sortProducts orders the catalog for display: by displayOrder ascending
// when both sides of a comparison have one, otherwise by creation time
// ascending (a missing timestamp counts as zero, so it sorts first).
func sortProducts(products []models.Product) []models.Product {
	sorted := make([]models.Product, len(products))
	copy(sorted, products)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.DisplayOrder != nil && b.DisplayOrder != nil {
			return *a.DisplayOrder < *b.DisplayOrder
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	return sorted
}

/* =======================
   FILTERING
======================= */

// filterProducts returns the subsequence matching both predicates, in the
// input's relative order. An empty category matches everything; the search
// term is a case-insensitive substring match on the name.
func filterProducts(products []models.Product, category, search string) []models.Product {
	search = strings.ToLower(strings.TrimSpace(search))

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if category != "" && p.Category != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// matchesAdminSearch widens the product search for the admin list: name or
// category, case-insensitive.
func matchesAdminSearch(p models.Product, search string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.Category), search)
}

/* =======================
   CATEGORY DERIVATION
======================= */

// deriveCategories collects the distinct non-empty category values in first
// appearance order. The set depends only on which values are present.
func deriveCategories(products []models.Product) []string {
	seen := map[string]struct{}{}
	categories := make([]string, 0)

	for _, p := range products {
		name := strings.TrimSpace(p.Category)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		categories = append(categories, name)
	}
	return categories
}
