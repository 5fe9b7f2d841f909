package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/models"
)

/*
GET /products
- fetches the whole catalog, sorts by displayOrder with a createdAt
  fallback, then applies category + search filters in memory
*/
func GetProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products"
		defer handlePanic(c, route)

		log.Printf(
			"[%s] hit category=%s search=%s",
			route,
			c.Query("category"),
			c.Query("search"),
		)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		products, err := loadCatalog(c.Request.Context(), db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		category := strings.TrimSpace(c.Query("category"))
		search := c.Query("search")
		filtered := filterProducts(products, category, search)

		log.Printf("[%s] returning %d of %d products", route, len(filtered), len(products))
		c.JSON(http.StatusOK, filtered)
	}
}

/*
GET /categories
- the category set is derived from the catalog on every load, never stored
*/
func GetCategories(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /categories"
		defer handlePanic(c, route)

		log.Printf("[%s] hit", route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		products, err := loadCatalog(c.Request.Context(), db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		categories := deriveCategories(products)

		log.Printf("[%s] returning %d categories", route, len(categories))
		c.JSON(http.StatusOK, categories)
	}
}

// loadCatalog fetches every product and returns it in display order. The
// displayOrder/createdAt fallback rule compares pairs, which Mongo sorts
// cannot express, so ordering happens here.
func loadCatalog(ctx context.Context, db *mongo.Database) ([]models.Product, error) {
	findCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := db.Collection("products").Find(findCtx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(findCtx)

	products := make([]models.Product, 0)
	if err := cursor.All(findCtx, &products); err != nil {
		return nil, err
	}

	return sortProducts(products), nil
}
