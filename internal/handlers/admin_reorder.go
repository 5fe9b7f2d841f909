package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/models"
)

type reorderRequest struct {
	// displayed order after a drag, possibly a filtered subset
	IDs []string `json:"ids"`

	// alternatively, a raw drag over the unfiltered list
	Source      *int `json:"source"`
	Destination *int `json:"destination"`
}

/*
POST /admin/api/products/reorder
- with ids: the relative order of the displayed (possibly filtered) subset
  is projected onto the full catalog before ordinals are assigned, so a
  filtered reorder can never corrupt hidden items
- with source/destination: the drag is applied to the full list directly;
  a missing destination (cancelled drag) is a no-op
- per-item writes are sequential, not atomic; the canonical list is reloaded
  and returned either way
*/
func ReorderProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/products/reorder"
		defer handlePanic(c, route)

		var req reorderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}
		if len(req.IDs) == 0 && req.Source == nil {
			respondWithError(c, http.StatusBadRequest, route, "ids or source/destination required")
			return
		}

		full, err := loadCatalog(c.Request.Context(), db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		var projected []models.Product
		if len(req.IDs) > 0 {
			displayed := make([]primitive.ObjectID, 0, len(req.IDs))
			for _, raw := range req.IDs {
				id, err := primitive.ObjectIDFromHex(raw)
				if err != nil {
					respondWithError(c, http.StatusBadRequest, route, "invalid product id: "+raw)
					return
				}
				displayed = append(displayed, id)
			}

			projected, err = projectDisplayedOrder(full, displayed)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, err.Error())
				return
			}
		} else {
			if req.Destination == nil || *req.Destination == *req.Source {
				// cancelled or in-place drag
				c.JSON(http.StatusOK, gin.H{
					"message":  "order unchanged",
					"products": full,
				})
				return
			}
			if *req.Source < 0 || *req.Source >= len(full) {
				respondWithError(c, http.StatusBadRequest, route, "source out of range")
				return
			}
			projected = moveItem(full, *req.Source, *req.Destination)
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		for index, product := range projected {
			_, err := db.Collection("products").UpdateOne(
				ctx,
				bson.M{"_id": product.ID},
				bson.M{"$set": bson.M{"displayOrder": index}},
			)
			if err != nil {
				log.Printf("[%s] ordinal write failed at index %d (%s): %v", route, index, product.ID.Hex(), err)

				// partial write: hand the caller the canonical state instead
				canonical, reloadErr := loadCatalog(c.Request.Context(), db)
				if reloadErr != nil {
					respondWithError(c, http.StatusInternalServerError, route, "db error")
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{
					"error":    "failed to update product order",
					"products": canonical,
				})
				return
			}
		}

		canonical, err := loadCatalog(c.Request.Context(), db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] wrote ordinals for %d products", route, len(projected))
		c.JSON(http.StatusOK, gin.H{
			"message":  "product order updated",
			"products": canonical,
		})
	}
}
