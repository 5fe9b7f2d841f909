package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
)

/*
GET /admin/api/orders
- newest first; search matches store name, owner name, phone, or any
  item name
*/
func GetOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders"
		defer handlePanic(c, route)

		filter := bson.M{}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["$or"] = []bson.M{
				{"storeName": bson.M{"$regex": search, "$options": "i"}},
				{"ownerName": bson.M{"$regex": search, "$options": "i"}},
				{"phone": bson.M{"$regex": search, "$options": "i"}},
				{"items.name": bson.M{"$regex": search, "$options": "i"}},
			}
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("orders").Find(ctx, filter, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		log.Printf("[%s] returning %d orders", route, len(orders))
		c.JSON(http.StatusOK, orders)
	}
}

func DeleteOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("orders").DeleteOne(ctx, bson.M{"_id": orderID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
	}
}
