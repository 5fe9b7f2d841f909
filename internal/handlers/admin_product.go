package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/models"
)

/* =======================
   REQUEST MODELS
======================= */

type ProductUpdateRequest struct {
	Name     *string  `json:"name"`
	Price    *float64 `json:"price"`
	Category *string  `json:"category"`
	InStock  *bool    `json:"inStock"`
	Featured *bool    `json:"featured"`
}

/* =======================
   GET (ADMIN) – LIST
======================= */

func GetAllProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/products"
		defer handlePanic(c, route)

		products, err := loadCatalog(c.Request.Context(), db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		search := c.Query("search")
		filtered := make([]models.Product, 0, len(products))
		for _, p := range products {
			if matchesAdminSearch(p, search) {
				filtered = append(filtered, p)
			}
		}

		log.Printf("[%s] returning %d of %d products", route, len(filtered), len(products))
		c.JSON(http.StatusOK, filtered)
	}
}

/* =======================
   CREATE
======================= */

func CreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		log.Println("CreateProduct: request received")
		if !strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "multipart/form-data required"})
			return
		}

		input, err := parseMultipartProductRequest(c)
		if err != nil {
			log.Println("CreateProduct multipart error:", err)
			respondMultipartError(c, err)
			return
		}

		name := strings.TrimSpace(input.Name)
		if !input.NameSet || name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
			return
		}

		if !input.PriceSet || input.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
			return
		}

		if !input.CategorySet || strings.TrimSpace(input.Category) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category required"})
			return
		}

		inStock := true
		if input.InStockSet {
			inStock = input.InStock
		}
		featured := false
		if input.FeaturedSet {
			featured = input.Featured
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		// new products land at the end of the manual order
		count, err := db.Collection("products").CountDocuments(ctx, bson.M{})
		if err != nil {
			log.Println("CreateProduct count error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		displayOrder := int(count)

		product := models.Product{
			Name:         name,
			Price:        input.Price,
			Category:     strings.TrimSpace(input.Category),
			Image:        input.ImagePath,
			InStock:      inStock,
			Featured:     featured,
			DisplayOrder: &displayOrder,
			CreatedAt:    time.Now(),
		}

		res, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			log.Println("CreateProduct insert error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		product.ID = res.InsertedID.(primitive.ObjectID)
		log.Println("CreateProduct insert success:", res.InsertedID)
		c.JSON(http.StatusCreated, product)
	}
}

/* =======================
   UPDATE
======================= */

func UpdateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			log.Println("UpdateProduct RETURN 400:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		log.Println("UpdateProduct request received for id:", id.Hex())

		removeImage := false
		if removeRaw := strings.TrimSpace(c.Query("removeImage")); removeRaw != "" {
			parsedRemove, err := strconv.ParseBool(removeRaw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "removeImage must be boolean"})
				return
			}
			removeImage = parsedRemove
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			log.Println("UpdateProduct find error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		existingImage := strings.TrimSpace(existing.Image)

		updateSet := bson.M{}
		updateUnset := bson.M{}
		newImage := ""

		if strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
			input, err := parseMultipartProductRequest(c)
			if err != nil {
				log.Println("UpdateProduct multipart error:", err)
				respondMultipartError(c, err)
				return
			}

			if input.NameSet {
				name := strings.TrimSpace(input.Name)
				if name == "" {
					c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
					return
				}
				updateSet["name"] = name
			}
			if input.PriceSet {
				if input.Price < 0 {
					c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
					return
				}
				updateSet["price"] = input.Price
			}
			if input.CategorySet {
				category := strings.TrimSpace(input.Category)
				if category == "" {
					c.JSON(http.StatusBadRequest, gin.H{"error": "category required"})
					return
				}
				updateSet["category"] = category
			}
			if input.InStockSet {
				updateSet["inStock"] = input.InStock
			}
			if input.FeaturedSet {
				updateSet["featured"] = input.Featured
			}
			if input.ImageSet && strings.TrimSpace(input.ImagePath) != "" {
				updateSet["image"] = input.ImagePath
				newImage = input.ImagePath
			} else if removeImage {
				updateUnset["image"] = ""
			}
		} else {
			var req ProductUpdateRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				log.Println("UpdateProduct bind error:", err)
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
				return
			}

			if req.Name != nil {
				name := strings.TrimSpace(*req.Name)
				if name == "" {
					c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
					return
				}
				updateSet["name"] = name
			}
			if req.Price != nil {
				if *req.Price < 0 {
					c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
					return
				}
				updateSet["price"] = *req.Price
			}
			if req.Category != nil {
				category := strings.TrimSpace(*req.Category)
				if category == "" {
					c.JSON(http.StatusBadRequest, gin.H{"error": "category required"})
					return
				}
				updateSet["category"] = category
			}
			if req.InStock != nil {
				updateSet["inStock"] = *req.InStock
			}
			if req.Featured != nil {
				updateSet["featured"] = *req.Featured
			}
			if removeImage {
				updateUnset["image"] = ""
			}
		}

		if len(updateSet) == 0 && len(updateUnset) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		update := bson.M{}
		if len(updateSet) > 0 {
			update["$set"] = updateSet
		}
		if len(updateUnset) > 0 {
			update["$unset"] = updateUnset
		}

		result, err := db.Collection("products").UpdateOne(ctx, bson.M{"_id": id}, update)
		if err != nil {
			log.Println("UpdateProduct update error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		if newImage != "" && existingImage != "" && existingImage != newImage {
			if err := safeDeleteUpload(existingImage); err != nil {
				log.Printf("UpdateProduct old image delete failed: %v", err)
			}
		} else if removeImage && existingImage != "" {
			if err := safeDeleteUpload(existingImage); err != nil {
				log.Printf("UpdateProduct removeImage delete failed: %v", err)
			}
		}

		var updated models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			log.Println("UpdateProduct find error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

/* =======================
   DELETE (HARD)
======================= */

func DeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		res, err := db.Collection("products").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		if err := safeDeleteUpload(existing.Image); err != nil {
			log.Printf("DeleteProduct image delete failed: %v", err)
		}

		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}
