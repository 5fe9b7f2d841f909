package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/cart"
	"storefront/internal/models"
)

const cartSessionCookie = "cart_session"

type addCartItemRequest struct {
	ProductID string        `json:"productId" binding:"required"`
	Quantity  cart.Quantity `json:"quantity"`
}

type setCartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// cartSession resolves the caller's cart session token, issuing a fresh one
// via cookie when absent. Each browser session owns exactly one cart.
func cartSession(c *gin.Context, ttl time.Duration) string {
	if token, err := c.Cookie(cartSessionCookie); err == nil && token != "" {
		return token
	}
	token := uuid.NewString()
	c.SetCookie(cartSessionCookie, token, int(ttl.Seconds()), "/", "", false, true)
	return token
}

func cartResponse(current *cart.Cart) gin.H {
	return gin.H{
		"lines": current.Lines,
		"count": current.Count(),
		"total": current.DisplayTotal(),
	}
}

/* =========================
   GET CART
========================= */

func GetCart(store cart.Store, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /cart"
		defer handlePanic(c, route)

		session := cartSession(c, ttl)

		current, err := store.Get(c.Request.Context(), session)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart unavailable")
			return
		}

		c.JSON(http.StatusOK, cartResponse(current))
	}
}

/* =========================
   ADD ITEM
========================= */

func AddCartItem(db *mongo.Database, store cart.Store, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart/items"
		defer handlePanic(c, route)

		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		productID, err := primitive.ObjectIDFromHex(req.ProductID)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid productId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if !product.InStock {
			respondWithError(c, http.StatusBadRequest, route, "product is out of stock")
			return
		}

		session := cartSession(c, ttl)
		current, err := store.Get(c.Request.Context(), session)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart unavailable")
			return
		}

		current.Add(cart.Line{
			ProductID: product.ID.Hex(),
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			Quantity:  cart.ClampQuantity(int(req.Quantity)),
		})

		if err := store.Save(c.Request.Context(), session, current); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart unavailable")
			return
		}

		log.Printf("[%s] product %s added, cart count now %d", route, product.ID.Hex(), current.Count())
		c.JSON(http.StatusOK, cartResponse(current))
	}
}

/* =========================
   SET QUANTITY
========================= */

func SetCartItemQuantity(store cart.Store, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /cart/items/:id"
		defer handlePanic(c, route)

		var req setCartQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		session := cartSession(c, ttl)
		current, err := store.Get(c.Request.Context(), session)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart unavailable")
			return
		}

		// a quantity below 1 removes the line
		current.SetQuantity(c.Param("id"), req.Quantity)

		if err := store.Save(c.Request.Context(), session, current); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart unavailable")
			return
		}

		c.JSON(http.StatusOK, cartResponse(current))
	}
}

/* =========================
   REMOVE ITEM
========================= */

func RemoveCartItem(store cart.Store, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /cart/items/:id"
		defer handlePanic(c, route)

		session := cartSession(c, ttl)
		current, err := store.Get(c.Request.Context(), session)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart unavailable")
			return
		}

		current.Remove(c.Param("id"))

		if err := store.Save(c.Request.Context(), session, current); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart unavailable")
			return
		}

		c.JSON(http.StatusOK, cartResponse(current))
	}
}
