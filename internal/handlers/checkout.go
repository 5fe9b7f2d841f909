package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/cart"
	"storefront/internal/models"
	"storefront/internal/notify"
)

/* =========================
   REQUEST DTO
========================= */

type checkoutRequest struct {
	StoreName string `json:"storeName" binding:"required"`
	OwnerName string `json:"ownerName" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Street    string `json:"street" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
	Zip       string `json:"zip" binding:"required"`
}

func (r checkoutRequest) validate() error {
	fields := map[string]string{
		"storeName": r.StoreName,
		"ownerName": r.OwnerName,
		"phone":     r.Phone,
		"street":    r.Street,
		"city":      r.City,
		"state":     r.State,
		"zip":       r.Zip,
	}
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required", name)
		}
	}
	return nil
}

func composeAddress(street, city, state, zip string) string {
	return fmt.Sprintf("%s, %s, %s %s",
		strings.TrimSpace(street),
		strings.TrimSpace(city),
		strings.TrimSpace(state),
		strings.TrimSpace(zip),
	)
}

// buildOrder snapshots the cart into an immutable order record. The stored
// total is the exact unrounded sum.
func buildOrder(current *cart.Cart, req checkoutRequest, now time.Time) (models.Order, error) {
	if current.IsEmpty() {
		return models.Order{}, errors.New("cart is empty")
	}

	items := make([]models.OrderItem, 0, len(current.Lines))
	for _, line := range current.Lines {
		productID, err := primitive.ObjectIDFromHex(line.ProductID)
		if err != nil {
			return models.Order{}, errors.New("invalid productId in cart")
		}
		items = append(items, models.OrderItem{
			ProductID: productID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Image:     line.Image,
		})
	}

	return models.Order{
		StoreName: strings.TrimSpace(req.StoreName),
		OwnerName: strings.TrimSpace(req.OwnerName),
		Phone:     strings.TrimSpace(req.Phone),
		Address:   composeAddress(req.Street, req.City, req.State, req.Zip),
		Items:     items,
		Total:     current.Total(),
		CreatedAt: now,
	}, nil
}

/* =========================
   CHECKOUT
========================= */

// Checkout persists the order first; the confirmation email is a best-effort
// side effect keyed off the persisted order id. A lost email never leaves a
// customer charged without an order record.
func Checkout(db *mongo.Database, store cart.Store, notifier notify.Notifier, templateID string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout"
		defer handlePanic(c, route)

		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}
		if err := req.validate(); err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		session := cartSession(c, ttl)
		current, err := store.Get(c.Request.Context(), session)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart unavailable")
			return
		}

		// rejected before any order I/O, cart untouched
		order, err := buildOrder(current, req, time.Now())
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("orders").InsertOne(ctx, order)
		if err != nil {
			log.Printf("[%s] order insert failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "order could not be submitted")
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			order.ID = id
		}

		// the order is durable from here on; the cart clears exactly once
		if err := store.Delete(c.Request.Context(), session); err != nil {
			log.Printf("[%s] cart clear failed for session: %v", route, err)
		}

		if err := notifier.Send(ctx, templateID, orderNotification(order)); err != nil {
			log.Printf("[%s] notification failed for order %s: %v", route, order.ID.Hex(), err)
		}

		log.Printf("[%s] order %s created, total %.2f", route, order.ID.Hex(), order.Total)
		c.JSON(http.StatusCreated, gin.H{
			"orderId": order.ID.Hex(),
			"message": "order placed",
		})
	}
}

func orderNotification(order models.Order) map[string]string {
	itemLines := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		itemLines = append(itemLines, fmt.Sprintf("%d x %s (@ $%.2f each)", item.Quantity, item.Name, item.Price))
	}

	return map[string]string{
		"order_id":   order.ID.Hex(),
		"store_name": order.StoreName,
		"owner_name": order.OwnerName,
		"phone":      order.Phone,
		"address":    order.Address,
		"items":      strings.Join(itemLines, "\n"),
		"total":      fmt.Sprintf("%.2f", order.Total),
	}
}
