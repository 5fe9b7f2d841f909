package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/cart"
)

type recordingNotifier struct {
	calls int
}

func (n *recordingNotifier) Send(ctx context.Context, templateID string, variables map[string]string) error {
	n.calls++
	return nil
}

func validCheckoutRequest() checkoutRequest {
	return checkoutRequest{
		StoreName: "Corner Store",
		OwnerName: "Jordan",
		Phone:     "555-0101",
		Street:    "1 Main St",
		City:      "Springfield",
		State:     "CA",
		Zip:       "90210",
	}
}

func TestCheckoutRequestValidateRejectsBlankFields(t *testing.T) {
	req := validCheckoutRequest()
	req.City = "   "

	if err := req.validate(); err == nil {
		t.Fatal("expected validation error for blank city")
	}
}

func TestComposeAddress(t *testing.T) {
	got := composeAddress(" 1 Main St ", "Springfield", "CA", "90210")
	want := "1 Main St, Springfield, CA 90210"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestBuildOrderRejectsEmptyCart(t *testing.T) {
	_, err := buildOrder(&cart.Cart{}, validCheckoutRequest(), time.Now())
	if err == nil {
		t.Fatal("expected error for empty cart")
	}
}

func TestBuildOrderSnapshotsCartAndTotal(t *testing.T) {
	productID := primitive.NewObjectID()
	current := &cart.Cart{}
	current.Add(cart.Line{
		ProductID: productID.Hex(),
		Name:      "Widget",
		Price:     9.99,
		Quantity:  2,
	})

	now := time.Now()
	order, err := buildOrder(current, validCheckoutRequest(), now)
	if err != nil {
		t.Fatalf("buildOrder returned error: %v", err)
	}

	if len(order.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(order.Items))
	}
	item := order.Items[0]
	if item.ProductID != productID || item.Name != "Widget" || item.Quantity != 2 {
		t.Fatalf("unexpected item snapshot %+v", item)
	}
	if order.Total != 9.99*2 {
		t.Fatalf("expected unrounded total %v, got %v", 9.99*2, order.Total)
	}
	if !order.CreatedAt.Equal(now) {
		t.Fatal("expected createdAt to be the submission time")
	}
	if order.Address != "1 Main St, Springfield, CA 90210" {
		t.Fatalf("unexpected composed address %q", order.Address)
	}
}

func TestBuildOrderRejectsMalformedProductID(t *testing.T) {
	current := &cart.Cart{}
	current.Add(cart.Line{ProductID: "not-an-id", Name: "X", Price: 1, Quantity: 1})

	_, err := buildOrder(current, validCheckoutRequest(), time.Now())
	if err == nil {
		t.Fatal("expected error for malformed product id")
	}
}

// The empty-cart rejection must happen before any backend I/O: the handler
// runs with a nil database and would panic if it ever reached it.
func TestCheckoutEmptyCartRejectedBeforeAnyIO(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := cart.NewMemoryStore()
	notifier := &recordingNotifier{}

	body, _ := json.Marshal(validCheckoutRequest())
	req := httptest.NewRequest("POST", "/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = req

	Checkout(nil, store, notifier, "tpl", time.Hour)(c)

	if recorder.Code != 400 {
		t.Fatalf("expected 400 for empty cart, got %d", recorder.Code)
	}
	if notifier.calls != 0 {
		t.Fatal("expected no notification for rejected checkout")
	}
}

func TestCheckoutMissingFieldRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := cart.NewMemoryStore()
	notifier := &recordingNotifier{}

	payload := validCheckoutRequest()
	payload.Phone = ""
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest("POST", "/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = req

	Checkout(nil, store, notifier, "tpl", time.Hour)(c)

	if recorder.Code != 400 {
		t.Fatalf("expected 400 for missing phone, got %d", recorder.Code)
	}
	if notifier.calls != 0 {
		t.Fatal("expected no notification for rejected checkout")
	}
}

func TestOrderNotificationVariables(t *testing.T) {
	current := &cart.Cart{}
	current.Add(cart.Line{
		ProductID: primitive.NewObjectID().Hex(),
		Name:      "Widget",
		Price:     2.5,
		Quantity:  3,
	})

	order, err := buildOrder(current, validCheckoutRequest(), time.Now())
	if err != nil {
		t.Fatalf("buildOrder returned error: %v", err)
	}

	vars := orderNotification(order)
	if vars["store_name"] != "Corner Store" {
		t.Fatalf("unexpected store_name %q", vars["store_name"])
	}
	if vars["total"] != "7.50" {
		t.Fatalf("unexpected total %q", vars["total"])
	}
	if vars["items"] != "3 x Widget (@ $2.50 each)" {
		t.Fatalf("unexpected items %q", vars["items"])
	}
}
