package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func multipartContext(t *testing.T, build func(w *multipart.Writer)) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	build(writer)
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/admin/api/products", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func TestParseMultipartProductRequest_CustomCategoryWins(t *testing.T) {
	c := multipartContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("category", "Snacks")
		_ = w.WriteField("customCategory", "Beverages")
	})

	parsed, err := parseMultipartProductRequest(c)
	if err != nil {
		t.Fatalf("parseMultipartProductRequest returned error: %v", err)
	}
	if !parsed.CategorySet || parsed.Category != "Beverages" {
		t.Fatalf("expected custom category to win, got %+v", parsed)
	}
}

func TestParseMultipartProductRequest_CheckboxOnMeansTrue(t *testing.T) {
	c := multipartContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("inStock", "on")
		_ = w.WriteField("featured", "false")
	})

	parsed, err := parseMultipartProductRequest(c)
	if err != nil {
		t.Fatalf("parseMultipartProductRequest returned error: %v", err)
	}
	if !parsed.InStockSet || !parsed.InStock {
		t.Fatalf("expected inStock=true, got %+v", parsed)
	}
	if !parsed.FeaturedSet || parsed.Featured {
		t.Fatalf("expected featured=false, got %+v", parsed)
	}
}

func TestParseMultipartProductRequest_UnsetFieldsStayUnset(t *testing.T) {
	c := multipartContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("name", "Widget")
	})

	parsed, err := parseMultipartProductRequest(c)
	if err != nil {
		t.Fatalf("parseMultipartProductRequest returned error: %v", err)
	}
	if !parsed.NameSet || parsed.Name != "Widget" {
		t.Fatalf("expected name set, got %+v", parsed)
	}
	if parsed.PriceSet || parsed.CategorySet || parsed.InStockSet || parsed.FeaturedSet || parsed.ImageSet {
		t.Fatalf("expected other fields unset, got %+v", parsed)
	}
}

func TestParseMultipartProductRequest_BadPriceFails(t *testing.T) {
	c := multipartContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("price", "not-a-number")
	})

	if _, err := parseMultipartProductRequest(c); err == nil {
		t.Fatal("expected parse error for non-numeric price")
	}
}
