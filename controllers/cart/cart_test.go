package cartControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/frooos9199/q8fruits-api/models"
)

const testEmail = "shopper@example.com"

func kwd(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad price %q: %v", s, err)
	}
	return d
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB, models.Product) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{}, &models.Product{}, &models.ProductUnit{},
		&models.ProductImage{}, &models.ProductTag{},
		&models.Cart{}, &models.CartItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	apple := models.Product{
		NameEN: "Red Apple", NameAR: "تفاح أحمر", IsPublished: true,
		Units: []models.ProductUnit{
			{LabelEN: "kg", LabelAR: "كيلو", Price: kwd(t, "1.500"), IsDefault: true},
			{LabelEN: "box", LabelAR: "صندوق", Price: kwd(t, "6.750"), Position: 1},
		},
	}
	if err := db.Create(&apple).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	// Stand-in for the token middleware.
	r.Use(func(c *gin.Context) {
		c.Set("user_email", testEmail)
		c.Next()
	})
	r.GET("/api/cart", GetUserCart(db))
	r.POST("/api/cart", AddCartItem(db))
	r.PUT("/api/cart", SetCartItemQuantity(db))
	r.DELETE("/api/cart/:product_id/:unit_id", DeleteCartItem(db))
	r.DELETE("/api/cart", ClearUserCart(db))
	return r, db, apple
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func cartItems(t *testing.T, r *gin.Engine) []models.CartItem {
	t.Helper()
	w := do(t, r, http.MethodGet, "/api/cart", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get cart status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Success bool              `json:"success"`
		Data    []models.CartItem `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	return resp.Data
}

// Adding the same (product, unit) twice merges into one line with the
// summed quantity.
func TestAddCartItemMergesDuplicates(t *testing.T) {
	r, _, apple := setupRouter(t)
	kg := apple.Units[0].ID

	add := AddItemInput{ProductID: apple.ID, UnitID: kg, Quantity: 2}
	if w := do(t, r, http.MethodPost, "/api/cart", add); w.Code != http.StatusCreated {
		t.Fatalf("first add status = %d, body %s", w.Code, w.Body.String())
	}
	add.Quantity = 3
	if w := do(t, r, http.MethodPost, "/api/cart", add); w.Code != http.StatusOK {
		t.Fatalf("second add status = %d, body %s", w.Code, w.Body.String())
	}

	items := cartItems(t, r)
	if len(items) != 1 {
		t.Fatalf("lines = %d, want 1 merged line", len(items))
	}
	if items[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5", items[0].Quantity)
	}
	if !items[0].UnitPrice.Equal(kwd(t, "1.500")) {
		t.Errorf("unit price = %s, want 1.500", items[0].UnitPrice)
	}
}

// The same product under a different unit is a separate line.
func TestAddCartItemDistinctUnits(t *testing.T) {
	r, _, apple := setupRouter(t)

	for _, u := range apple.Units {
		add := AddItemInput{ProductID: apple.ID, UnitID: u.ID, Quantity: 1}
		if w := do(t, r, http.MethodPost, "/api/cart", add); w.Code != http.StatusCreated {
			t.Fatalf("add unit %d status = %d", u.ID, w.Code)
		}
	}
	if items := cartItems(t, r); len(items) != 2 {
		t.Fatalf("lines = %d, want 2", len(items))
	}
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	r, _, apple := setupRouter(t)

	add := AddItemInput{ProductID: 9999, UnitID: apple.Units[0].ID, Quantity: 1}
	if w := do(t, r, http.MethodPost, "/api/cart", add); w.Code != http.StatusBadRequest {
		t.Errorf("unknown product status = %d, want 400", w.Code)
	}

	add = AddItemInput{ProductID: apple.ID, UnitID: 9999, Quantity: 1}
	if w := do(t, r, http.MethodPost, "/api/cart", add); w.Code != http.StatusBadRequest {
		t.Errorf("unknown unit status = %d, want 400", w.Code)
	}
}

// Setting a line's quantity to zero removes the line.
func TestSetQuantityZeroRemovesLine(t *testing.T) {
	r, _, apple := setupRouter(t)
	kg, box := apple.Units[0].ID, apple.Units[1].ID

	do(t, r, http.MethodPost, "/api/cart", AddItemInput{ProductID: apple.ID, UnitID: kg, Quantity: 2})
	do(t, r, http.MethodPost, "/api/cart", AddItemInput{ProductID: apple.ID, UnitID: box, Quantity: 1})

	set := SetQuantityInput{ProductID: apple.ID, UnitID: kg, Quantity: 0}
	if w := do(t, r, http.MethodPut, "/api/cart", set); w.Code != http.StatusOK {
		t.Fatalf("set zero status = %d, body %s", w.Code, w.Body.String())
	}

	items := cartItems(t, r)
	if len(items) != 1 {
		t.Fatalf("lines = %d, want 1", len(items))
	}
	if items[0].UnitID != box {
		t.Errorf("surviving line unit = %d, want %d", items[0].UnitID, box)
	}
}

func TestSetQuantityUpdatesLine(t *testing.T) {
	r, _, apple := setupRouter(t)
	kg := apple.Units[0].ID

	do(t, r, http.MethodPost, "/api/cart", AddItemInput{ProductID: apple.ID, UnitID: kg, Quantity: 2})
	set := SetQuantityInput{ProductID: apple.ID, UnitID: kg, Quantity: 7}
	if w := do(t, r, http.MethodPut, "/api/cart", set); w.Code != http.StatusOK {
		t.Fatalf("set status = %d, body %s", w.Code, w.Body.String())
	}
	if items := cartItems(t, r); items[0].Quantity != 7 {
		t.Errorf("quantity = %d, want 7", items[0].Quantity)
	}
}

func TestDeleteAndClearCart(t *testing.T) {
	r, _, apple := setupRouter(t)
	kg, box := apple.Units[0].ID, apple.Units[1].ID

	do(t, r, http.MethodPost, "/api/cart", AddItemInput{ProductID: apple.ID, UnitID: kg, Quantity: 2})
	do(t, r, http.MethodPost, "/api/cart", AddItemInput{ProductID: apple.ID, UnitID: box, Quantity: 1})

	path := fmt.Sprintf("/api/cart/%d/%d", apple.ID, kg)
	if w := do(t, r, http.MethodDelete, path, nil); w.Code != http.StatusOK {
		t.Fatalf("delete status = %d, body %s", w.Code, w.Body.String())
	}
	// Deleting the same line again is a 404, not a silent success.
	if w := do(t, r, http.MethodDelete, path, nil); w.Code != http.StatusNotFound {
		t.Errorf("repeat delete status = %d, want 404", w.Code)
	}
	if items := cartItems(t, r); len(items) != 1 {
		t.Fatalf("lines = %d, want 1", len(items))
	}

	if w := do(t, r, http.MethodDelete, "/api/cart", nil); w.Code != http.StatusOK {
		t.Fatalf("clear status = %d, body %s", w.Code, w.Body.String())
	}
	if items := cartItems(t, r); len(items) != 0 {
		t.Errorf("lines after clear = %d, want 0", len(items))
	}
}

// Cart line snapshots survive catalog price edits.
func TestCartLineIsSnapshot(t *testing.T) {
	r, db, apple := setupRouter(t)
	kg := apple.Units[0].ID

	do(t, r, http.MethodPost, "/api/cart", AddItemInput{ProductID: apple.ID, UnitID: kg, Quantity: 1})
	if err := db.Model(&models.ProductUnit{}).Where("id = ?", kg).
		Update("price", "2.250").Error; err != nil {
		t.Fatal(err)
	}

	items := cartItems(t, r)
	if !items[0].UnitPrice.Equal(kwd(t, "1.500")) {
		t.Errorf("snapshot price = %s, want 1.500", items[0].UnitPrice)
	}
}

func TestCartRequiresUser(t *testing.T) {
	_, db, apple := setupRouter(t)

	// Same routes without the email-setting middleware.
	bare := gin.New()
	bare.POST("/api/cart", AddCartItem(db))

	var buf bytes.Buffer
	json.NewEncoder(&buf).Encode(AddItemInput{ProductID: apple.ID, UnitID: apple.Units[0].ID, Quantity: 1})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cart", &buf)
	req.Header.Set("Content-Type", "application/json")
	bare.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
