package user

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"neroli_back_end/internal/cache"
	"neroli_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newCartRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	CartStore = cache.NewMemoryCartStore()

	r := gin.New()
	// simule le middleware JWT
	r.Use(func(c *gin.Context) { c.Set("user_id", "u-test") })

	r.GET("/api/cart", GetCart)
	r.POST("/api/cart", AddToCart)
	r.PUT("/api/cart", UpdateCartQuantity)
	r.DELETE("/api/cart/:productId", RemoveFromCart)
	r.DELETE("/api/cart", ClearCart)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func cartItems(t *testing.T, w *httptest.ResponseRecorder) []models.CartItem {
	t.Helper()
	var resp struct {
		Items []models.CartItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Items
}

func TestAddToCart_RepeatAddsSumQuantities(t *testing.T) {
	r := newCartRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/cart",
		models.CartItem{ProductID: "santal-royal", Name: "Santal Royal", Price: 12500, Quantity: 2, Size: "100ml"})
	require.Equal(t, http.StatusOK, w.Code)

	// sans quantité → défaut 1
	w = doJSON(t, r, http.MethodPost, "/api/cart",
		models.CartItem{ProductID: "santal-royal", Name: "Santal Royal", Price: 12500, Size: "100ml"})
	require.Equal(t, http.StatusOK, w.Code)

	items := cartItems(t, w)
	require.Len(t, items, 1)
	require.Equal(t, 3, items[0].Quantity)
}

func TestAddToCart_MissingProductID(t *testing.T) {
	r := newCartRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/cart", models.CartItem{Name: "sans id"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCartQuantity(t *testing.T) {
	r := newCartRouter(t)

	doJSON(t, r, http.MethodPost, "/api/cart", models.CartItem{ProductID: "p1", Quantity: 1})

	w := doJSON(t, r, http.MethodPut, "/api/cart", gin.H{"product_id": "p1", "quantity": 4})
	require.Equal(t, http.StatusOK, w.Code)
	items := cartItems(t, w)
	require.Equal(t, 4, items[0].Quantity)

	// id inconnu → liste inchangée
	w = doJSON(t, r, http.MethodPut, "/api/cart", gin.H{"product_id": "fantome", "quantity": 9})
	require.Equal(t, http.StatusOK, w.Code)
	items = cartItems(t, w)
	require.Len(t, items, 1)
	require.Equal(t, 4, items[0].Quantity)
}

func TestRemoveFromCart(t *testing.T) {
	r := newCartRouter(t)

	doJSON(t, r, http.MethodPost, "/api/cart", models.CartItem{ProductID: "p1", Quantity: 1})
	doJSON(t, r, http.MethodPost, "/api/cart", models.CartItem{ProductID: "p2", Quantity: 1})

	// suppression d'un id inexistant → no-op
	w := doJSON(t, r, http.MethodDelete, "/api/cart/fantome", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, cartItems(t, w), 2)

	w = doJSON(t, r, http.MethodDelete, "/api/cart/p1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := cartItems(t, w)
	require.Len(t, items, 1)
	require.Equal(t, "p2", items[0].ProductID)
}

func TestClearCart(t *testing.T) {
	r := newCartRouter(t)

	doJSON(t, r, http.MethodPost, "/api/cart", models.CartItem{ProductID: "p1", Quantity: 1})
	doJSON(t, r, http.MethodPost, "/api/cart", models.CartItem{ProductID: "p2", Quantity: 3})

	w := doJSON(t, r, http.MethodDelete, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/cart", nil)
	require.Empty(t, cartItems(t, w))
}

func TestCart_Unauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	CartStore = cache.NewMemoryCartStore()

	r := gin.New() // pas de middleware → user_id absent
	r.GET("/api/cart", GetCart)

	w := doJSON(t, r, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
