package user

import (
	"net/http"

	"neroli_back_end/internal/cache"
	"neroli_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

// CartStore est injecté au démarrage (Redis en prod, mémoire dans les tests).
var CartStore cache.CartStore

//
// 🛒 GET /api/cart
//
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	cart, err := CartStore.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": cart})
}

//
// 🟢 POST /api/cart
//
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var item models.CartItem
	if err := c.ShouldBindJSON(&item); err != nil || item.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	cart, err := CartStore.Upsert(c.Request.Context(), userID, item)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit ajouté au panier",
		"items":   cart,
	})
}

//
// 🔁 PUT /api/cart
//
func UpdateCartQuantity(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required,min=1"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	cart, err := CartStore.SetQuantity(c.Request.Context(), userID, input.ProductID, input.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": cart})
}

//
// ❌ DELETE /api/cart/:productId
//
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	productID := c.Param("productId")

	cart, err := CartStore.Remove(c.Request.Context(), userID, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit supprimé du panier",
		"items":   cart,
	})
}

//
// 🧹 DELETE /api/cart
//
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	if err := CartStore.Clear(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Panier vidé avec succès",
		"items":   []models.CartItem{},
	})
}
