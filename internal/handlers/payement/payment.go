package payement

import (
	"log"
	"net/http"

	"neroli_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreatePaymentOrder crée une commande Razorpay pour le montant du panier.
// Le client utilise l'id retourné avec le checkout hébergé de la passerelle.
func CreatePaymentOrder(c *gin.Context) {
	var req struct {
		Amount float64 `json:"amount" binding:"required,gt=0"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Montant invalide"})
		return
	}

	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	// Reçu unique par appel ; un nouvel appel crée une nouvelle
	// commande passerelle, sans clé d'idempotence.
	receipt := "rcpt_" + uuid.NewString()

	body, err := services.CreateGatewayOrder(req.Amount, receipt)
	if err != nil {
		log.Println("❌ Erreur Razorpay:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande de paiement"})
		return
	}

	log.Printf("💳 Commande passerelle créée : %v (%.2f₹) pour %s", body["id"], req.Amount, userID)

	c.JSON(http.StatusOK, gin.H{
		"order_id": body["id"],
		"amount":   body["amount"],
		"currency": body["currency"],
		"receipt":  receipt,
		"key_id":   services.RazorpayKeyID,
	})
}
