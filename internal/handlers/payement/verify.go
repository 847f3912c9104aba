package payement

import (
	"log"
	"net/http"
	"os"

	"neroli_back_end/internal/services"
	"neroli_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// VerifyPayment contrôle l'authenticité du callback de la passerelle :
// signature HMAC-SHA256 sur "<order_id>|<payment_id>", comparée en temps
// constant, puis relecture du paiement côté passerelle si activée.
func VerifyPayment(c *gin.Context) {
	var req struct {
		RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
		RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
		RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	secret := os.Getenv("RAZORPAY_KEY_SECRET")
	if !utils.VerifyPaymentSignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, secret) {
		log.Printf("❌ Signature de paiement invalide pour %s", req.RazorpayOrderID)
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": "Signature invalide"})
		return
	}

	// Second facteur : la signature seule n'atteste pas la capture effective.
	if os.Getenv("RAZORPAY_CONFIRM_CAPTURE") == "true" {
		payment, err := services.FetchGatewayPayment(req.RazorpayPaymentID)
		if err != nil {
			log.Println("❌ Erreur relecture paiement passerelle:", err)
			c.JSON(http.StatusBadGateway, gin.H{"valid": false, "error": "Paiement invérifiable auprès de la passerelle"})
			return
		}

		status, _ := payment["status"].(string)
		if status != "captured" && status != "authorized" {
			log.Printf("❌ Paiement %s au statut %q, refusé", req.RazorpayPaymentID, status)
			c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": "Paiement non capturé"})
			return
		}
	}

	log.Printf("✅ Paiement vérifié : %s / %s", req.RazorpayOrderID, req.RazorpayPaymentID)
	c.JSON(http.StatusOK, gin.H{"valid": true})
}
