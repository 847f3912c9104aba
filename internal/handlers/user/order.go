package user

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"neroli_back_end/internal/database"
	"neroli_back_end/internal/models"
	"neroli_back_end/internal/services"
	"neroli_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ✅ Crée la commande après vérification du paiement côté client
func CreateOrder(c *gin.Context) {
	userID := c.GetString("user_id")
	email := c.GetString("email")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var req struct {
		Items           []models.OrderItem     `json:"items" binding:"required,min=1,dive"`
		ShippingAddress models.ShippingAddress `json:"shipping_address" binding:"required"`
		PaymentInfo     struct {
			RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
			RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
			Method            string `json:"method"`
		} `json:"payment_info" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	now := time.Now()
	order := models.Order{
		ID:              primitive.NewObjectID(),
		UserID:          userID,
		Items:           req.Items,
		Status:          models.OrderStatusPending,
		ShippingAddress: req.ShippingAddress,
		PaymentInfo: models.PaymentInfo{
			RazorpayOrderID:   req.PaymentInfo.RazorpayOrderID,
			RazorpayPaymentID: req.PaymentInfo.RazorpayPaymentID,
			Status:            "paid",
			Method:            req.PaymentInfo.Method,
			CreatedAt:         now,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	// Le total persisté est toujours recalculé depuis les lignes
	order.TotalAmount = order.ComputeTotal()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := database.MongoOrdersDB.Collection("orders")

	// Le même paiement ne produit jamais deux commandes
	count, err := collection.CountDocuments(ctx, bson.M{"payment_info.razorpay_payment_id": order.PaymentInfo.RazorpayPaymentID})
	if err == nil && count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Commande déjà enregistrée pour ce paiement"})
		return
	}

	if _, err := collection.InsertOne(ctx, order); err != nil {
		log.Println("❌ Erreur insertion commande:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement commande"})
		return
	}

	log.Printf("🛒 Commande %s créée (%.2f₹) pour %s", order.ID.Hex(), order.TotalAmount, userID)

	// 🧹 Panier vidé après commande
	if CartStore != nil {
		if err := CartStore.Clear(ctx, userID); err != nil {
			log.Println("⚠️ Panier non vidé:", err)
		}
	}

	publishOrderEvent("created", order)

	// Facture + e-mail de confirmation en arrière-plan
	go finalizeOrder(order, email)

	c.JSON(http.StatusCreated, order)
}

// finalizeOrder génère la facture PDF, l'archive dans MinIO et envoie
// l'e-mail de confirmation. Tout échec est loggé, jamais remonté au client.
func finalizeOrder(order models.Order, email string) {
	var pdf []byte

	html := utils.GenerateInvoiceHTML(order, email)
	pdf, err := utils.RenderInvoicePDF(html)
	if err != nil {
		log.Println("❌ Erreur génération PDF:", err)
		pdf = nil
	}

	if pdf != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := services.ArchiveInvoice(ctx, order.ID.Hex(), pdf); err != nil {
			log.Println("⚠️ Facture non archivée:", err)
		}
	}

	if email == "" {
		return
	}

	confirmation := utils.GenerateOrderConfirmationHTML(order, email)
	if err := utils.SendConfirmationEmail(email, "Confirmation de votre commande Maison Néroli", confirmation, pdf); err != nil {
		log.Println("❌ Erreur envoi e-mail confirmation:", err)
	} else {
		log.Println("📧 E-mail de confirmation envoyé à", email)
	}
}

// publishOrderEvent pousse l'événement sur le canal du fil admin
func publishOrderEvent(kind string, order models.Order) {
	payload, err := json.Marshal(gin.H{
		"type":   "order_" + kind,
		"order":  order,
		"sentAt": time.Now(),
	})
	if err != nil {
		return
	}
	database.Redis.Publish(context.Background(), "orders:feed", payload)
}

// ✅ Récupère toutes les commandes de l'utilisateur connecté
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := database.MongoOrdersDB.Collection("orders")
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		log.Println("❌ Erreur MongoDB Find:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// loadOwnOrder relit une commande en vérifiant qu'elle appartient à l'utilisateur
func loadOwnOrder(c *gin.Context) (models.Order, bool) {
	var order models.Order

	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return order, false
	}

	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return order, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = database.MongoOrdersDB.Collection("orders").
		FindOne(ctx, bson.M{"_id": oid, "user_id": userID}).
		Decode(&order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return order, false
	}

	return order, true
}

// ✅ Récupère une commande spécifique par ID
func GetOrderByID(c *gin.Context) {
	order, ok := loadOwnOrder(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, order)
}

// 📱 QR de suivi de commande (PNG)
func GetOrderQR(c *gin.Context) {
	order, ok := loadOwnOrder(c)
	if !ok {
		return
	}

	baseURL := os.Getenv("FRONTEND_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5173"
	}
	trackingURL := fmt.Sprintf("%s/orders/%s", baseURL, order.ID.Hex())

	png, err := qrcode.Encode(trackingURL, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération QR"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// 📄 URL signée vers la facture PDF archivée
func GetOrderInvoiceURL(c *gin.Context) {
	order, ok := loadOwnOrder(c)
	if !ok {
		return
	}

	url, err := services.InvoiceSignedURL(c.Request.Context(), order.ID.Hex(), 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Facture indisponible"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"invoice_url": url})
}
