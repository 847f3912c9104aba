package admin

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"neroli_back_end/internal/database"
	"neroli_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// 📋 Liste toutes les commandes, filtrables par statut (?status=pending)
func GetAllOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := database.MongoOrdersDB.Collection("orders").Find(ctx, filter, opts)
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

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

// 🔄 Change le statut d'une commande, en respectant les transitions autorisées
func UpdateOrderStatus(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required,oneof=pending processing completed cancelled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := database.MongoOrdersDB.Collection("orders")

	var order models.Order
	if err := collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&order); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	if !models.CanTransition(order.Status, req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Transition de statut non autorisée",
			"from":  order.Status,
			"to":    req.Status,
		})
		return
	}

	_, err = collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": req.Status, "updated_at": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour"})
		return
	}

	log.Printf("🔄 Commande %s: %s → %s", oid.Hex(), order.Status, req.Status)

	order.Status = req.Status
	order.UpdatedAt = time.Now()
	publishStatusChange(order)

	c.JSON(http.StatusOK, order)
}

func publishStatusChange(order models.Order) {
	payload, err := json.Marshal(gin.H{
		"type":   "order_status",
		"order":  order,
		"sentAt": time.Now(),
	})
	if err != nil {
		return
	}
	database.Redis.Publish(context.Background(), "orders:feed", payload)
}
