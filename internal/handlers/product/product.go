package product

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"neroli_back_end/internal/database"
	"neroli_back_end/internal/models"
	"neroli_back_end/internal/services"
	"neroli_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productsCacheKey = "products:all"

// invalidateProductsCache purge le cache liste après toute écriture
func invalidateProductsCache(ctx context.Context) {
	if err := database.Redis.Del(ctx, productsCacheKey).Err(); err != nil {
		log.Println("⚠️ Cache produits non purgé:", err)
	}
}

// 🆕 Crée un produit du catalogue (admin)
func CreateProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	p.ID = primitive.NewObjectID()
	p.IsActive = true
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := database.MongoProductsDB.Collection("products").InsertOne(ctx, p); err != nil {
		log.Println("❌ Erreur insertion produit:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement produit"})
		return
	}

	invalidateProductsCache(ctx)
	go services.IndexProduct(p)

	log.Println("🆕 Produit créé:", p.Name)
	c.JSON(http.StatusCreated, p)
}

// loadActiveProducts lit le catalogue actif depuis Mongo, trié du plus récent
// au plus ancien, et le pose dans le cache Redis (1h).
func loadActiveProducts(ctx context.Context) ([]models.Product, error) {
	cursor, err := database.MongoProductsDB.Collection("products").
		Find(ctx, bson.M{"is_active": true}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	if data, err := json.Marshal(products); err == nil {
		database.Redis.Set(ctx, productsCacheKey, data, time.Hour)
	}

	return products, nil
}

// WarmupCache pré-charge le cache produits au démarrage, pour éviter le
// Mongo froid sur le premier GET /api/products.
func WarmupCache() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	products, err := loadActiveProducts(ctx)
	if err != nil {
		log.Println("⚠️ Pré-chargement du cache produits impossible:", err)
		return
	}
	log.Printf("✅ Cache produits pré-chargé (%d produits)", len(products))
}

// 📦 Liste le catalogue actif, avec cache Redis et prix localisé (?country=)
func GetAllProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var products []models.Product

	// Le cache porte la liste brute, jamais les prix localisés
	if cached, err := database.Redis.Get(ctx, productsCacheKey).Result(); err == nil && cached != "" {
		if json.Unmarshal([]byte(cached), &products) == nil {
			respondWithLocalizedPrices(c, products)
			return
		}
	}

	products, err := loadActiveProducts(ctx)
	if err != nil {
		log.Println("❌ Erreur MongoDB Find:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération produits"})
		return
	}

	respondWithLocalizedPrices(c, products)
}

func respondWithLocalizedPrices(c *gin.Context, products []models.Product) {
	country := c.Query("country")
	for i := range products {
		products[i].DisplayPrice = utils.FormatPrice(products[i].Price, country)
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// 🔍 Récupère un produit par ID
func GetProductByID(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var p models.Product
	err = database.MongoProductsDB.Collection("products").
		FindOne(ctx, bson.M{"_id": oid}).
		Decode(&p)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	p.DisplayPrice = utils.FormatPrice(p.Price, c.Query("country"))
	c.JSON(http.StatusOK, p)
}

// 🔄 Met à jour un produit (admin)
func UpdateProduct(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	// Champs gérés par le serveur, jamais écrasés par le client
	delete(updates, "_id")
	delete(updates, "id")
	delete(updates, "created_at")
	updates["updated_at"] = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	collection := database.MongoProductsDB.Collection("products")
	result, err := collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": updates})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	var p models.Product
	if err := collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err == nil {
		go services.IndexProduct(p)
	}

	invalidateProductsCache(ctx)
	c.JSON(http.StatusOK, p)
}

// ❌ Supprime un produit (admin) — soft delete via is_active
func DeleteProduct(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := database.MongoProductsDB.Collection("products").
		UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	invalidateProductsCache(ctx)
	go services.RemoveProductFromIndex(oid.Hex())

	log.Println("❌ Produit désactivé:", oid.Hex())
	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
}
