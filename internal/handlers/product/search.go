package product

import (
	"context"
	"log"
	"net/http"
	"time"

	"neroli_back_end/internal/database"
	"neroli_back_end/internal/models"
	"neroli_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// 🔍 Recherche produit — Elasticsearch d'abord, MongoDB en secours
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre q requis"})
		return
	}

	if database.Elastic != nil {
		results, err := services.SearchProducts(query)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results), "source": "elasticsearch"})
			return
		}
		log.Println("⚠️ Recherche Elastic échouée, repli MongoDB:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	regex := bson.M{"$regex": query, "$options": "i"}
	filter := bson.M{
		"is_active": true,
		"$or": []bson.M{
			{"name": regex},
			{"brand": regex},
			{"description": regex},
			{"notes": regex},
			{"tags": regex},
		},
	}

	cursor, err := database.MongoProductsDB.Collection("products").Find(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche"})
		return
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": products, "count": len(products), "source": "mongodb"})
}
