package admin

import (
	"context"
	"log"
	"net/http"
	"time"

	"neroli_back_end/internal/database"
	"neroli_back_end/internal/middleware"
	"neroli_back_end/internal/models"
	"neroli_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// findAdminByEmail est remplaçable dans les tests.
var findAdminByEmail = func(ctx context.Context, email string) (models.Admin, error) {
	var adm models.Admin
	err := database.MongoAuthDB.Collection("admins").
		FindOne(ctx, bson.M{"email": email}).
		Decode(&adm)
	return adm, err
}

// 🔐 Connexion admin — jeton posé en cookie HttpOnly, jamais dans le corps
func Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	adm, err := findAdminByEmail(ctx, req.Email)
	if err != nil || !utils.CheckPassword(req.Password, adm.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	token, err := utils.GenerateAdminJWT(adm)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AdminCookieName, token, 86400, "/", "", false, true)

	log.Println("✅ Connexion admin:", adm.Email)
	c.JSON(http.StatusOK, gin.H{
		"admin": gin.H{
			"id":    adm.ID.Hex(),
			"name":  adm.Name,
			"email": adm.Email,
		},
	})
}

// Vérifie que le cookie admin est toujours valide
func CheckAuth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"admin_id":      c.GetString("admin_id"),
	})
}

// 🚪 Déconnexion — expire le cookie côté navigateur
func Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AdminCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Déconnecté"})
}
