package user

import (
	"context"
	"log"
	"net/http"
	"time"

	"neroli_back_end/internal/database"
	"neroli_back_end/internal/models"
	"neroli_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ================== AUTH LOCALE ==================

// Accès Mongo remplaçables dans les tests.
var (
	findLocalUserByEmail = func(ctx context.Context, email string) (models.User, error) {
		var user models.User
		err := database.MongoAuthDB.Collection("users").
			FindOne(ctx, bson.M{"email": email, "provider": "local"}).
			Decode(&user)
		return user, err
	}

	insertUser = func(ctx context.Context, user models.User) error {
		_, err := database.MongoAuthDB.Collection("users").InsertOne(ctx, user)
		return err
	}
)

func Signup(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// email déjà pris pour un compte local ?
	if _, err := findLocalUserByEmail(ctx, input.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur hash mot de passe"})
		return
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  hashedPassword,
		Role:      "user",
		Provider:  "local",
		CreatedAt: time.Now(),
	}

	if err := insertUser(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":  token,
		"userId": user.ID.Hex(),
		"email":  user.Email,
		"name":   user.Name,
		"role":   user.Role,
	})
}

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := findLocalUserByEmail(ctx, input.Email)
	if err != nil || !utils.CheckPassword(input.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"userId": user.ID.Hex(),
		"email":  user.Email,
		"name":   user.Name,
		"role":   user.Role,
	})
}

func Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := database.MongoAuthDB.Collection("users").
		FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":   user.ID.Hex(),
		"name":     user.Name,
		"email":    user.Email,
		"role":     user.Role,
		"provider": user.Provider,
	})
}

// ================== UTILITAIRES OAUTH ==================

// findOrCreateOAuthUser ne fait confiance qu'à des claims déjà vérifiés
// côté serveur (tokeninfo Google, JWKS Apple, callback goth).
func findOrCreateOAuthUser(provider, providerID, email, name string) (models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	col := database.MongoAuthDB.Collection("users")
	var user models.User

	// 1️⃣ Recherche par provider_id
	err := col.FindOne(ctx, bson.M{"provider": provider, "provider_id": providerID}).Decode(&user)
	if err == nil {
		return user, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.User{}, err
	}

	// 2️⃣ Sinon, recherche par email : on fusionne le provider sur le compte existant
	err = col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == nil {
		_, err = col.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
			"$set": bson.M{"provider": provider, "provider_id": providerID},
		})
		if err != nil {
			return models.User{}, err
		}
		log.Printf("🔄 Compte existant fusionné avec provider %s : %s", provider, email)
		user.Provider = provider
		user.ProviderID = providerID
		return user, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.User{}, err
	}

	// 3️⃣ Création d'un nouvel utilisateur fédéré, sans mot de passe
	user = models.User{
		ID:         primitive.NewObjectID(),
		Email:      email,
		Name:       name,
		Provider:   provider,
		ProviderID: providerID,
		Role:       "user",
		CreatedAt:  time.Now(),
	}
	if _, err := col.InsertOne(ctx, user); err != nil {
		return models.User{}, err
	}
	log.Printf("🆕 Utilisateur OAuth créé (%s) : %s", provider, email)
	return user, nil
}
