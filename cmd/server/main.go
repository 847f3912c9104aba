package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"neroli_back_end/internal/cache"
	"neroli_back_end/internal/config"
	"neroli_back_end/internal/database"
	"neroli_back_end/internal/handlers/product"
	"neroli_back_end/internal/handlers/user"
	"neroli_back_end/internal/metrics"
	"neroli_back_end/internal/routes"
	"neroli_back_end/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/apple"
	"github.com/markbates/goth/providers/google"
)

func main() {
	config.Load()

	services.ConnectRazorpay()

	database.ConnectDatabases()
	defer database.CloseMongo()

	user.CartStore = cache.NewRedisCartStore(database.Redis)

	// ✅ Pré-charger le cache produits
	product.WarmupCache()

	initOAuthProviders()

	r := gin.Default()
	r.Use(cors.New(corsConfig()))

	m := metrics.NewServerMetrics("api")
	routes.RegisterRoutes(r, m)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur Néroli lancé sur le port", port)
	r.Run(":" + port)
}

func corsConfig() cors.Config {
	frontend := os.Getenv("FRONTEND_URL")
	origins := []string{"http://localhost:5173", "http://localhost:3000"}
	if frontend != "" {
		origins = append(origins, frontend)
	}

	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

func initOAuthProviders() {
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		log.Fatal("❌ SESSION_SECRET manquant dans .env")
	}

	// ✅ Configuration du store
	store := sessions.NewCookieStore([]byte(sessionSecret))
	store.MaxAge(86400 * 30)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   false, // false en dev, true en prod
		SameSite: http.SameSiteLaxMode,
	}

	gothic.Store = store

	// ✅ CRITIQUE : Fonction pour extraire le provider depuis l'URL
	gothic.GetProviderName = func(req *http.Request) (string, error) {
		if provider := req.URL.Query().Get("provider"); provider != "" {
			return provider, nil
		}
		if provider := req.FormValue("provider"); provider != "" {
			return provider, nil
		}
		return "", errors.New("provider not found")
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	googleClientID := os.Getenv("GOOGLE_CLIENT_ID_WEB")
	googleClientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	appleClientID := os.Getenv("APPLE_CLIENT_ID")
	appleSecret := os.Getenv("APPLE_CLIENT_SECRET")

	var providers []goth.Provider

	if googleClientID != "" && googleClientSecret != "" {
		providers = append(providers, google.New(
			googleClientID,
			googleClientSecret,
			baseURL+"/api/auth/google/callback",
		))
		log.Println("✅ Google OAuth activé")
	}

	if appleClientID != "" && appleSecret != "" {
		providers = append(providers, apple.New(
			appleClientID,
			appleSecret,
			baseURL+"/api/auth/apple/callback",
			nil,
			apple.ScopeName,
			apple.ScopeEmail,
		))
		log.Println("✅ Apple OAuth activé")
	}

	if len(providers) == 0 {
		log.Println("⚠️ Aucun provider OAuth configuré")
		return
	}

	goth.UseProviders(providers...)
	log.Printf("✅ %d OAuth provider(s) initialisé(s)", len(providers))
}
