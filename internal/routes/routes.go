package routes

import (
	"neroli_back_end/internal/handlers/admin"
	"neroli_back_end/internal/handlers/payement"
	"neroli_back_end/internal/handlers/product"
	"neroli_back_end/internal/handlers/user"
	"neroli_back_end/internal/metrics"
	"neroli_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, m *metrics.ServerMetrics) {
	r.Use(m.Middleware())
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")

	// Auth utilisateurs
	auth := api.Group("/auth")
	{
		auth.POST("/signup", middleware.LoginRateLimit(), user.Signup)
		auth.POST("/login", middleware.LoginRateLimit(), user.Login)
		auth.POST("/google", user.GoogleTokenLogin)
		auth.POST("/apple", user.AppleTokenLogin)
		auth.GET("/:provider", user.BeginAuth)
		auth.GET("/:provider/callback", user.CallbackAuth)
		auth.GET("/me", middleware.AuthRequired(), user.Me)
	}

	// Catalogue public
	products := api.Group("/products")
	{
		products.GET("", product.GetAllProducts)
		products.GET("/search", product.SearchProducts)
		products.GET("/:id", product.GetProductByID)
	}

	// Panier (utilisateur connecté)
	cart := api.Group("/cart", middleware.AuthRequired())
	{
		cart.GET("", user.GetCart)
		cart.POST("", user.AddToCart)
		cart.PUT("", user.UpdateCartQuantity)
		cart.DELETE("/:productId", user.RemoveFromCart)
		cart.DELETE("", user.ClearCart)
	}

	// Paiement
	payment := api.Group("/payment", middleware.AuthRequired())
	{
		payment.POST("", payement.CreatePaymentOrder)
		payment.POST("/verify", payement.VerifyPayment)
	}

	// Commandes (utilisateur connecté)
	orders := api.Group("/orders", middleware.AuthRequired())
	{
		orders.POST("", user.CreateOrder)
		orders.GET("", user.GetMyOrders)
		orders.GET("/:id", user.GetOrderByID)
		orders.GET("/:id/qr", user.GetOrderQR)
		orders.GET("/:id/invoice", user.GetOrderInvoiceURL)
	}

	// Back-office
	adminGroup := api.Group("/admin")
	{
		adminGroup.POST("/login", admin.Login)

		secured := adminGroup.Group("", middleware.AdminRequired())
		{
			secured.GET("/check-auth", admin.CheckAuth)
			secured.POST("/logout", admin.Logout)

			secured.GET("/orders", admin.GetAllOrders)
			secured.PUT("/orders/:id/status", admin.UpdateOrderStatus)
			secured.GET("/orders/ws", admin.OrdersFeed)

			secured.POST("/products", product.CreateProduct)
			secured.PUT("/products/:id", product.UpdateProduct)
			secured.DELETE("/products/:id", product.DeleteProduct)
		}
	}
}
