package router

import (
	"github.com/gin-gonic/gin"
	"github.com/moonhaven/moonjournal-backend/config"
	"github.com/moonhaven/moonjournal-backend/internal/app/controller"
	"github.com/moonhaven/moonjournal-backend/internal/middleware"
)

type Router struct {
	authController       *controller.AuthController
	productController    *controller.ProductController
	cartController       *controller.CartController
	newsletterController *controller.NewsletterController
	contactController    *controller.ContactController
	cartSession          *middleware.CartSession
	config               *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	cartController *controller.CartController,
	newsletterController *controller.NewsletterController,
	contactController *controller.ContactController,
	cartSession *middleware.CartSession,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:       authController,
		productController:    productController,
		cartController:       cartController,
		newsletterController: newsletterController,
		contactController:    contactController,
		cartSession:          cartSession,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Moon Journal API is running",
		})
	})

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
		}

		products := api.Group("/products")
		{
			products.GET("", r.productController.GetAllProducts)
			products.GET("/:id", r.productController.GetProductByID)
		}

		cart := api.Group("/cart")
		cart.Use(r.cartSession.Attach())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("/add", r.cartController.AddToCart)
			cart.DELETE("/remove/:itemId", r.cartController.RemoveFromCart)
			cart.DELETE("/clear", r.cartController.ClearCart)
		}

		newsletter := api.Group("/newsletter")
		{
			newsletter.POST("/subscribe", r.newsletterController.Subscribe)
		}

		api.POST("/contact", r.contactController.SubmitMessage)

		admin := api.Group("/admin")
		admin.Use(middleware.Authenticate(r.config.JWT.Secret))
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.GET("/contact/messages", r.contactController.GetAllMessages)
			admin.GET("/contact/messages/export", r.contactController.ExportMessages)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
