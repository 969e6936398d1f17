package api

import (
	"database/sql"
	"log"
	stdhttp "net/http"
	"time"

	"imobiliaria/internal/auth"
	intconfig "imobiliaria/internal/config"
	h "imobiliaria/internal/http/handlers"
	"imobiliaria/internal/http/middleware"
	"imobiliaria/internal/repositories"
	"imobiliaria/internal/services"
	"imobiliaria/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, db *sql.DB, store storage.ImageStore) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     env.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.Static("/uploads", env.UploadDir)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "Rota não encontrada.",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	secret := []byte(env.JWTSecret)
	authRequired := middleware.Authenticate(secret)
	brokerOnly := middleware.RequireRole(auth.RoleBroker)
	userOnly := middleware.RequireRole(auth.RoleUser)
	adminOnly := middleware.RequireRole(auth.RoleAdmin)

	system := h.SystemHandler{DB: db}
	userHandler := h.UserHandler{Users: repositories.UserRepository{DB: db}, JWTSecret: secret}
	brokerHandler := h.BrokerHandler{Brokers: repositories.BrokerRepository{DB: db}, JWTSecret: secret}
	propertyHandler := h.PropertyHandler{
		Properties: repositories.PropertyRepository{DB: db},
		Sales:      services.SaleService{DB: db},
		Store:      store,
	}
	favoriteHandler := h.FavoriteHandler{Favorites: repositories.FavoriteRepository{DB: db}}
	adminHandler := h.AdminHandler{
		Admins:     repositories.AdminRepository{DB: db},
		Users:      repositories.UserRepository{DB: db},
		Brokers:    repositories.BrokerRepository{DB: db},
		Properties: repositories.PropertyRepository{DB: db},
		Sales:      repositories.SaleRepository{DB: db},
		Reports:    services.ReportService{Sales: repositories.SaleRepository{DB: db}},
		JWTSecret:  secret,
	}

	api := r.Group("/api")
	{
		api.GET("/", func(c *gin.Context) {
			c.JSON(stdhttp.StatusOK, gin.H{"message": "API Imobiliária no ar!"})
		})
		api.GET("/health", system.Health)
		api.GET("/db-check", system.DBCheck)

		// Users
		users := api.Group("/users")
		users.POST("/register", userHandler.Register)
		users.POST("/login", userHandler.Login)
		favorites := users.Group("/favorites", authRequired, userOnly)
		favorites.GET("", favoriteHandler.List)
		favorites.POST("/:propertyId", favoriteHandler.Add)
		favorites.DELETE("/:propertyId", favoriteHandler.Remove)

		// Brokers
		brokers := api.Group("/brokers")
		brokers.POST("/register", brokerHandler.Register)
		brokers.POST("/login", brokerHandler.Login)

		// Properties
		properties := api.Group("/properties")
		properties.GET("", propertyHandler.List)
		properties.GET("/mine", authRequired, brokerOnly, propertyHandler.Mine)
		properties.GET("/:id", propertyHandler.Show)
		properties.POST("", authRequired, brokerOnly, propertyHandler.Create)
		properties.PUT("/:id", authRequired, brokerOnly, propertyHandler.Update)
		properties.DELETE("/:id", authRequired, brokerOnly, propertyHandler.Delete)
		properties.PATCH("/:id/status", authRequired, brokerOnly, propertyHandler.ChangeStatus)
		properties.POST("/:id/images", authRequired, brokerOnly, propertyHandler.UploadImages)

		// Admin
		admin := api.Group("/admin")
		admin.POST("/login", adminHandler.Login)
		gated := admin.Group("", authRequired, adminOnly)
		gated.GET("/users", adminHandler.ListUsers)
		gated.DELETE("/users/:id", adminHandler.DeleteUser)
		gated.GET("/brokers", adminHandler.ListBrokers)
		gated.DELETE("/brokers/:id", adminHandler.DeleteBroker)
		gated.GET("/properties", adminHandler.ListProperties)
		gated.PUT("/properties/:id", adminHandler.UpdateProperty)
		gated.DELETE("/properties/:id", adminHandler.DeleteProperty)
		gated.GET("/sales", adminHandler.ListSales)
		gated.GET("/sales/report", adminHandler.SalesReport)
	}

	return r
}
