package router

import (
	"github.com/gin-gonic/gin"
	"github.com/jauniforms/pricing-backend/config"
	"github.com/jauniforms/pricing-backend/internal/app/controller"
	"github.com/jauniforms/pricing-backend/internal/middleware"
)

type Router struct {
	authController     *controller.AuthController
	styleController    *controller.StyleController
	catalogController  *controller.CatalogController
	settingsController *controller.SettingsController
	uploadController   *controller.UploadController
	exportController   *controller.ExportController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	styleController *controller.StyleController,
	catalogController *controller.CatalogController,
	settingsController *controller.SettingsController,
	uploadController *controller.UploadController,
	exportController *controller.ExportController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		styleController:    styleController,
		catalogController:  catalogController,
		settingsController: settingsController,
		uploadController:   uploadController,
		exportController:   exportController,
		authMiddleware:     authMiddleware,
		config:             cfg,
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
			"message": "Pricing API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
			auth.POST("/change-password", r.authMiddleware.Authenticate(), r.authController.ChangePassword)
		}

		styles := v1.Group("/styles")
		styles.Use(r.authMiddleware.Authenticate())
		{
			styles.GET("", r.styleController.ListStyles)
			styles.GET("/stats", r.styleController.GetStats)
			styles.GET("/export", r.exportController.ExportStyleList)
			styles.GET("/:id", r.styleController.GetStyle)
			styles.GET("/:id/export", r.exportController.ExportCostSheet)
			styles.POST("", r.styleController.CreateStyle)
			styles.PUT("/:id", r.styleController.UpdateStyle)
			styles.DELETE("/:id", r.styleController.DeleteStyle)
			styles.POST("/:id/attachments", r.styleController.AttachComponent)
			styles.DELETE("/:id/attachments", r.styleController.DetachComponent)
			styles.POST("/:id/recompute", r.styleController.RecomputePrice)
			styles.POST("/:id/duplicate", r.styleController.DuplicateStyle)
			styles.POST("/:id/favorite", r.styleController.ToggleFavorite)
			styles.POST("/:id/images", r.uploadController.RegisterImage)
			styles.DELETE("/:id/images/:imageId", r.uploadController.DeleteImage)
		}

		// Catalog reads are open to any signed-in user; mutations are admin only
		catalog := v1.Group("/catalog")
		catalog.Use(r.authMiddleware.Authenticate())
		{
			catalog.GET("/fabrics", r.catalogController.ListFabrics)
			catalog.GET("/fabrics/:id", r.catalogController.GetFabric)
			catalog.GET("/notions", r.catalogController.ListNotions)
			catalog.GET("/notions/:id", r.catalogController.GetNotion)
			catalog.GET("/labor-operations", r.catalogController.ListLaborOperations)
			catalog.GET("/colors", r.catalogController.ListColors)
			catalog.GET("/variables", r.catalogController.ListVariables)
			catalog.GET("/fabric-vendors", r.catalogController.ListFabricVendors)
			catalog.GET("/notion-vendors", r.catalogController.ListNotionVendors)

			admin := catalog.Group("")
			admin.Use(r.authMiddleware.RequireRole("admin"))
			{
				admin.POST("/fabrics", r.catalogController.CreateFabric)
				admin.PUT("/fabrics/:id", r.catalogController.UpdateFabric)
				admin.DELETE("/fabrics/:id", r.catalogController.DeleteFabric)

				admin.POST("/notions", r.catalogController.CreateNotion)
				admin.PUT("/notions/:id", r.catalogController.UpdateNotion)
				admin.DELETE("/notions/:id", r.catalogController.DeleteNotion)

				admin.POST("/labor-operations", r.catalogController.CreateLaborOperation)
				admin.PUT("/labor-operations/:id", r.catalogController.UpdateLaborOperation)
				admin.DELETE("/labor-operations/:id", r.catalogController.DeleteLaborOperation)

				admin.POST("/colors", r.catalogController.CreateColor)
				admin.PUT("/colors/:id", r.catalogController.UpdateColor)
				admin.DELETE("/colors/:id", r.catalogController.DeleteColor)

				admin.POST("/variables", r.catalogController.CreateVariable)
				admin.PUT("/variables/:id", r.catalogController.UpdateVariable)
				admin.DELETE("/variables/:id", r.catalogController.DeleteVariable)

				admin.POST("/fabric-vendors", r.catalogController.CreateFabricVendor)
				admin.POST("/notion-vendors", r.catalogController.CreateNotionVendor)
			}
		}

		settings := v1.Group("/settings")
		settings.Use(r.authMiddleware.Authenticate())
		{
			settings.GET("", r.settingsController.ListSettings)
			settings.GET("/cleaning-costs", r.settingsController.ListCleaningCosts)
			settings.GET("/size-ranges", r.settingsController.ListSizeRanges)

			admin := settings.Group("")
			admin.Use(r.authMiddleware.RequireRole("admin"))
			{
				admin.PUT("", r.settingsController.SetSetting)
				admin.PUT("/cleaning-costs", r.settingsController.SaveCleaningCost)
				admin.DELETE("/cleaning-costs/:id", r.settingsController.DeleteCleaningCost)
				admin.PUT("/size-ranges", r.settingsController.SaveSizeRange)
				admin.DELETE("/size-ranges/:id", r.settingsController.DeleteSizeRange)
			}
		}

		uploads := v1.Group("/uploads")
		uploads.Use(r.authMiddleware.Authenticate())
		{
			uploads.POST("/presign", r.uploadController.Presign)
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
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
