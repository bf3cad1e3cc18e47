package routes

import (
	"aiinvoice-backend/config"
	"aiinvoice-backend/controllers"
	"aiinvoice-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Controllers bundles the wired HTTP edge for router setup.
type Controllers struct {
	Auth    *controllers.AuthController
	Invoice *controllers.InvoiceController
	Profile *controllers.BusinessProfileController
	AI      *controllers.AIController
}

func SetupRouter(cfg config.App, ctrl Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	r.Use(config.RequestLogger())

	// Uploaded attachments are served back by URL
	r.Static("/uploads", cfg.UploadDir)

	auth := r.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", ctrl.Auth.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Invoice routes
		invoices := api.Group("/invoice")
		{
			invoices.POST("", ctrl.Invoice.CreateInvoice)
			invoices.GET("", ctrl.Invoice.GetInvoices)
			invoices.GET("/:id", ctrl.Invoice.GetInvoice)
			invoices.PUT("/:id", ctrl.Invoice.UpdateInvoice)
			invoices.DELETE("/:id", ctrl.Invoice.DeleteInvoice)
		}

		// Business profile routes
		profile := api.Group("/businessProfile")
		{
			profile.POST("", ctrl.Profile.CreateBusinessProfile)
			profile.GET("/me", ctrl.Profile.GetMyBusinessProfile)
			profile.PUT("/:id", ctrl.Profile.UpdateBusinessProfile)
		}

		// AI draft routes
		ai := api.Group("/ai")
		{
			ai.POST("/generate", ctrl.AI.GenerateDraft)
		}
	}

	return r
}
