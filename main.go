package main

import (
	"fmt"

	"aiinvoice-backend/config"
	"aiinvoice-backend/controllers"
	"aiinvoice-backend/models"
	"aiinvoice-backend/routes"
	"aiinvoice-backend/services"
	"aiinvoice-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found")
	}
	config.SetupLogging()

	cfg := config.Load()

	config.ConnectDB()
	config.DB.AutoMigrate(
		&models.User{},
		&models.Invoice{},
		&models.BusinessProfile{},
	)

	files, err := storage.NewDisk(cfg.UploadDir, cfg.PublicBaseURL, config.ComponentLogger("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("upload storage init failed")
	}

	repo := services.NewInvoiceRepository(config.DB)
	generator := services.NewNumberGenerator(repo, cfg.NumberAttempts, cfg.RetryDelay)
	invoiceSvc := services.NewInvoiceService(repo, generator, cfg.SaveAttempts, config.ComponentLogger("invoice"))
	draftSvc := services.NewDraftService(openai.NewClient(cfg.OpenAIKey), cfg.OpenAIModels, config.ComponentLogger("ai"))

	overdue := services.NewOverdueService(config.DB, config.ComponentLogger("overdue"))
	overdue.StartScheduler()

	r := routes.SetupRouter(cfg, routes.Controllers{
		Auth:    controllers.NewAuthController(config.DB, config.ComponentLogger("auth")),
		Invoice: controllers.NewInvoiceController(invoiceSvc, files, config.ComponentLogger("invoice")),
		Profile: controllers.NewBusinessProfileController(config.DB, files, config.ComponentLogger("businessProfile")),
		AI:      controllers.NewAIController(draftSvc, config.DB, config.ComponentLogger("ai")),
	})
	printRoutes(r)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
