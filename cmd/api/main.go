package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/MuhamadAgungGumelar/prescription-reader-be/internal/core/llm"
	"github.com/MuhamadAgungGumelar/prescription-reader-be/internal/core/ocr"
	"github.com/MuhamadAgungGumelar/prescription-reader-be/internal/core/prescription"
	"github.com/MuhamadAgungGumelar/prescription-reader-be/internal/modules/prescription/handlers"
	"github.com/MuhamadAgungGumelar/prescription-reader-be/internal/modules/prescription/services"
	"github.com/MuhamadAgungGumelar/prescription-reader-be/internal/shared/config"
	"github.com/MuhamadAgungGumelar/prescription-reader-be/internal/shared/utils"
)

// @title Prescription Reader API
// @version 1.0
// @description Upload a prescription image and get back structured medication details
// @host localhost:8080
// @BasePath /
func main() {
	// Load config
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env)
	log.Printf("🚀 Starting prescription-reader api on port %s", cfg.Port)

	// Init OCR gateway (two variants, ordered fallback)
	googleVision := ocr.NewGoogleVisionProvider(cfg.GoogleVisionAPIKey)
	geminiVision := ocr.NewGeminiVisionProvider(cfg.GeminiAPIKey, "")

	var gateway *ocr.Gateway
	switch cfg.PrimaryOCRProvider() {
	case config.OCRProviderGemini:
		gateway = ocr.NewGateway(geminiVision, googleVision)
	default:
		gateway = ocr.NewGateway(googleVision, geminiVision)
	}
	log.Printf("🔍 Primary OCR provider: %s", gateway.GetProviderName())

	// Init LLM service for structured extraction. A missing credential is
	// not fatal: extraction degrades per request instead.
	llmProviderName := "none"
	llmService, err := llm.NewService()
	if err != nil {
		utils.LogWarn("structured extraction disabled", map[string]interface{}{
			"reason": err.Error(),
		})
	} else {
		llmProviderName = llmService.GetProviderName()
		log.Printf("🤖 Using LLM provider: %s", llmProviderName)
	}

	extractor := prescription.NewExtractor(llmService)
	pipeline := services.NewPipelineService(gateway, extractor)

	// Init handlers
	prescriptionHandler := handlers.NewPrescriptionHandler(pipeline)
	healthHandler := handlers.NewHealthHandler(gateway.GetProviderName(), llmProviderName)

	// Init Fiber app. The recover middleware plus error handler is the
	// outermost boundary: panics and unhandled errors become a generic
	// retry message, details stay in the logs.
	app := fiber.New(fiber.Config{
		BodyLimit: 12 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			utils.LogError("unhandled error", err, map[string]interface{}{
				"path": c.Path(),
			})
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "something went wrong, please try again",
			})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(logger.New())

	// Routes
	app.Get("/health", healthHandler.GetHealth)
	app.Post("/api/prescriptions/scan", prescriptionHandler.ScanPrescription)

	log.Fatal(app.Listen(":" + cfg.Port))
}
