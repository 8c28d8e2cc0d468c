package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// OCR provider selection values for the OCR_PROVIDER override
const (
	OCRProviderGoogleVision = "google_vision"
	OCRProviderGemini       = "gemini"
)

type Config struct {
	Port string
	Env  string

	// OCR
	GoogleVisionAPIKey string
	GeminiAPIKey       string
	OCRProvider        string // explicit primary override, optional

	// Structured extraction
	LLMProvider string
	LLMModel    string
	OpenAIKey   string
	GroqKey     string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		Port:               os.Getenv("PORT"),
		Env:                os.Getenv("ENV"),
		GoogleVisionAPIKey: os.Getenv("GOOGLE_VISION_API_KEY"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		OCRProvider:        os.Getenv("OCR_PROVIDER"),
		LLMProvider:        os.Getenv("LLM_PROVIDER"),
		LLMModel:           os.Getenv("LLM_MODEL"),
		OpenAIKey:          os.Getenv("OPENAI_API_KEY"),
		GroqKey:            os.Getenv("GROQ_API_KEY"),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}

	return cfg
}

// PrimaryOCRProvider resolves which OCR variant goes first: the explicit
// override wins, otherwise Google Vision when its key is present, otherwise
// Gemini. Missing credentials are not checked here; an unconfigured
// provider fails at call time and the gateway falls over.
func (c *Config) PrimaryOCRProvider() string {
	if c.OCRProvider != "" {
		return c.OCRProvider
	}
	if c.GoogleVisionAPIKey != "" {
		return OCRProviderGoogleVision
	}
	return OCRProviderGemini
}
