package ocr

import (
	"context"
	"fmt"
	"log"
)

// Provider interface for image-to-text services
type Provider interface {
	// ExtractText extracts text from image bytes
	ExtractText(ctx context.Context, imageData []byte, mimeType string) (*OCRResult, error)

	// GetProviderName returns the provider name
	GetProviderName() string
}

// OCRResult contains the extracted text and metadata
type OCRResult struct {
	Text       string  `json:"text"`       // Raw extracted text
	Confidence float64 `json:"confidence"` // OCR confidence score (0-1)
}

// Gateway runs an ordered two-provider fallback chain: the primary is tried
// first, and any failure (missing credential, transport error, bad response,
// no text) triggers exactly one attempt on the fallback. No retries, no
// backoff.
type Gateway struct {
	primary  Provider
	fallback Provider
}

// NewGateway creates a gateway. fallback may be nil.
func NewGateway(primary Provider, fallback Provider) *Gateway {
	return &Gateway{primary: primary, fallback: fallback}
}

// ExtractText extracts text using the primary provider, switching to the
// fallback once on failure. When both fail the error names the primary's
// failure, since that is the provider the operator configured.
func (g *Gateway) ExtractText(ctx context.Context, imageData []byte, mimeType string) (*OCRResult, error) {
	result, primaryErr := g.primary.ExtractText(ctx, imageData, mimeType)
	if primaryErr == nil {
		return result, nil
	}

	if g.fallback == nil {
		return nil, fmt.Errorf("%s failed: %w", g.primary.GetProviderName(), primaryErr)
	}

	log.Printf("⚠️ %s failed (%v), trying %s", g.primary.GetProviderName(), primaryErr, g.fallback.GetProviderName())

	result, fallbackErr := g.fallback.ExtractText(ctx, imageData, mimeType)
	if fallbackErr == nil {
		return result, nil
	}

	return nil, fmt.Errorf("all OCR providers failed, %s: %w", g.primary.GetProviderName(), primaryErr)
}

// GetProviderName returns the primary provider's name
func (g *Gateway) GetProviderName() string {
	return g.primary.GetProviderName()
}
