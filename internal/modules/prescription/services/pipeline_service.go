package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MuhamadAgungGumelar/prescription-reader-be/internal/core/ocr"
	"github.com/MuhamadAgungGumelar/prescription-reader-be/internal/core/prescription"
	"github.com/MuhamadAgungGumelar/prescription-reader-be/internal/shared/utils"
)

var (
	// ErrInvalidImageType means the upload's content type is not an image.
	// Returned before any network call.
	ErrInvalidImageType = errors.New("uploaded file must be an image")

	// ErrNoTextFound means OCR succeeded but produced no readable text
	ErrNoTextFound = errors.New("no readable text found in the image")
)

// OCRGateway is the image-to-text dependency
type OCRGateway interface {
	ExtractText(ctx context.Context, imageData []byte, mimeType string) (*ocr.OCRResult, error)
	GetProviderName() string
}

// Extractor is the structured-extraction dependency. It is total: failures
// surface as a degraded record, never as an error.
type Extractor interface {
	Extract(ctx context.Context, rawText string) *prescription.MedicationRecord
}

// PipelineService sequences one upload through OCR and structured
// extraction. All fallback and retry behavior lives inside the gateway;
// this layer only validates, sequences and assembles.
type PipelineService struct {
	gateway   OCRGateway
	extractor Extractor
}

// NewPipelineService creates the pipeline
func NewPipelineService(gateway OCRGateway, extractor Extractor) *PipelineService {
	return &PipelineService{
		gateway:   gateway,
		extractor: extractor,
	}
}

// Process runs the full pipeline for one uploaded image. Validation and OCR
// failures are returned as errors; extraction failures are absorbed into a
// degraded record so a non-error result is always fully displayable.
func (s *PipelineService) Process(ctx context.Context, imageData []byte, mimeType string) (*prescription.ExtractionResult, error) {
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, ErrInvalidImageType
	}

	ocrResult, err := s.gateway.ExtractText(ctx, imageData, mimeType)
	if err != nil {
		return nil, fmt.Errorf("text extraction failed: %w", err)
	}

	rawText := ocrResult.Text
	if strings.TrimSpace(rawText) == "" {
		return nil, ErrNoTextFound
	}

	utils.LogInfo("ocr text extracted", map[string]interface{}{
		"provider":   s.gateway.GetProviderName(),
		"confidence": ocrResult.Confidence,
		"chars":      len(rawText),
	})

	record := s.extractor.Extract(ctx, rawText)

	normalizedText := record.FullText

	return &prescription.ExtractionResult{
		RawText:        rawText,
		NormalizedText: normalizedText,
		AdminTimes:     prescription.DetectAdminTimes(normalizedText),
		MedicationInfo: record,
	}, nil
}
