package services

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/MuhamadAgungGumelar/prescription-reader-be/internal/core/ocr"
	"github.com/MuhamadAgungGumelar/prescription-reader-be/internal/core/prescription"
)

type fakeGateway struct {
	result *ocr.OCRResult
	err    error
	calls  int
}

func (f *fakeGateway) ExtractText(ctx context.Context, imageData []byte, mimeType string) (*ocr.OCRResult, error) {
	f.calls++
	return f.result, f.err
}

func (f *fakeGateway) GetProviderName() string {
	return "fake-ocr"
}

type fakeExtractor struct {
	record *prescription.MedicationRecord
	calls  int
}

func (f *fakeExtractor) Extract(ctx context.Context, rawText string) *prescription.MedicationRecord {
	f.calls++
	if f.record != nil {
		return f.record
	}
	return prescription.DegradedRecord(rawText)
}

func TestProcessRejectsNonImageBeforeAnyNetworkCall(t *testing.T) {
	gateway := &fakeGateway{result: &ocr.OCRResult{Text: "some text"}}
	extractor := &fakeExtractor{}
	pipeline := NewPipelineService(gateway, extractor)

	_, err := pipeline.Process(context.Background(), []byte("%PDF-1.4"), "application/pdf")
	if !errors.Is(err, ErrInvalidImageType) {
		t.Fatalf("Expected ErrInvalidImageType, got %v", err)
	}
	if gateway.calls != 0 {
		t.Errorf("Expected 0 gateway calls, got %d", gateway.calls)
	}
	if extractor.calls != 0 {
		t.Errorf("Expected 0 extractor calls, got %d", extractor.calls)
	}
}

func TestProcessOCRFailureSkipsExtraction(t *testing.T) {
	gateway := &fakeGateway{err: errors.New("all OCR providers failed")}
	extractor := &fakeExtractor{}
	pipeline := NewPipelineService(gateway, extractor)

	_, err := pipeline.Process(context.Background(), []byte("img"), "image/png")
	if err == nil {
		t.Fatal("Expected an error when OCR fails")
	}
	if !strings.Contains(err.Error(), "all OCR providers failed") {
		t.Errorf("Expected error to embed the OCR cause, got %q", err.Error())
	}
	if extractor.calls != 0 {
		t.Errorf("Expected 0 extractor calls on OCR failure, got %d", extractor.calls)
	}
}

func TestProcessWhitespaceOnlyTextIsNoTextFound(t *testing.T) {
	gateway := &fakeGateway{result: &ocr.OCRResult{Text: "  \n\t ", Confidence: 0.9}}
	extractor := &fakeExtractor{}
	pipeline := NewPipelineService(gateway, extractor)

	_, err := pipeline.Process(context.Background(), []byte("img"), "image/png")
	if !errors.Is(err, ErrNoTextFound) {
		t.Fatalf("Expected ErrNoTextFound, got %v", err)
	}
	if gateway.calls != 1 {
		t.Errorf("Expected exactly 1 gateway call (no extra fallback), got %d", gateway.calls)
	}
	if extractor.calls != 0 {
		t.Errorf("Expected 0 extractor calls, got %d", extractor.calls)
	}
}

func TestProcessAssemblesResult(t *testing.T) {
	gateway := &fakeGateway{result: &ocr.OCRResult{Text: "Metformin 500 mg tab qhs", Confidence: 0.95}}
	// Degraded extraction still yields admin times and normalized text
	extractor := &fakeExtractor{}
	pipeline := NewPipelineService(gateway, extractor)

	result, err := pipeline.Process(context.Background(), []byte("img"), "image/png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.RawText != "Metformin 500 mg tab qhs" {
		t.Errorf("Unexpected raw text %q", result.RawText)
	}
	if !strings.Contains(result.NormalizedText, "tablet") {
		t.Errorf("Expected normalized text to contain 'tablet', got %q", result.NormalizedText)
	}
	if !strings.Contains(result.NormalizedText, "at bedtime") {
		t.Errorf("Expected normalized text to contain 'at bedtime', got %q", result.NormalizedText)
	}
	if !reflect.DeepEqual(result.AdminTimes, []string{"at bedtime"}) {
		t.Errorf("Expected admin times [at bedtime], got %v", result.AdminTimes)
	}
	if result.MedicationInfo == nil {
		t.Fatal("Expected a medication record in the result")
	}
}

func TestProcessExtractionNeverFailsThePipeline(t *testing.T) {
	gateway := &fakeGateway{result: &ocr.OCRResult{Text: "illegible scrawl", Confidence: 0.4}}
	extractor := &fakeExtractor{}
	pipeline := NewPipelineService(gateway, extractor)

	result, err := pipeline.Process(context.Background(), []byte("img"), "image/jpeg")
	if err != nil {
		t.Fatalf("Expected a degraded success, got error %v", err)
	}
	if result.MedicationInfo.MedicineName != prescription.ExtractionFailed {
		t.Errorf("Expected degraded medicine name, got %q", result.MedicationInfo.MedicineName)
	}
	for _, field := range []string{
		result.MedicationInfo.MedicineType,
		result.MedicationInfo.Quantity,
		result.MedicationInfo.Frequency,
		result.MedicationInfo.TakingMethod,
	} {
		if field != prescription.NotSpecified {
			t.Errorf("Expected sentinel %q, got %q", prescription.NotSpecified, field)
		}
	}
}
