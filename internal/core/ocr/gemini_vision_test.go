package ocr

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGeminiVisionExtractsCandidateText(t *testing.T) {
	var captured geminiVisionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &captured)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Amoxicillin 250 mg cap tid"}]}}]}`))
	}))
	defer server.Close()

	provider := NewGeminiVisionProvider("test-key", "")
	provider.baseURL = server.URL

	result, err := provider.ExtractText(context.Background(), []byte("fake-image"), "image/jpeg")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Text != "Amoxicillin 250 mg cap tid" {
		t.Errorf("Expected candidate text, got %q", result.Text)
	}

	// The image must travel inline with its mime type
	if len(captured.Contents) != 1 || len(captured.Contents[0].Parts) != 2 {
		t.Fatalf("Expected one content with instruction and image parts, got %+v", captured.Contents)
	}
	imagePart := captured.Contents[0].Parts[1]
	if imagePart.InlineData == nil {
		t.Fatal("Expected inline image data in the second part")
	}
	if imagePart.InlineData.MimeType != "image/jpeg" {
		t.Errorf("Expected mime type image/jpeg, got %q", imagePart.InlineData.MimeType)
	}
}

func TestGeminiVisionNoCandidatesIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	provider := NewGeminiVisionProvider("test-key", "")
	provider.baseURL = server.URL

	_, err := provider.ExtractText(context.Background(), []byte("img"), "image/png")
	if err == nil {
		t.Fatal("Expected an error when the model returns no candidates")
	}
}

func TestGeminiVisionMissingKey(t *testing.T) {
	provider := NewGeminiVisionProvider("", "")

	_, err := provider.ExtractText(context.Background(), []byte("img"), "image/png")
	if err == nil {
		t.Fatal("Expected an error when the api key is not configured")
	}
}
