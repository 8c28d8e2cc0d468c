package ocr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newVisionTestProvider(handler http.HandlerFunc) (*GoogleVisionProvider, *httptest.Server) {
	server := httptest.NewServer(handler)
	provider := NewGoogleVisionProvider("test-key")
	provider.baseURL = server.URL
	return provider, server
}

func TestGoogleVisionExtractsFirstAnnotation(t *testing.T) {
	provider, server := newVisionTestProvider(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"responses":[{"textAnnotations":[{"description":"Metformin 500 mg tab qhs","score":0.97},{"description":"Metformin"}]}]}`))
	})
	defer server.Close()

	result, err := provider.ExtractText(context.Background(), []byte("fake-image"), "image/png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Text != "Metformin 500 mg tab qhs" {
		t.Errorf("Expected full text from first annotation, got %q", result.Text)
	}
	if result.Confidence != 0.97 {
		t.Errorf("Expected confidence 0.97, got %f", result.Confidence)
	}
}

func TestGoogleVisionNoAnnotationsIsError(t *testing.T) {
	provider, server := newVisionTestProvider(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"responses":[{}]}`))
	})
	defer server.Close()

	_, err := provider.ExtractText(context.Background(), []byte("blank-image"), "image/png")
	if err == nil {
		t.Fatal("Expected an error for an image with no text annotations")
	}
}

func TestGoogleVisionAPIErrorResponse(t *testing.T) {
	provider, server := newVisionTestProvider(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"responses":[{"error":{"code":7,"message":"invalid api key"}}]}`))
	})
	defer server.Close()

	_, err := provider.ExtractText(context.Background(), []byte("img"), "image/png")
	if err == nil {
		t.Fatal("Expected an error for an API-level error response")
	}
}

func TestGoogleVisionNonSuccessStatus(t *testing.T) {
	provider, server := newVisionTestProvider(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})
	defer server.Close()

	_, err := provider.ExtractText(context.Background(), []byte("img"), "image/png")
	if err == nil {
		t.Fatal("Expected an error for a non-200 status")
	}
}

func TestGoogleVisionMissingKey(t *testing.T) {
	provider := NewGoogleVisionProvider("")

	_, err := provider.ExtractText(context.Background(), []byte("img"), "image/png")
	if err == nil {
		t.Fatal("Expected an error when the api key is not configured")
	}
}
