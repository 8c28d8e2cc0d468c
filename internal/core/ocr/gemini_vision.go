package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const geminiVisionDefaultBaseURL = "https://generativelanguage.googleapis.com"

const geminiVisionInstruction = "Read all text in this prescription image and return it as plain text, " +
	"line by line, exactly as written. Return only the text, no commentary."

// GeminiVisionProvider implements OCR by sending the image inline to a
// vision-capable Gemini model and asking it to transcribe the text.
type GeminiVisionProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGeminiVisionProvider creates a new Gemini vision OCR provider
func NewGeminiVisionProvider(apiKey string, model string) *GeminiVisionProvider {
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &GeminiVisionProvider{
		apiKey:  apiKey,
		model:   model,
		baseURL: geminiVisionDefaultBaseURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// GetProviderName returns the provider name
func (p *GeminiVisionProvider) GetProviderName() string {
	return "Gemini Vision"
}

// Gemini vision request/response structures
type geminiVisionRequest struct {
	Contents         []geminiVisionContent `json:"contents"`
	GenerationConfig geminiVisionGenConfig `json:"generationConfig"`
}

type geminiVisionContent struct {
	Parts []geminiVisionPart `json:"parts"`
	Role  string             `json:"role,omitempty"`
}

type geminiVisionPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"` // base64 encoded image
}

type geminiVisionGenConfig struct {
	Temperature     float32 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiVisionResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// ExtractText asks the model to transcribe the image
func (p *GeminiVisionProvider) ExtractText(ctx context.Context, imageData []byte, mimeType string) (*OCRResult, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("gemini api key is not configured")
	}

	reqBody := geminiVisionRequest{
		Contents: []geminiVisionContent{
			{
				Parts: []geminiVisionPart{
					{Text: geminiVisionInstruction},
					{InlineData: &geminiInlineData{
						MimeType: mimeType,
						Data:     base64.StdEncoding.EncodeToString(imageData),
					}},
				},
				Role: "user",
			},
		},
		GenerationConfig: geminiVisionGenConfig{
			Temperature:     0,
			MaxOutputTokens: 4096,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/models/%s:generateContent?key=%s", p.baseURL, p.model, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini vision request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini vision error (model: %s, status: %d): %s", p.model, resp.StatusCode, string(body))
	}

	var visionResp geminiVisionResponse
	if err := json.Unmarshal(body, &visionResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(visionResp.Candidates) == 0 || len(visionResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from Gemini Vision")
	}

	return &OCRResult{
		Text:       visionResp.Candidates[0].Content.Parts[0].Text,
		Confidence: 0.9, // the model reports no OCR confidence, use a default
	}, nil
}
