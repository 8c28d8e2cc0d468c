package prescription

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/MuhamadAgungGumelar/prescription-reader-be/internal/core/llm"
)

// Extractor turns raw OCR text into a MedicationRecord via an LLM.
// It never returns an error: every failure path produces a degraded record
// so the pipeline always has something to display.
type Extractor struct {
	llmService *llm.Service
}

// NewExtractor creates the extractor. llmService may be nil when no
// text-generation credential is configured; extraction then always degrades.
func NewExtractor(llmService *llm.Service) *Extractor {
	return &Extractor{
		llmService: llmService,
	}
}

// Extract parses prescription text into a structured record.
func (e *Extractor) Extract(ctx context.Context, rawText string) *MedicationRecord {
	if e.llmService == nil {
		log.Printf("⚠️ No LLM provider configured, returning degraded record")
		return DegradedRecord(rawText)
	}

	systemPrompt := buildExtractionPrompt()
	userPrompt := "Extract the medication details from this prescription text:\n\n" + rawText

	response, err := e.llmService.GenerateResponse(ctx, systemPrompt, userPrompt)
	if err != nil {
		log.Printf("❌ LLM extraction failed: %v", err)
		return DegradedRecord(rawText)
	}

	// Strip markdown code fences if the model wrapped its output
	cleaned := strings.TrimSpace(response)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var record MedicationRecord
	if err := json.Unmarshal([]byte(cleaned), &record); err != nil {
		log.Printf("⚠️ Failed to parse LLM JSON response: %v", err)
		log.Printf("⚠️ Response was: %s", cleaned)
		return DegradedRecord(rawText)
	}

	applyDefaults(&record, rawText)

	log.Printf("✅ Extracted medication: %s (%s, %s)", record.MedicineName, record.MedicineType, record.Frequency)

	return &record
}

// applyDefaults fills sentinel values for fields the model omitted or left
// empty. fullText falls back to local normalization of the OCR text.
func applyDefaults(record *MedicationRecord, rawText string) {
	fields := []*string{
		&record.MedicineName,
		&record.MedicineType,
		&record.Quantity,
		&record.Frequency,
		&record.TakingMethod,
	}
	for _, field := range fields {
		if strings.TrimSpace(*field) == "" {
			*field = NotSpecified
		}
	}

	if strings.TrimSpace(record.FullText) == "" {
		record.FullText = Normalize(rawText)
	}
	if record.AdminTimes == nil {
		record.AdminTimes = []string{}
	}
}

// buildExtractionPrompt creates the system prompt for medication extraction
func buildExtractionPrompt() string {
	return `You are a prescription reader. Your task is to extract structured medication details from OCR text of a doctor's prescription.

Return ONLY a valid JSON object with this exact structure:

{
  "medicine_name": "Name of the medicine",
  "medicine_type": "tablet | capsule | syrup | injection | cream | drops",
  "quantity": "Amount per dose, e.g. 500 mg or 1 tablet",
  "frequency": "How often to take it, e.g. twice daily",
  "taking_method": "How to take it, e.g. by mouth, with food",
  "admin_times": ["at bedtime"],
  "full_text": "The prescription text with all abbreviations expanded"
}

IMPORTANT RULES:
1. Return ONLY the JSON object, no markdown, no explanation, no code blocks
2. Expand medical abbreviations in full_text: tab -> tablet, po -> by mouth, qhs -> at bedtime, bid -> twice daily, tid -> three times daily, prn -> as needed
3. admin_times is an array of timing phrases such as "at bedtime", "twice daily", "before meals"
4. If a field cannot be determined, use "Not specified" (admin_times: empty array)
5. Do not invent medicines that are not in the text

Example input:
"""
Metformin 500 mg tab
1 tab bid po
"""

Expected output:
{
  "medicine_name": "Metformin",
  "medicine_type": "tablet",
  "quantity": "500 mg",
  "frequency": "twice daily",
  "taking_method": "by mouth",
  "admin_times": ["twice daily"],
  "full_text": "Metformin 500 mg tablet 1 tablet twice daily by mouth"
}

Now extract from the prescription text provided by the user.`
}
