package prescription

// Sentinel values used when the extraction output is missing a field or
// failed entirely. The UI renders these as-is.
const (
	NotSpecified     = "Not specified"
	ExtractionFailed = "Extraction failed"
)

// MedicationRecord is the structured shape extracted from prescription text
type MedicationRecord struct {
	MedicineName string   `json:"medicine_name"`
	MedicineType string   `json:"medicine_type"`
	Quantity     string   `json:"quantity"`
	Frequency    string   `json:"frequency"`
	TakingMethod string   `json:"taking_method"`
	AdminTimes   []string `json:"admin_times"`
	FullText     string   `json:"full_text"`
}

// ExtractionResult is the complete payload for one processed upload.
// It lives for a single request/response cycle and is never persisted.
type ExtractionResult struct {
	RawText        string            `json:"raw_text"`
	NormalizedText string            `json:"normalized_text"`
	AdminTimes     []string          `json:"admin_times"`
	MedicationInfo *MedicationRecord `json:"medication_info"`
}

// DegradedRecord builds the fallback record returned when structured
// extraction fails. Admin times are recovered locally from the normalized
// text so the caller always gets a displayable result.
func DegradedRecord(rawText string) *MedicationRecord {
	normalized := Normalize(rawText)
	return &MedicationRecord{
		MedicineName: ExtractionFailed,
		MedicineType: NotSpecified,
		Quantity:     NotSpecified,
		Frequency:    NotSpecified,
		TakingMethod: NotSpecified,
		AdminTimes:   DetectAdminTimes(normalized),
		FullText:     normalized,
	}
}
