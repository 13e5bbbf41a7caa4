package contact

import (
	"bytes"
	"encoding/json"
)

// Record is the immutable document stored for each submission.
type Record struct {
	SubmissionID string `json:"submissionId"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	CareerStage  string `json:"careerStage"`
	Sport        string `json:"sport"`
	Message      string `json:"message"`
	Referral     string `json:"referral"`
	SubmittedAt  string `json:"submittedAt"`
	Source       string `json:"source"`
	UserAgent    string `json:"userAgent"`
}

// MarshalDocument renders the record as pretty-printed UTF-8 JSON.
func (r *Record) MarshalDocument() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseBody decodes an untrusted request body. Anything that is not a JSON
// object, including an empty or broken body, yields an empty map.
func ParseBody(raw []byte) map[string]any {
	var body map[string]any
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}
	}
	if err := json.Unmarshal(raw, &body); err != nil || body == nil {
		return map[string]any{}
	}
	return body
}
