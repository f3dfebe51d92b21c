package config

import "time"

// OCRConfig points at a document-intelligence layout/read service. An empty
// endpoint disables it and scanned PDFs fall back to local tesseract.
type OCRConfig struct {
	Endpoint     string
	APIKey       string
	Model        string
	APIVersion   string
	PollInterval time.Duration
	Timeout      time.Duration
}

func (c OCRConfig) Enabled() bool {
	return c.Endpoint != ""
}
