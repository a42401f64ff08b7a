package config

import (
	"strings"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Extraction.MinTextLength != 100 {
		t.Errorf("expected MinTextLength=100, got %d", cfg.Extraction.MinTextLength)
	}
	if len(cfg.OCR.Languages) != 2 || cfg.OCR.Languages[0] != "fra" || cfg.OCR.Languages[1] != "eng" {
		t.Errorf("expected Languages=[fra eng], got %v", cfg.OCR.Languages)
	}
	if cfg.OCR.DPI != 300 {
		t.Errorf("expected DPI=300, got %d", cfg.OCR.DPI)
	}
	if cfg.OCR.ConfidenceFloor != 30 {
		t.Errorf("expected ConfidenceFloor=30, got %g", cfg.OCR.ConfidenceFloor)
	}
	if cfg.OCR.LineGap != 10 {
		t.Errorf("expected LineGap=10, got %g", cfg.OCR.LineGap)
	}
	if cfg.Checker.TokenOverlapThreshold != 0.7 {
		t.Errorf("expected TokenOverlapThreshold=0.7, got %g", cfg.Checker.TokenOverlapThreshold)
	}
	if cfg.Checker.MinTokenLength != 3 {
		t.Errorf("expected MinTokenLength=3, got %d", cfg.Checker.MinTokenLength)
	}
	if cfg.Validation.TargetAccuracy != 0.95 {
		t.Errorf("expected TargetAccuracy=0.95, got %g", cfg.Validation.TargetAccuracy)
	}
	if cfg.Validation.MaxCitationErrorRate != 0.01 {
		t.Errorf("expected MaxCitationErrorRate=0.01, got %g", cfg.Validation.MaxCitationErrorRate)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected Level=info, got %q", cfg.Logging.Level)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		Extraction: ExtractionConfig{MinTextLength: 50},
		OCR:        OCRConfig{Languages: []string{"deu"}, DPI: 600, ConfidenceFloor: 60, LineGap: 5},
		Checker:    CheckerConfig{TokenOverlapThreshold: 0.5, MinTokenLength: 4},
		Validation: ValidationConfig{TargetAccuracy: 0.9, MaxCitationErrorRate: 0.05},
		Logging:    LoggingConfig{Level: "debug"},
	}
	cfg.ApplyDefaults()

	if cfg.Extraction.MinTextLength != 50 {
		t.Errorf("expected MinTextLength=50, got %d", cfg.Extraction.MinTextLength)
	}
	if len(cfg.OCR.Languages) != 1 || cfg.OCR.Languages[0] != "deu" {
		t.Errorf("expected Languages=[deu], got %v", cfg.OCR.Languages)
	}
	if cfg.OCR.DPI != 600 {
		t.Errorf("expected DPI=600, got %d", cfg.OCR.DPI)
	}
	if cfg.Checker.TokenOverlapThreshold != 0.5 {
		t.Errorf("expected TokenOverlapThreshold=0.5, got %g", cfg.Checker.TokenOverlapThreshold)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected Level=debug, got %q", cfg.Logging.Level)
	}
}

func TestValidate_InvalidDPI(t *testing.T) {
	cfg := Default()
	cfg.OCR.DPI = 50

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid dpi")
	}
}

func TestValidate_InvalidThresholds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"overlap above one", func(c *Config) { c.Checker.TokenOverlapThreshold = 1.5 }},
		{"target accuracy above one", func(c *Config) { c.Validation.TargetAccuracy = 1.2 }},
		{"error rate above one", func(c *Config) { c.Validation.MaxCitationErrorRate = 2 }},
		{"confidence floor above hundred", func(c *Config) { c.OCR.ConfidenceFloor = 150 }},
		{"empty language entry", func(c *Config) { c.OCR.Languages = []string{"fra", " "} }},
		{"unknown log level", func(c *Config) { c.Logging.Level = "verbose" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
extraction:
  min_text_length: 200
ocr:
  languages: [fra]
  dpi: 150
validation:
  target_accuracy: 0.9
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Extraction.MinTextLength != 200 {
		t.Errorf("expected MinTextLength=200, got %d", cfg.Extraction.MinTextLength)
	}
	if cfg.OCR.DPI != 150 {
		t.Errorf("expected DPI=150, got %d", cfg.OCR.DPI)
	}
	if cfg.Validation.TargetAccuracy != 0.9 {
		t.Errorf("expected TargetAccuracy=0.9, got %g", cfg.Validation.TargetAccuracy)
	}
	// Unset fields still get defaults.
	if cfg.Checker.MinTokenLength != 3 {
		t.Errorf("expected MinTokenLength=3, got %d", cfg.Checker.MinTokenLength)
	}
}

func TestParse_EnvExpansion(t *testing.T) {
	t.Setenv("VERIDOC_TEST_DPI", "200")

	data := []byte(`
ocr:
  dpi: ${VERIDOC_TEST_DPI}
  confidence_floor: ${VERIDOC_TEST_FLOOR:-45}
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OCR.DPI != 200 {
		t.Errorf("expected DPI=200, got %d", cfg.OCR.DPI)
	}
	if cfg.OCR.ConfidenceFloor != 45 {
		t.Errorf("expected ConfidenceFloor=45, got %g", cfg.OCR.ConfidenceFloor)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("ocr: ["))
	if err == nil {
		t.Fatal("expected error for invalid yaml")
	}
	if !strings.Contains(err.Error(), "failed to parse config") {
		t.Errorf("unexpected error message: %v", err)
	}
}
