package internal

import (
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := NewDefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should pass: %v", err)
	}
}

func TestHTTPConfig_PortRange(t *testing.T) {
	cfg := HTTPConfig{Port: 70000}
	if err := cfg.Validate(); err == nil {
		t.Fatal("port 70000 should fail validation")
	}
	if got := (&HTTPConfig{Port: 9000}).Address(); got != ":9000" {
		t.Errorf("Address() = %q", got)
	}
}

func TestContentConfig_PathRequired(t *testing.T) {
	cfg := ContentConfig{Path: "", Extension: ".md"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty path should fail validation")
	}
}

func TestContentConfig_ExtensionWithSeparator(t *testing.T) {
	cfg := ContentConfig{Path: "./c", Extension: "../md"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("extension with separator should fail")
	}
	if !strings.Contains(err.Error(), "path separators") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSiteConfig_TitleRequired(t *testing.T) {
	cfg := SiteConfig{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty title should fail")
	}
}

func TestMetricsConfig(t *testing.T) {
	if err := (&MetricsConfig{Enabled: false}).Validate(); err != nil {
		t.Errorf("disabled metrics should pass: %v", err)
	}
	if err := (&MetricsConfig{Enabled: true, Path: "metrics"}).Validate(); err == nil {
		t.Error("relative metrics path should fail")
	}
}

func TestFullConfig_ContentValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Content.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch content error")
	}
}
