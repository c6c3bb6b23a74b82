package config

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"relative temp dir", func(c *Config) { c.Temp.Dir = "tmp/ni" }, "temp.dir"},
		{"null byte in temp dir", func(c *Config) { c.Temp.Dir = "/tmp/\x00ni" }, "temp.dir"},
		{"manager with path", func(c *Config) { c.Runtime.Manager = "/usr/bin/volta" }, "runtime.manager"},
		{"manager with space", func(c *Config) { c.Runtime.Manager = "volta run" }, "runtime.manager"},
		{"empty prefix with manager", func(c *Config) { c.Runtime.Prefix = "  " }, "runtime.prefix"},
		{"negative width", func(c *Config) { c.Output.MaxWidth = -1 }, "output.max_width"},
		{"huge width", func(c *Config) { c.Output.MaxWidth = maxOutputWidth + 1 }, "output.max_width"},
		{"unknown color", func(c *Config) { c.Output.Color = "sometimes" }, "output.color"},
		{"unknown log level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			errs := cfg.Validate()
			if len(errs) != 1 {
				t.Fatalf("Validate() returned %d errors, want 1: %v", len(errs), errs)
			}
			if errs[0].Field != tt.wantField {
				t.Errorf("Field = %q, want %q", errs[0].Field, tt.wantField)
			}
		})
	}
}

func TestValidate_Accepts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tilde temp dir", func(c *Config) { c.Temp.Dir = "~/tmp" }},
		{"absolute temp dir", func(c *Config) { c.Temp.Dir = "/var/tmp/ni" }},
		{"no manager and no prefix", func(c *Config) { c.Runtime.Manager = ""; c.Runtime.Prefix = "" }},
		{"uppercase log level", func(c *Config) { c.Logging.Level = "DEBUG" }},
		{"empty color", func(c *Config) { c.Output.Color = "" }},
		{"color never", func(c *Config) { c.Output.Color = "never" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if errs := cfg.Validate(); len(errs) != 0 {
				t.Errorf("Validate() = %v, want no errors", errs)
			}
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	if got := ValidationErrors(nil).Error(); got != "" {
		t.Errorf("empty Error() = %q", got)
	}

	one := ValidationErrors{{Field: "output.max_width", Value: -1, Message: "must be non-negative"}}
	if got := one.Error(); got != "output.max_width: must be non-negative (got: -1)" {
		t.Errorf("single Error() = %q", got)
	}

	two := append(one, ValidationError{Field: "logging.level", Value: "x", Message: "bad"})
	got := two.Error()
	if !strings.HasPrefix(got, "2 validation errors:\n") {
		t.Errorf("multi Error() = %q", got)
	}
	if !strings.Contains(got, "  2. logging.level: bad (got: x)\n") {
		t.Errorf("multi Error() missing second entry: %q", got)
	}
}
