package config

import (
	"testing"
	"time"
)

func TestSectionString(t *testing.T) {
	s := Section{
		"str":    "value",
		"int":    7,
		"float":  1.5,
		"bool":   true,
		"nested": map[string]interface{}{"a": "b"},
		"list":   []interface{}{"x"},
		"null":   nil,
	}

	tests := []struct {
		key  string
		want string
	}{
		{"str", "value"},
		{"int", "7"},
		{"float", "1.5"},
		{"bool", "true"},
		{"nested", ""},
		{"list", ""},
		{"null", ""},
		{"absent", ""},
	}

	for _, tt := range tests {
		if got := s.String(tt.key); got != tt.want {
			t.Errorf("String(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}

	var nilSection Section
	if got := nilSection.String("anything"); got != "" {
		t.Errorf("nil section String() = %q, want empty", got)
	}
}

func TestSectionCoerced(t *testing.T) {
	s := Section{
		"quoted": "007",
		"int":    7,
		"float":  1000.0,
		"bool":   false,
		"nested": map[string]interface{}{"a": "b"},
	}

	tests := []struct {
		key  string
		want bool
	}{
		{"quoted", false},
		{"int", true},
		{"float", true},
		{"bool", true},
		{"nested", false},
		{"absent", false},
	}

	for _, tt := range tests {
		if got := s.Coerced(tt.key); got != tt.want {
			t.Errorf("Coerced(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestSectionCoercedFromYAML(t *testing.T) {
	cfg, err := Parse([]byte("sleepy:\n  device_id: 007\n  device_name: \"007\"\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	s := cfg.Section("sleepy")

	if got := s.String("device_id"); got != "7" {
		t.Errorf("String(device_id) = %q, want 7", got)
	}
	if !s.Coerced("device_id") {
		t.Error("unquoted 007 should be reported as coerced")
	}
	if s.Coerced("device_name") || s.String("device_name") != "007" {
		t.Errorf("quoted value changed: %q", s.String("device_name"))
	}
}

func TestSectionStrings(t *testing.T) {
	s := Section{
		"list":   []interface{}{"a", 3, "", "b"},
		"single": "c",
		"blank":  "  ",
	}

	if got := s.Strings("list"); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Strings(list) = %v, want [a b]", got)
	}
	if got := s.Strings("single"); len(got) != 1 || got[0] != "c" {
		t.Errorf("Strings(single) = %v, want [c]", got)
	}
	if got := s.Strings("blank"); got != nil {
		t.Errorf("Strings(blank) = %v, want nil", got)
	}
	if got := s.Strings("absent"); got != nil {
		t.Errorf("Strings(absent) = %v, want nil", got)
	}
}

func TestSectionBool(t *testing.T) {
	s := Section{"yes": true, "no": false, "str": "on", "junk": "maybe"}
	if !s.Bool("yes") || s.Bool("no") || !s.Bool("str") || s.Bool("junk") || s.Bool("absent") {
		t.Errorf("unexpected Bool results for %v", s)
	}
}

func TestSectionDuration(t *testing.T) {
	def := 30 * time.Second
	s := Section{
		"str":      "2m",
		"seconds":  10,
		"fraction": 0.5,
		"bad":      "soon",
		"negative": -3,
	}

	tests := []struct {
		key  string
		want time.Duration
	}{
		{"str", 2 * time.Minute},
		{"seconds", 10 * time.Second},
		{"fraction", 500 * time.Millisecond},
		{"bad", def},
		{"negative", def},
		{"absent", def},
	}

	for _, tt := range tests {
		if got := s.Duration(tt.key, def); got != tt.want {
			t.Errorf("Duration(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}
