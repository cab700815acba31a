package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/Christopher-Hayes/sleepy-hyprland/internal/wm"
	"github.com/Christopher-Hayes/sleepy-hyprland/postgres"
	"github.com/Christopher-Hayes/sleepy-hyprland/sleepy"
)

func disableColor(t *testing.T) {
	t.Helper()
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })
}

func TestFormatWindowOutput(t *testing.T) {
	disableColor(t)

	tests := []struct {
		name   string
		window wm.Window
		want   string
	}{
		{
			name:   "with class",
			window: wm.Window{Address: "0xabc", Title: "Editor", Class: "code", Mapped: true},
			want:   "0xabc Editor (code)",
		},
		{
			name:   "untitled",
			window: wm.Window{Address: "0xabc", Mapped: true},
			want:   "0xabc <untitled>",
		},
		{
			name:   "unmapped",
			window: wm.Window{Address: "0xabc", Title: "Hidden", Class: "x"},
			want:   "0xabc Hidden (x) [unmapped]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatWindowOutput(tt.window); got != tt.want {
				t.Errorf("formatWindowOutput() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatPushOutput(t *testing.T) {
	disableColor(t)

	failed := postgres.StoredPush{
		ID: 1,
		PushResult: sleepy.PushResult{
			DeviceID:   "laptop-1",
			Status:     "Editor",
			HTTPStatus: 500,
			Error:      "sleepy server returned HTTP 500",
			PushedAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local),
		},
	}

	got := formatPushOutput(failed)
	for _, want := range []string{"2024-01-02 03:04:05", "FAIL", "500", "laptop-1", "Editor", "└─ sleepy server returned HTTP 500"} {
		if !strings.Contains(got, want) {
			t.Errorf("formatPushOutput() = %q, missing %q", got, want)
		}
	}

	failed.HTTPStatus = 0
	if got := formatPushOutput(failed); !strings.Contains(got, "---") {
		t.Errorf("formatPushOutput() = %q, want --- for missing status", got)
	}
}
