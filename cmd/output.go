package cmd

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/Christopher-Hayes/sleepy-hyprland/internal/wm"
	"github.com/Christopher-Hayes/sleepy-hyprland/postgres"
)

// Color functions for terminal output
var (
	colorError   = color.New(color.FgRed, color.Bold).SprintfFunc()
	colorWarning = color.New(color.FgYellow).SprintfFunc()
	colorSuccess = color.New(color.FgGreen, color.Bold).SprintfFunc()
	colorKey     = color.New(color.FgMagenta).SprintfFunc()
	colorValue   = color.New(color.FgWhite, color.Bold).SprintfFunc()
)

func formatWindowOutput(w wm.Window) string {
	title := w.Title
	if title == "" {
		title = color.HiBlackString("<untitled>")
	} else {
		title = colorValue(title)
	}

	out := fmt.Sprintf("%s %s", colorKey(w.Address), title)
	if w.Class != "" {
		out += " " + color.HiBlackString("(%s)", w.Class)
	}
	if !w.Mapped {
		out += " " + colorWarning("[unmapped]")
	}
	return out
}

func formatPushOutput(p postgres.StoredPush) string {
	state := colorSuccess("OK  ")
	if !p.Success {
		state = colorError("FAIL")
	}

	code := "---"
	if p.HTTPStatus != 0 {
		code = fmt.Sprintf("%d", p.HTTPStatus)
	}

	out := fmt.Sprintf("%s %s %s %s %s",
		color.HiBlackString(p.PushedAt.Local().Format("2006-01-02 15:04:05")),
		state,
		code,
		colorKey(p.DeviceID),
		colorValue(p.Status))
	if p.Error != "" {
		out += "\n  " + color.HiBlackString("└─ %s", p.Error)
	}
	return out
}
