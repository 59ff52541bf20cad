package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/scurve/internal/cli/formatter"
	"github.com/alexanderramin/scurve/internal/contract"
	"github.com/alexanderramin/scurve/internal/curve"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func scurveHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// manualEntryInput holds the raw text of a manual progress entry.
type manualEntryInput struct {
	Percent string
	Day     string
	Author  string
	Note    string
}

// manualEntryForm collects a manual percentage for one service.
func manualEntryForm(serviceName string, current float64, in *manualEntryInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Completion % for "+serviceName).
				Description(fmt.Sprintf("currently %s", strings.TrimSpace(formatter.FormatPercent(current)))).
				Placeholder("0-100").
				Value(&in.Percent).
				Validate(validatePercent),
			huh.NewInput().
				Title("Worked day (blank for today)").
				Placeholder("2024-01-31").
				Value(&in.Day).
				Validate(validateOptionalDay),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Author (optional)").
				Value(&in.Author),
			huh.NewText().
				Title("Note (optional)").
				Value(&in.Note),
		),
	).WithTheme(scurveHuhTheme()).WithShowHelp(false)
}

// request converts the collected text into a ManualEntryRequest.
func (in manualEntryInput) request(serviceID string) (contract.ManualEntryRequest, error) {
	pct, err := parsePercent(in.Percent)
	if err != nil {
		return contract.ManualEntryRequest{}, err
	}
	req := contract.NewManualEntryRequest(serviceID, pct)
	if s := strings.TrimSpace(in.Day); s != "" {
		day, ok := curve.NormalizeDay(s, time.UTC)
		if !ok {
			return contract.ManualEntryRequest{}, fmt.Errorf("invalid day %q", s)
		}
		req.Day = &day
	}
	req.Author = strings.TrimSpace(in.Author)
	req.Description = strings.TrimSpace(in.Note)
	return req, nil
}

func parsePercent(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid percent %q", s)
	}
	if v < 0 || v > 100 {
		return 0, fmt.Errorf("percent must be in [0, 100], got %v", v)
	}
	return v, nil
}

func validatePercent(s string) error {
	_, err := parsePercent(s)
	return err
}

// validateOptionalDay accepts empty or any readable calendar date.
func validateOptionalDay(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, ok := curve.NormalizeDay(strings.TrimSpace(s), time.UTC); !ok {
		return fmt.Errorf("use YYYY-MM-DD or DD/MM/YYYY")
	}
	return nil
}
