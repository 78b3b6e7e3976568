package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lehigh-university-libraries/skyreport/internal/report"
)

// Section titles used by the terminal rendering.
const (
	TitleBasic        = "Basic"
	TitleCapture      = "Capture"
	TitleAstronomical = "Astronomical"
)

// WriteText renders r as titled sections of "label: value" lines with the
// values aligned. Styling degrades to plain text when w is not a terminal.
func WriteText(w io.Writer, r *report.Report) error {
	renderer := lipgloss.NewRenderer(w)
	titleStyle := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	labelStyle := renderer.NewStyle().Foreground(lipgloss.Color("#626262"))

	sections := []struct {
		title   string
		section report.Section
	}{
		{TitleBasic, r.Basic},
		{TitleCapture, r.Capture},
		{TitleAstronomical, r.Astronomical},
	}

	width := 0
	for _, s := range sections {
		for _, e := range s.section {
			width = max(width, len(e.Label)+1)
		}
	}

	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(titleStyle.Render(s.title))
		b.WriteByte('\n')
		for _, e := range s.section {
			label := fmt.Sprintf("%-*s", width, e.Label+":")
			fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render(label), e.Value)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
