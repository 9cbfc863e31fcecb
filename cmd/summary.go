package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/AnyUserName/imgpress-cli/internal/pipeline"
	"github.com/charmbracelet/lipgloss"
)

var (
	summaryLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	summaryValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
)

type summaryRow struct {
	label string
	value string
}

func printRunSummary(res *pipeline.Result, elapsed time.Duration) {
	rows := []summaryRow{
		{"Total", fmt.Sprintf("%d", res.Total)},
		{"Processed", fmt.Sprintf("%d", res.Processed)},
		{"Skipped", fmt.Sprintf("%d", res.Skipped)},
		{"Failed", fmt.Sprintf("%d", res.Failed)},
	}
	if res.InputBytes > 0 {
		ratio := float64(res.OutputBytes) / float64(res.InputBytes) * 100
		rows = append(rows,
			summaryRow{"Input size", formatBytes(res.InputBytes)},
			summaryRow{"Output size", formatBytes(res.OutputBytes)},
			summaryRow{"Ratio", fmt.Sprintf("%.1f%% of original", ratio)},
		)
	}
	rows = append(rows, summaryRow{"Time", elapsed.Round(time.Millisecond).String()})

	fmt.Println()
	fmt.Println(renderSummary(rows))
}

func renderSummary(rows []summaryRow) string {
	labelWidth, valueWidth := 0, 0
	for _, row := range rows {
		if len(row.label) > labelWidth {
			labelWidth = len(row.label)
		}
		if len(row.value) > valueWidth {
			valueWidth = len(row.value)
		}
	}

	hline := strings.Repeat("-", labelWidth+valueWidth+3)
	lines := []string{hline}
	for _, row := range rows {
		label := padRight(row.label, labelWidth)
		value := padRight(row.value, valueWidth)
		lines = append(lines, fmt.Sprintf("%s | %s",
			summaryLabelStyle.Render(label), summaryValueStyle.Render(value)))
	}
	lines = append(lines, hline)
	return strings.Join(lines, "\n")
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
