package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/imgpress-cli/internal/report"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <output_dir_or_report>",
	Short: "Display statistics for a finished compression run",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	path := args[0]

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, report.FileName)
	}

	rep, err := report.Load(path)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}

	printStats(rep)
	return nil
}

func printStats(rep *report.Report) {
	fmt.Println()
	fmt.Printf("  Report version: %d\n", rep.Version)
	fmt.Printf("  Generated:      %s\n", rep.GeneratedAt)
	fmt.Printf("  Input dir:      %s\n", rep.InputDir)
	fmt.Printf("  Profile:        %s (quality=%d, max-dimension=%d)\n",
		rep.Profile, rep.Quality, rep.MaxDimension)
	fmt.Printf("  Workers:        %d\n", rep.Workers)
	fmt.Println()

	c := rep.Counts
	fmt.Printf("  Total:          %d\n", c.Total)
	fmt.Printf("  Processed:      %d\n", c.Processed)
	fmt.Printf("  Skipped:        %d\n", c.Skipped)
	fmt.Printf("  Failed:         %d\n", c.Failed)
	fmt.Printf("  Input size:     %s\n", formatBytes(c.InputBytes))
	fmt.Printf("  Output size:    %s\n", formatBytes(c.OutputBytes))
	if c.InputBytes > 0 {
		fmt.Printf("  Compression:    %.1f%% of original\n",
			float64(c.OutputBytes)/float64(c.InputBytes)*100)
	}
	fmt.Println()

	// Top 10 heaviest originals.
	var processed []report.Entry
	for _, e := range rep.Entries {
		if e.Status == report.StatusProcessed {
			processed = append(processed, e)
		}
	}
	if len(processed) > 0 {
		sort.Slice(processed, func(i, j int) bool {
			return processed[i].SrcSize > processed[j].SrcSize
		})
		n := len(processed)
		if n > 10 {
			n = 10
		}
		fmt.Printf("  Top %d heaviest (original -> compressed):\n", n)
		for _, e := range processed[:n] {
			saved := float64(0)
			if e.SrcSize > 0 {
				saved = (1 - float64(e.OutSize)/float64(e.SrcSize)) * 100
			}
			fmt.Printf("    %-40s %8s -> %8s  (saved %.0f%%)\n",
				truncPath(e.Path, 40), formatBytes(e.SrcSize), formatBytes(e.OutSize), saved)
		}
		fmt.Println()
	}

	if c.Failed > 0 {
		fmt.Printf("  Failures (%d):\n", c.Failed)
		for _, e := range rep.Entries {
			if e.Status == report.StatusFailed {
				fmt.Printf("    %s: %s\n", e.Path, e.Cause)
			}
		}
		fmt.Println()
	}
}

func truncPath(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
