package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/imgpress-cli/internal/hasher"
	"github.com/AnyUserName/imgpress-cli/internal/report"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <report_path>",
	Short: "Check that every output a report names still exists unmodified",
	Long: `Reads a run report and checks each processed entry against the output
folder: the file must exist and match the recorded size and xxhash64.
Catches outputs deleted or rewritten after the run.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(_ *cobra.Command, args []string) error {
	reportPath := args[0]

	info, err := os.Stat(reportPath)
	if err != nil {
		return fmt.Errorf("stat %s: %w", reportPath, err)
	}
	if info.IsDir() {
		reportPath = filepath.Join(reportPath, report.FileName)
	}

	rep, err := report.Load(reportPath)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}

	baseDir := filepath.Dir(reportPath)
	problems := verifyOutputs(rep, baseDir)

	checked := 0
	for _, e := range rep.Entries {
		if e.Status == report.StatusProcessed {
			checked++
		}
	}

	if len(problems) == 0 {
		fmt.Printf("  ok: %d outputs verified\n", checked)
		return nil
	}

	fmt.Printf("  %d problem(s) in %d outputs:\n", len(problems), checked)
	for _, p := range problems {
		fmt.Printf("    %s\n", p)
	}
	return fmt.Errorf("verification failed with %d problems", len(problems))
}

func verifyOutputs(rep *report.Report, baseDir string) []string {
	var problems []string

	for _, e := range rep.Entries {
		if e.Status != report.StatusProcessed {
			continue
		}
		if e.OutPath == "" {
			problems = append(problems, fmt.Sprintf("%s: missing out_path", e.Path))
			continue
		}

		fullPath := filepath.Join(baseDir, filepath.FromSlash(e.OutPath))
		info, err := os.Stat(fullPath)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: output not found: %s", e.Path, e.OutPath))
			continue
		}
		if e.OutSize > 0 && info.Size() != e.OutSize {
			problems = append(problems, fmt.Sprintf("%s: size mismatch: report=%d, disk=%d",
				e.Path, e.OutSize, info.Size()))
			continue
		}
		if e.Hash == "" {
			continue
		}
		sum, err := hasher.SumFile(fullPath)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: hash: %v", e.Path, err))
			continue
		}
		if sum != e.Hash {
			problems = append(problems, fmt.Sprintf("%s: hash mismatch: report=%s, disk=%s",
				e.Path, e.Hash, sum))
		}
	}

	return problems
}
