package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/AnyUserName/imgpress-cli/internal/pipeline"
	"github.com/AnyUserName/imgpress-cli/internal/profile"
	"github.com/AnyUserName/imgpress-cli/internal/report"
	"github.com/spf13/cobra"
)

var (
	compressProfile string
	compressQuality int
	compressMaxDim  int
	compressWorkers int
	compressDryRun  bool
	compressReport  bool
)

var compressCmd = &cobra.Command{
	Use:   "compress <input_dir>",
	Short: "Compress every image under a folder into a compressed/ subtree",
	Long: `Recursively finds images (png, jpg, jpeg, gif, webp, bmp, tiff) under
<input_dir>, corrects EXIF orientation, scales each one to fit the
profile's pixel bound and re-encodes it as JPEG into
<input_dir>/compressed/, mirroring the folder structure with the
extension normalized to .jpg. Candidates whose output already exists
are skipped. A corrupt or unreadable file is reported and counted as
failed without stopping the run.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompress,
}

func init() {
	compressCmd.Flags().StringVarP(&compressProfile, "profile", "p", profile.Default, "compression profile")
	compressCmd.Flags().IntVarP(&compressQuality, "quality", "q", 0, "JPEG quality 1-100 (0 = profile default)")
	compressCmd.Flags().IntVarP(&compressMaxDim, "max-dimension", "m", 0, "longer-side pixel bound (0 = profile default)")
	compressCmd.Flags().IntVarP(&compressWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	compressCmd.Flags().BoolVar(&compressDryRun, "dry-run", false, "enumerate only, write nothing")
	compressCmd.Flags().BoolVar(&compressReport, "report", false, "write "+report.FileName+" into the output folder")
	rootCmd.AddCommand(compressCmd)
}

func runCompress(cmd *cobra.Command, args []string) error {
	start := time.Now()

	absInput, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}

	prof, ok := profile.Get(compressProfile)
	if !ok {
		return fmt.Errorf("unknown profile %q (have: %v)", compressProfile, profile.Names())
	}
	if compressQuality != 0 {
		prof.Quality = compressQuality
	}
	if compressMaxDim != 0 {
		prof.MaxDimension = compressMaxDim
	}
	if err := prof.Validate(); err != nil {
		return err
	}

	slog.Debug("starting run", "input", absInput, "profile", prof.Name,
		"quality", prof.Quality, "max_dimension", prof.MaxDimension)

	p := pipeline.New(pipeline.Config{
		InputDir: absInput,
		Profile:  prof,
		Workers:  compressWorkers,
		DryRun:   compressDryRun,
		Logger:   slog.Default(),
		OnProgress: func(completed, total int, name string) {
			fmt.Printf("[%d/%d] processed %s\n", completed, total, name)
		},
	})

	res, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}

	if compressReport && !compressDryRun {
		outputDir := filepath.Join(absInput, pipeline.OutputDirName)
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		rep := buildReport(absInput, outputDir, prof, res)
		if err := report.WriteJSON(rep, filepath.Join(outputDir, report.FileName)); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	printRunSummary(res, time.Since(start))
	for _, f := range res.Failures {
		fmt.Printf("  failed: %s (%v)\n", f.RelPath, f.Err)
	}
	return nil
}

func buildReport(inputDir, outputDir string, prof profile.Profile, res *pipeline.Result) *report.Report {
	rep := report.New(inputDir, prof.Name, prof.Quality, prof.MaxDimension, res.Workers)

	for _, o := range res.Outcomes {
		outRel, err := filepath.Rel(outputDir, o.DestPath)
		if err != nil {
			outRel = o.DestPath
		}
		rep.Entries = append(rep.Entries, report.Entry{
			Path:    o.RelPath,
			Status:  report.StatusProcessed,
			OutPath: filepath.ToSlash(outRel),
			Width:   o.Width,
			Height:  o.Height,
			SrcSize: o.SrcSize,
			OutSize: o.OutSize,
			Hash:    o.Hash,
		})
	}
	for _, rel := range res.SkippedRels {
		rep.Entries = append(rep.Entries, report.Entry{Path: rel, Status: report.StatusSkipped})
	}
	for _, f := range res.Failures {
		rep.Entries = append(rep.Entries, report.Entry{
			Path:   f.RelPath,
			Status: report.StatusFailed,
			Cause:  f.Err.Error(),
		})
	}
	return rep
}
