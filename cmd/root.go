package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "imgpress",
	Short: "Batch image compressor for photo folders",
	Long: `imgpress walks a photo folder, fixes EXIF orientation, scales each
image to fit a pixel bound and re-encodes it as JPEG into a mirrored
compressed/ subtree. Originals are never touched, and files whose
output already exists are skipped, so reruns only do new work.`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(setupLogger)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"imgpress %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// setupLogger routes slog through tint; --verbose enables debug lines.
func setupLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level})))
}
