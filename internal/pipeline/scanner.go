package pipeline

import (
	"os"
	"path/filepath"
	"strings"
)

// OutputDirName is the subtree under the input root that receives all
// processed files. The scanner never descends into it.
const OutputDirName = "compressed"

// WorkItem is one source image queued for processing.
type WorkItem struct {
	// SourcePath is the absolute path to the original file.
	SourcePath string
	// DestPath is the mirrored path under the output subtree, with
	// the extension normalized to .jpg.
	DestPath string
	// RelPath is the path relative to the input root, forward slashes.
	RelPath string
}

// imageExtensions lists extensions the decoder stack understands.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// Scan is the partitioned outcome of one enumeration pass.
type Scan struct {
	// Items are candidates that still need processing.
	Items []WorkItem
	// Skipped holds rel paths whose destination already exists.
	Skipped []string
}

// Total counts every discovered candidate, skipped or not.
func (s Scan) Total() int { return len(s.Items) + len(s.Skipped) }

// ScanTree enumerates image files under inputDir and computes mirrored
// destinations under inputDir/compressed. Candidates whose destination
// already exists go into Skipped, which keeps reruns incremental: a
// file is only ever processed once until its output is deleted.
func ScanTree(inputDir string) (Scan, error) {
	outputDir := filepath.Join(inputDir, OutputDirName)

	var scan Scan
	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path == outputDir {
				return filepath.SkipDir
			}
			if strings.HasPrefix(info.Name(), ".") && path != inputDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !imageExtensions[ext] {
			return nil
		}

		relPath, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}

		destRel := strings.TrimSuffix(relPath, filepath.Ext(relPath)) + ".jpg"
		destPath := filepath.Join(outputDir, destRel)

		if _, err := os.Stat(destPath); err == nil {
			scan.Skipped = append(scan.Skipped, filepath.ToSlash(relPath))
			return nil
		}

		scan.Items = append(scan.Items, WorkItem{
			SourcePath: path,
			DestPath:   destPath,
			RelPath:    filepath.ToSlash(relPath),
		})
		return nil
	})

	return scan, err
}
