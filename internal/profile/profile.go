// Package profile defines named compression presets.
package profile

import (
	"fmt"
	"sort"
)

// Profile bundles the encoding parameters for one compression run.
type Profile struct {
	Name         string
	Quality      int // JPEG quality, 1-100
	MaxDimension int // longer-side pixel bound
}

// Default is the profile used when none is named.
const Default = "web"

// Built-in presets.
var profiles = map[string]Profile{
	"web":       {Name: "web", Quality: 65, MaxDimension: 1920},
	"hq":        {Name: "hq", Quality: 82, MaxDimension: 2560},
	"thumbnail": {Name: "thumbnail", Quality: 70, MaxDimension: 480},
}

// Get looks up a preset by name. Unknown names are reported to the
// caller rather than silently mapped to a default.
func Get(name string) (Profile, bool) {
	p, ok := profiles[name]
	return p, ok
}

// Names returns all preset names, sorted.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Validate checks the parameters before any file is touched.
// Out-of-range values are rejected, not clamped.
func (p Profile) Validate() error {
	if p.Quality < 1 || p.Quality > 100 {
		return fmt.Errorf("quality %d out of range 1-100", p.Quality)
	}
	if p.MaxDimension < 1 {
		return fmt.Errorf("max dimension %d is not a positive pixel count", p.MaxDimension)
	}
	return nil
}
