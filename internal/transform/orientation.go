package transform

import (
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	exif "github.com/dsoprea/go-exif/v3"
)

// CorrectOrientation reads the EXIF orientation tag from the raw image
// bytes and rotates/flips the decoded pixels so they display upright.
// Files without a readable tag pass through unchanged. The corrected
// pixels carry no metadata, so a downstream encoder cannot apply the
// rotation a second time.
func CorrectOrientation(img image.Image, rs io.ReadSeeker) image.Image {
	return applyOrientation(img, readOrientation(rs))
}

// readOrientation returns the orientation value 1-8, or 1 when the
// file has no EXIF data or the tag is malformed.
func readOrientation(rs io.ReadSeeker) int {
	tags, _, err := exif.GetFlatExifDataUniversalSearchWithReadSeeker(rs, nil, true)
	if err != nil {
		return 1
	}

	for _, tag := range tags {
		if tag.TagName != "Orientation" {
			continue
		}
		// IFD1 describes the embedded thumbnail, not the photo.
		if strings.Contains(tag.IfdPath, "IFD1") {
			continue
		}
		values, ok := tag.Value.([]uint16)
		if !ok || len(values) == 0 {
			return 1
		}
		o := int(values[0])
		if o < 1 || o > 8 {
			return 1
		}
		return o
	}
	return 1
}

// applyOrientation maps each of the eight EXIF orientation cases onto
// the transform that restores upright display. Values 5-8 swap width
// and height.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
