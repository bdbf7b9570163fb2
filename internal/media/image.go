package media

import (
	"bytes"
	"io"

	mediaerrors "github.com/andreicionca/motivare-absente/internal/media/errors"

	"github.com/disintegration/imaging"
)

const (
	maxDimension = 1920
	jpegQuality  = 70
)

// ValidRotation reports whether deg is a clockwise quarter turn.
func ValidRotation(deg int) bool {
	return deg == 0 || deg == 90 || deg == 180 || deg == 270
}

// PrepareImage applies EXIF orientation, the user's clockwise rotation and
// the size limit, then re-encodes as JPEG.
func PrepareImage(r io.Reader, rotation int) ([]byte, error) {
	if !ValidRotation(rotation) {
		return nil, mediaerrors.ErrInvalidRotation
	}

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, mediaerrors.ErrInvalidImage
	}

	// imaging rotates counter-clockwise.
	switch rotation {
	case 90:
		img = imaging.Rotate270(img)
	case 180:
		img = imaging.Rotate180(img)
	case 270:
		img = imaging.Rotate90(img)
	}

	img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
