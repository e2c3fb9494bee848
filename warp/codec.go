package warp

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/tsawler/rectify/raster"
)

// ErrDecode is returned when input bytes are not a recognizable raster
// image. It indicates corrupted or unsupported image data rather than bad
// geometry.
var ErrDecode = errors.New("failed to decode image data")

// ErrEncode is returned when the resampled image cannot be re-encoded.
var ErrEncode = errors.New("failed to encode image data")

// jpegQuality is the quality used when re-encoding JPEG output.
const jpegQuality = 90

// Decode decodes raster image bytes and reports the detected format. The
// format is detected from magic bytes so that Encode can write the output
// in the same format family as the input.
func Decode(data []byte) (image.Image, raster.Format, error) {
	format := raster.DetectFromMagic(data)
	if format == raster.Unknown {
		return nil, raster.Unknown, fmt.Errorf("%w: unrecognized image signature", ErrDecode)
	}

	var (
		img image.Image
		err error
	)
	r := bytes.NewReader(data)
	switch format {
	case raster.JPEG:
		img, err = jpeg.Decode(r)
	case raster.PNG:
		img, err = png.Decode(r)
	case raster.TIFF:
		img, err = tiff.Decode(r)
	case raster.BMP:
		img, err = bmp.Decode(r)
	}
	if err != nil {
		return nil, format, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, format, nil
}

// Encode encodes an image in the given format.
func Encode(img image.Image, format raster.Format) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case raster.JPEG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	case raster.PNG:
		err = png.Encode(&buf, img)
	case raster.TIFF:
		err = tiff.Encode(&buf, img, nil)
	case raster.BMP:
		err = bmp.Encode(&buf, img)
	default:
		return nil, fmt.Errorf("%w: unsupported format %s", ErrEncode, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}
