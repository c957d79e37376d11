package watermark

import (
	"bytes"

	"github.com/disintegration/imaging"
)

// WatermarkBytes decodes raw image bytes, applies the text with the default
// engine and encodes the result in format.
func WatermarkBytes(data []byte, text string, opacity uint8, format imaging.Format) ([]byte, error) {
	img, _, err := DecodeImageBytes(data)
	if err != nil {
		return nil, err
	}

	marked, err := Apply(img, text, opacity)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, marked, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
