package watermark

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"
)

// DecodeBase64Image decodes a base64-encoded image (optionally a data URL)
// into an image.Image. It returns the decoded image and the detected format
// string ("png", "jpeg", "webp", etc.).
func DecodeBase64Image(input string) (image.Image, string, error) {
	raw := stripDataPrefix(input)

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, "", fmt.Errorf("decode base64: %w", err)
	}

	return Decode(bytes.NewReader(data))
}

// EncodePNGToBase64 encodes an image as PNG and returns a base64 string.
func EncodePNGToBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// RemoveWatermarkBase64 strips the watermark from a base64-encoded image and
// returns the cleaned image as base64 PNG, plus the detection result for the
// input.
func RemoveWatermarkBase64(input string) (string, DetectionResult, error) {
	img, _, err := DecodeBase64Image(input)
	if err != nil {
		return "", DetectionResult{}, err
	}

	result, _ := DetectWatermark(img)

	cleaned, err := RemoveWatermark(img)
	if err != nil {
		return "", result, err
	}

	output, err := EncodePNGToBase64(cleaned)
	if err != nil {
		return "", result, err
	}

	return output, result, nil
}

func stripDataPrefix(input string) string {
	lower := strings.ToLower(input)
	if strings.HasPrefix(lower, "data:") {
		if idx := strings.Index(input, ","); idx != -1 {
			return input[idx+1:]
		}
	}
	return input
}
