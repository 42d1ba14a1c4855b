package watermark

import "bytes"

// RemoveWatermarkBytes strips the watermark from raw encoded image bytes and
// returns the cleaned image re-encoded as PNG, along with the detection
// result for the input image.
func RemoveWatermarkBytes(data []byte) ([]byte, DetectionResult, error) {
	img, _, err := DecodeImageBytes(data)
	if err != nil {
		return nil, DetectionResult{}, err
	}

	result, _ := DetectWatermark(img)

	cleaned, err := RemoveWatermark(img)
	if err != nil {
		return nil, result, err
	}

	var buf bytes.Buffer
	if err := EncodePNG(&buf, cleaned); err != nil {
		return nil, result, err
	}
	return buf.Bytes(), result, nil
}

// AddWatermarkBytes composites the watermark onto raw encoded image bytes and
// returns the marked image re-encoded as PNG.
func AddWatermarkBytes(data []byte) ([]byte, error) {
	img, _, err := DecodeImageBytes(data)
	if err != nil {
		return nil, err
	}

	marked, err := AddWatermark(img)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := EncodePNG(&buf, marked); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DetectWatermarkBytes decodes raw image bytes and scores the expected
// watermark placement without modifying anything.
func DetectWatermarkBytes(data []byte) (DetectionResult, error) {
	img, _, err := DecodeImageBytes(data)
	if err != nil {
		return DetectionResult{}, err
	}

	result, _ := DetectWatermark(img)
	return result, nil
}
