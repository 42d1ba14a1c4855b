package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	watermark "github.com/Superoldman96/GeminiWatermarkTool"
)

// gwatermark adds, removes, or detects the Gemini corner watermark.
//
//	gwatermark -in image.png -out image_clean.png
//	gwatermark -mode add -in clean.png -out marked.png
//	gwatermark -mode detect -in image.jpg
//	gwatermark -in image.png -region 1840,1340,96,96 -out clean.png
//	gwatermark -config batch.yaml
func main() {
	mode := flag.String("mode", "remove", "Operation: remove, add, or detect")
	input := flag.String("in", "", "Path to the input image (png/jpg/webp/gif)")
	inputBase64 := flag.String("inbase64", "", "Base64 image input (optionally data URL)")
	output := flag.String("out", "", "Output path (defaults to <name>_<mode>.png)")
	outputBase64 := flag.Bool("outbase64", false, "Write result PNG as base64 to stdout instead of a file")
	size := flag.String("size", "auto", "Force watermark size class: auto, small, or large")
	region := flag.String("region", "", "Custom region x,y,width,height instead of the standard placement")
	logoValue := flag.Int("logo-value", 255, "Flat logo intensity 0-255")
	bgSmall := flag.String("bg-small", "", "Custom small reference capture (48x48)")
	bgLarge := flag.String("bg-large", "", "Custom large reference capture (96x96)")
	configPath := flag.String("config", "", "YAML batch job file (see JobConfig)")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if *configPath != "" {
		cfg, err := loadJobConfig(*configPath)
		if err != nil {
			log.WithError(err).Fatal("load batch config")
		}
		if err := runBatch(log, cfg); err != nil {
			log.WithError(err).Fatal("batch run failed")
		}
		return
	}

	if *input == "" && *inputBase64 == "" {
		flag.Usage()
		os.Exit(1)
	}

	opModeVal, err := parseMode(*mode)
	if err != nil {
		log.WithError(err).Fatal("bad -mode")
	}
	sizeClass, err := parseSizeClass(*size)
	if err != nil {
		log.WithError(err).Fatal("bad -size")
	}

	var customRegion *image.Rectangle
	if *region != "" {
		rect, err := parseRegion(*region)
		if err != nil {
			log.WithError(err).Fatal("bad -region")
		}
		customRegion = &rect
	}

	engine, err := buildEngine(log, *logoValue, *bgSmall, *bgLarge)
	if err != nil {
		log.WithError(err).Fatal("construct engine")
	}

	img, format, source, err := decodeInput(*input, *inputBase64)
	if err != nil {
		log.WithError(err).Fatal("decode input")
	}
	log.WithFields(logrus.Fields{
		"source": source,
		"format": format,
		"size":   img.Bounds().Size(),
	}).Debug("decoded input")

	if opModeVal == modeDetect {
		result, ok := watermark.DetectWatermark(img)
		if !ok {
			log.Fatal("detect: empty image")
		}
		fmt.Printf("confidence %.2f (%s) at %v\n", result.Confidence, result.Method, result.Region)
		return
	}

	rgba := watermark.NormalizeRGBA(img)
	switch {
	case customRegion != nil && opModeVal == modeRemove:
		err = engine.RemoveCustom(rgba, *customRegion)
	case customRegion != nil && opModeVal == modeAdd:
		err = engine.AddCustom(rgba, *customRegion)
	case opModeVal == modeRemove:
		err = engine.Remove(rgba, sizeClass)
	default:
		err = engine.Add(rgba, sizeClass)
	}
	if err != nil {
		log.WithError(err).Fatalf("%s watermark", *mode)
	}

	if *outputBase64 {
		encoded, err := watermark.EncodePNGToBase64(rgba)
		if err != nil {
			log.WithError(err).Fatal("encode base64 output")
		}
		fmt.Println(encoded)
		return
	}

	outPath := *output
	if outPath == "" {
		base := "output"
		if *input != "" {
			base = strings.TrimSuffix(filepath.Base(*input), filepath.Ext(*input))
		}
		outPath = filepath.Join(filepath.Dir(*input), fmt.Sprintf("%s_%s.png", base, *mode))
	}

	if err := writePNG(outPath, rgba); err != nil {
		log.WithError(err).Fatal("write output")
	}
	log.WithField("path", outPath).Info("saved")
}

func buildEngine(log *logrus.Logger, logoValue int, bgSmall, bgLarge string) (*watermark.Engine, error) {
	opts := []watermark.Option{
		watermark.WithLogoValue(float64(logoValue)),
		watermark.WithLogger(log),
	}
	if bgSmall != "" || bgLarge != "" {
		if bgSmall == "" || bgLarge == "" {
			return nil, fmt.Errorf("custom captures need both -bg-small and -bg-large")
		}
		opts = append(opts, watermark.WithCaptureFiles(bgSmall, bgLarge))
	}
	return watermark.NewEngine(opts...)
}

func decodeInput(path, b64 string) (image.Image, string, string, error) {
	if b64 != "" {
		img, format, err := watermark.DecodeBase64Image(b64)
		return img, format, "base64", err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", path, err
	}
	defer f.Close()

	img, format, err := watermark.Decode(f)
	return img, format, path, err
}

func writePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return watermark.EncodePNG(f, img)
}
