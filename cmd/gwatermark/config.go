package main

import (
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	watermark "github.com/Superoldman96/GeminiWatermarkTool"
)

// JobConfig drives a batch run from a YAML file. Flags override nothing here;
// a config file and single-file flags are mutually exclusive modes.
type JobConfig struct {
	Mode      string `yaml:"mode"`       // "remove", "add", or "detect"
	InputDir  string `yaml:"input_dir"`
	OutputDir string `yaml:"output_dir"`
	Size      string `yaml:"size"`       // "auto", "small", "large"
	LogoValue int    `yaml:"logo_value"` // 0-255, default 255
	Jobs      int    `yaml:"jobs"`       // parallel workers, default NumCPU
	Captures  struct {
		Small string `yaml:"small"`
		Large string `yaml:"large"`
	} `yaml:"captures"`
}

func loadJobConfig(path string) (*JobConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &JobConfig{Mode: "remove", Size: "auto", LogoValue: 255}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if cfg.InputDir == "" {
		return nil, fmt.Errorf("%s: input_dir is required", path)
	}
	if cfg.OutputDir == "" && cfg.Mode != "detect" {
		return nil, fmt.Errorf("%s: output_dir is required for mode %q", path, cfg.Mode)
	}
	if _, err := parseMode(cfg.Mode); err != nil {
		return nil, err
	}
	if _, err := parseSizeClass(cfg.Size); err != nil {
		return nil, err
	}
	return cfg, nil
}

type opMode int

const (
	modeRemove opMode = iota
	modeAdd
	modeDetect
)

func parseMode(s string) (opMode, error) {
	switch strings.ToLower(s) {
	case "", "remove":
		return modeRemove, nil
	case "add":
		return modeAdd, nil
	case "detect":
		return modeDetect, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want remove, add, or detect)", s)
	}
}

func parseSizeClass(s string) (watermark.SizeClass, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return watermark.SizeAuto, nil
	case "small":
		return watermark.SizeSmall, nil
	case "large":
		return watermark.SizeLarge, nil
	default:
		return 0, fmt.Errorf("unknown size class %q (want auto, small, or large)", s)
	}
}

// parseRegion parses "x,y,width,height" into a rectangle.
func parseRegion(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("region %q: want x,y,width,height", s)
	}

	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("region %q: %w", s, err)
		}
		vals[i] = v
	}
	return image.Rect(vals[0], vals[1], vals[0]+vals[2], vals[1]+vals[3]), nil
}
