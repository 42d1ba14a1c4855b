package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	watermark "github.com/Superoldman96/GeminiWatermarkTool"
)

// runBatch processes every image in cfg.InputDir with bounded parallelism.
// Per-file failures are logged and skipped; only setup problems abort the run.
func runBatch(log *logrus.Logger, cfg *JobConfig) error {
	mode, _ := parseMode(cfg.Mode)
	sizeClass, _ := parseSizeClass(cfg.Size)

	engine, err := buildEngine(log, cfg.LogoValue, cfg.Captures.Small, cfg.Captures.Large)
	if err != nil {
		return err
	}

	paths, err := listImages(cfg.InputDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no images found in %s", cfg.InputDir)
	}

	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return err
		}
	}

	jobs := cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	var failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(jobs)

	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := processOne(log, engine, mode, sizeClass, path, cfg.OutputDir); err != nil {
				failed.Add(1)
				log.WithError(err).WithField("path", path).Error("skipping file")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"total":  len(paths),
		"failed": failed.Load(),
	}).Info("batch complete")
	return nil
}

func processOne(log *logrus.Logger, engine *watermark.Engine, mode opMode, class watermark.SizeClass, path, outDir string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	img, format, err := watermark.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	if mode == modeDetect {
		result, ok := watermark.DetectWatermark(img)
		if !ok {
			return fmt.Errorf("empty image")
		}
		log.WithFields(logrus.Fields{
			"path":       path,
			"format":     format,
			"confidence": fmt.Sprintf("%.2f", result.Confidence),
			"region":     result.Region.String(),
		}).Info("detection")
		return nil
	}

	rgba := watermark.NormalizeRGBA(img)
	if mode == modeRemove {
		err = engine.Remove(rgba, class)
	} else {
		err = engine.Add(rgba, class)
	}
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outPath := filepath.Join(outDir, base+".png")
	if err := writePNG(outPath, rgba); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{"in": path, "out": outPath}).Info("processed")
	return nil
}

func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png", ".jpg", ".jpeg", ".webp", ".gif":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
