// Package docling shells out to the docling CLI to OCR uploaded
// documents into markdown
package docling

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"time"

	perr "reportsmith/internal/platform/errors"
	"reportsmith/internal/platform/logger"
)

// RunTimeout bounds one docling invocation
const RunTimeout = 10 * time.Minute

// Converter runs docling against input files and collects the
// markdown it produces. Safe for concurrent use
type Converter struct {
	bin    string
	device string
	runner Runner
	log    *logger.Logger

	detectOnce sync.Once
	detected   string
}

// Option mutates converter construction
type Option func(*Converter)

// WithRunner swaps the command runner, mainly for tests
func WithRunner(r Runner) Option { return func(c *Converter) { c.runner = r } }

// WithDevice pins the compute device instead of autodetecting
func WithDevice(device string) Option { return func(c *Converter) { c.device = device } }

// WithBinary overrides the docling executable name
func WithBinary(bin string) Option { return func(c *Converter) { c.bin = bin } }

// New builds a Converter with cuda/cpu autodetection deferred to first use
func New(opts ...Option) *Converter {
	c := &Converter{
		bin:    "docling",
		runner: execRunner{},
		log:    logger.Named("docling"),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Device returns the configured or autodetected compute device
func (c *Converter) Device(ctx context.Context) string {
	if c.device != "" {
		return c.device
	}
	c.detectOnce.Do(func() {
		c.detected = "cpu"
		probe, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if _, _, err := c.runner.Run(probe, "nvidia-smi"); err == nil {
			c.detected = "cuda"
		}
		c.log.Info().Str("device", c.detected).Msg("compute device selected")
	})
	return c.detected
}

// RunSettings are per-call overrides. Zero values fall back to the
// converter's device selection and the CPU count
type RunSettings struct {
	Device     string
	NumThreads int
}

// Convert OCRs the file at inputPath and returns the markdown text
func (c *Converter) Convert(ctx context.Context, inputPath string) (string, error) {
	return c.ConvertWith(ctx, inputPath, RunSettings{})
}

// ConvertWith is Convert with per-call device/thread overrides.
// Output goes to a throwaway temp directory; docling writes one .md
// per input and we read the first one back
func (c *Converter) ConvertWith(ctx context.Context, inputPath string, rs RunSettings) (string, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return "", perr.InvalidArgf("input file %q does not exist", inputPath)
	}

	device := rs.Device
	if device == "" {
		device = c.Device(ctx)
	}
	threads := rs.NumThreads
	if threads < 1 {
		threads = runtime.NumCPU()
	}

	outDir, err := os.MkdirTemp("", "docling-out-*")
	if err != nil {
		return "", perr.Internalf("create output dir: %v", err)
	}
	defer os.RemoveAll(outDir) // nolint:errcheck

	runCtx, cancel := context.WithTimeout(ctx, RunTimeout)
	defer cancel()

	args := []string{
		inputPath,
		"--output", outDir,
		"--device", device,
		"--ocr-engine", "rapidocr",
		"--image-export-mode", "placeholder",
		"--force-ocr",
		"--num-threads", strconv.Itoa(threads),
	}

	start := time.Now()
	_, stderr, err := c.runner.Run(runCtx, c.bin, args...)
	if err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return "", perr.Extractionf("docling timed out after %s", RunTimeout)
		}
		return "", perr.Extractionf("docling failed: %v: %s", err, truncate(string(stderr), 8<<10))
	}

	matches, err := filepath.Glob(filepath.Join(outDir, "*.md"))
	if err != nil || len(matches) == 0 {
		return "", perr.Extractionf("docling produced no markdown output: %s", truncate(string(stderr), 8<<10))
	}

	md, err := os.ReadFile(matches[0])
	if err != nil {
		return "", perr.Internalf("read docling output: %v", err)
	}

	c.log.Info().
		Str("input", filepath.Base(inputPath)).
		Int("markdown_bytes", len(md)).
		Dur("elapsed", time.Since(start)).
		Msg("ocr complete")

	return string(md), nil
}
