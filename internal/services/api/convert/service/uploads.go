package service

import (
	"context"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"reportsmith/internal/adapters/docling"
	perr "reportsmith/internal/platform/errors"
	"reportsmith/internal/platform/logger"
	"reportsmith/internal/services/api/convert/domain"
)

// DefaultUploadTTL is how long an original upload stays retrievable
const DefaultUploadTTL = time.Hour

// Upload is a retained original document
type Upload struct {
	Path         string
	ContentType  string
	OriginalName string
	CreatedAt    time.Time
}

// UploadStore retains original uploads for later retrieval, expiring
// them after a TTL. The only shared mutable state in the service
type UploadStore struct {
	dir string
	ttl time.Duration

	mu      sync.Mutex
	entries map[string]Upload

	log *logger.Logger
}

// NewUploadStore creates the store rooted at dir
func NewUploadStore(dir string, ttl time.Duration) (*UploadStore, error) {
	if ttl <= 0 {
		ttl = DefaultUploadTTL
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, perr.Internalf("create upload dir: %v", err)
	}
	return &UploadStore{
		dir:     dir,
		ttl:     ttl,
		entries: make(map[string]Upload),
		log:     logger.Named("uploads"),
	}, nil
}

// Put stores content under a fresh uuid and returns the id
func (u *UploadStore) Put(originalName string, content []byte) (string, Upload, error) {
	u.sweep()

	id := uuid.New().String()
	path := filepath.Join(u.dir, id+filepath.Ext(originalName))
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return "", Upload{}, perr.Internalf("store uploaded file: %v", err)
	}

	up := Upload{
		Path:         path,
		ContentType:  contentTypeFor(originalName),
		OriginalName: originalName,
		CreatedAt:    time.Now(),
	}
	u.mu.Lock()
	u.entries[id] = up
	u.mu.Unlock()
	return id, up, nil
}

// Resolve returns the upload for id or a not found error
func (u *UploadStore) Resolve(id string) (Upload, error) {
	u.sweep()

	u.mu.Lock()
	up, ok := u.entries[id]
	u.mu.Unlock()
	if !ok {
		return Upload{}, perr.NotFoundf("file not found")
	}
	if _, err := os.Stat(up.Path); err != nil {
		return Upload{}, perr.NotFoundf("file not found")
	}
	return up, nil
}

// Remove drops the entry and its file
func (u *UploadStore) Remove(id string) {
	u.mu.Lock()
	up, ok := u.entries[id]
	delete(u.entries, id)
	u.mu.Unlock()
	if ok {
		_ = os.Remove(up.Path)
	}
}

// sweep drops entries past the TTL; runs opportunistically on access
func (u *UploadStore) sweep() {
	cutoff := time.Now().Add(-u.ttl)

	var stale []Upload
	u.mu.Lock()
	for id, up := range u.entries {
		if up.CreatedAt.Before(cutoff) {
			stale = append(stale, up)
			delete(u.entries, id)
		}
	}
	u.mu.Unlock()

	for _, up := range stale {
		if err := os.Remove(up.Path); err != nil && !os.IsNotExist(err) {
			u.log.Warn().Str("path", up.Path).Err(err).Msg("failed to remove stale upload")
		}
	}
}

func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// Uploader runs the full upload pipeline: retain the original, OCR it
// to markdown, then dispatch
type Uploader struct {
	ocr   *docling.Converter
	store *UploadStore
	svc   Service

	// originalBase is the public path prefix originals are served from
	originalBase string
}

// UploaderOption mutates uploader construction
type UploaderOption func(*Uploader)

// WithOriginalBase overrides the public path prefix used in returned
// original-file URLs, e.g. "/api/v1/original"
func WithOriginalBase(base string) UploaderOption {
	return func(u *Uploader) { u.originalBase = strings.TrimRight(base, "/") }
}

// NewUploader wires the upload pipeline
func NewUploader(ocr *docling.Converter, store *UploadStore, svc Service, opts ...UploaderOption) *Uploader {
	u := &Uploader{ocr: ocr, store: store, svc: svc, originalBase: "/original"}
	for _, o := range opts {
		o(u)
	}
	return u
}

// Store returns the underlying upload store
func (up *Uploader) Store() *UploadStore { return up.store }

// Device reports the OCR compute device
func (up *Uploader) Device(ctx context.Context) string { return up.ocr.Device(ctx) }

// UploadInput carries one document upload through the pipeline.
// Device and NumThreads are optional OCR overrides; zero values mean
// autodetect and the host CPU count
type UploadInput struct {
	Filename   string
	Content    []byte
	ReportID   string
	Model      string
	Device     string
	NumThreads int
}

// Convert OCRs the uploaded document and dispatches the markdown.
// The original stays retrievable under the returned file id unless
// OCR itself fails, in which case the upload is dropped
func (up *Uploader) Convert(ctx context.Context, in UploadInput) (domain.UploadResult, error) {
	if in.Device != "" && in.Device != "cuda" && in.Device != "cpu" {
		return domain.UploadResult{}, perr.WithField(perr.Validationf("device must be cuda or cpu, got %q", in.Device), "device")
	}
	if in.NumThreads < 0 {
		return domain.UploadResult{}, perr.WithField(perr.Validationf("num_threads must be a positive integer"), "num_threads")
	}

	filename := in.Filename
	if filename == "" {
		filename = "uploaded_document"
	}

	id, stored, err := up.store.Put(filename, in.Content)
	if err != nil {
		return domain.UploadResult{}, err
	}

	markdown, err := up.ocr.ConvertWith(ctx, stored.Path, docling.RunSettings{
		Device:     in.Device,
		NumThreads: in.NumThreads,
	})
	if err != nil {
		up.store.Remove(id)
		return domain.UploadResult{}, err
	}

	conv, err := up.svc.Convert(ctx, markdown, in.ReportID, filename, in.Model)
	if err != nil {
		return domain.UploadResult{}, err
	}

	device := in.Device
	if device == "" {
		device = up.ocr.Device(ctx)
	}
	threads := in.NumThreads
	if threads < 1 {
		threads = numThreads()
	}

	return domain.UploadResult{
		Success:  true,
		Filename: filename,
		Markdown: markdown,
		Data:     conv.Data,
		Report:   conv.Report,
		Message:  conv.Message,
		OriginalFile: domain.OriginalFile{
			ID:           id,
			URL:          up.originalBase + "/" + id,
			ContentType:  stored.ContentType,
			OriginalName: filename,
		},
		Settings: domain.UploadSettings{
			Device:     device,
			NumThreads: threads,
		},
	}, nil
}
