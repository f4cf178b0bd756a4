package export

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spec-kit/review-router/internal/config"
	"github.com/spec-kit/review-router/internal/domain"
)

// FileExporter keeps the latest ticket as a single-row CSV at a fixed path.
// Every Export replaces the previous file; no history is kept.
type FileExporter struct {
	mu   sync.Mutex
	dir  string
	name string
}

// NewFileExporter builds an exporter for cfg.
func NewFileExporter(cfg config.ExportConfig) *FileExporter {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	return &FileExporter{dir: dir, name: cfg.FileName}
}

// Path returns the artifact location.
func (e *FileExporter) Path() string {
	return filepath.Join(e.dir, e.name)
}

// FileName returns the artifact's base name.
func (e *FileExporter) FileName() string {
	return e.name
}

// Export writes rec and returns the artifact path.
func (e *FileExporter) Export(rec domain.ExportRecord) (string, error) {
	var buf bytes.Buffer
	if err := EncodeCSV(&buf, rec); err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	tmp, err := os.CreateTemp(e.dir, e.name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp export: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close export: %w", err)
	}
	if err := os.Rename(tmpName, e.Path()); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("replace export: %w", err)
	}
	return e.Path(), nil
}

// Discard removes the artifact so a stale ticket is never served as the
// latest one. A missing artifact is not an error.
func (e *FileExporter) Discard() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := os.Remove(e.Path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("discard export: %w", err)
	}
	return nil
}

// CheckDir reports whether the export directory exists or can be created
// and is a directory.
func (e *FileExporter) CheckDir() error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	info, err := os.Stat(e.dir)
	if err != nil {
		return fmt.Errorf("stat export dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("export dir %s is not a directory", e.dir)
	}
	return nil
}

// Read returns the artifact bytes or ErrNoExport.
func (e *FileExporter) Read() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	data, err := os.ReadFile(e.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoExport
	}
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	return data, nil
}

// Latest decodes the artifact into a record.
func (e *FileExporter) Latest() (domain.ExportRecord, error) {
	data, err := e.Read()
	if err != nil {
		return domain.ExportRecord{}, err
	}
	return DecodeCSV(bytes.NewReader(data), time.Local)
}
