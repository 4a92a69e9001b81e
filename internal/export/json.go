package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/gorewood/ismism/internal/catalog"
	"github.com/gorewood/ismism/internal/output"
)

// FormatJSON outputs the records as a JSON array to the printer.
// An empty selection is written as [] rather than null.
func FormatJSON(printer *output.Printer, isms []*catalog.Ism) error {
	if isms == nil {
		isms = []*catalog.Ism{}
	}
	return printer.WriteJSON(isms)
}

// WriteJSONFile writes the records as a dataset envelope that catalog.Load
// reads back. A path ending in .zst is written zstd-compressed.
func WriteJSONFile(path string, isms []*catalog.Ism) error {
	if isms == nil {
		isms = []*catalog.Ism{}
	}
	data, err := json.MarshalIndent(catalog.File{Schema: catalog.SchemaVersion, Isms: isms}, "", "  ")
	if err != nil {
		return output.NewSystemError(fmt.Sprintf("failed to marshal dataset: %v", err))
	}
	data = append(data, '\n')

	if strings.HasSuffix(path, catalog.CompressedSuffix) {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return output.NewSystemErrorWithCause("failed to create zstd encoder", err)
		}
		data = enc.EncodeAll(data, nil)
		if err := enc.Close(); err != nil {
			return output.NewSystemErrorWithCause("failed to finish zstd stream", err)
		}
	}

	if err := atomicWrite(path, data); err != nil {
		return output.NewSystemErrorWithCause("failed to write "+path, err)
	}
	return nil
}

// atomicWrite writes data to path using write-to-temp-then-rename.
// The temp file is created in the same directory as path.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".tmp-ismism-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
