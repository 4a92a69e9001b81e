package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/tailscale/hujson"

	"github.com/gorewood/ismism/internal/output"
)

// CompressedSuffix marks dataset files stored zstd-compressed.
const CompressedSuffix = ".zst"

// File is the envelope written by this tool.
// Parse also accepts the build step's {"modules": [...]} shape and a bare
// array of records.
type File struct {
	Schema  string         `json:"schema,omitempty"`
	Isms    []*Ism         `json:"isms,omitempty"`
	Modules []SourceModule `json:"modules,omitempty"`
}

// SourceModule is a record as emitted by the table-of-contents extractor.
type SourceModule struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	RawText string `json:"rawText"`
}

// ToIsm converts a source module; RawText becomes the description.
func (m SourceModule) ToIsm() *Ism {
	return &Ism{
		Code:        strings.TrimSpace(m.Code),
		Name:        strings.TrimSpace(m.Name),
		Description: strings.TrimSpace(m.RawText),
	}
}

// Load reads and parses the dataset file at path.
// Returns a user error if the file does not exist, a system error if it
// cannot be read, and a data error if its content is invalid.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, output.NewUserError("dataset not found: " + path)
		}
		return nil, output.NewSystemErrorWithCause("failed to read dataset: "+path, err)
	}

	if strings.HasSuffix(path, CompressedSuffix) {
		data, err = decompress(data)
		if err != nil {
			return nil, output.NewDataErrorWithCause("failed to decompress dataset: "+path, err)
		}
	}

	isms, err := Parse(data)
	if err != nil {
		return nil, output.NewDataErrorWithCause("invalid dataset "+path+": "+err.Error(), err)
	}

	ds, err := New(isms)
	if err != nil {
		return nil, output.NewDataErrorWithCause("invalid dataset "+path+": "+err.Error(), err)
	}
	return ds, nil
}

// Parse decodes dataset content. Comments and trailing commas are allowed.
func Parse(data []byte) ([]*Ism, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty dataset")
	}

	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}

	// Standardize blanks comments out in place, so a leading comment leaves
	// whitespace ahead of the opening bracket.
	if bytes.TrimLeft(std, " \t\r\n")[0] == '[' {
		var isms []*Ism
		if err := json.Unmarshal(std, &isms); err != nil {
			return nil, fmt.Errorf("parsing dataset array: %w", err)
		}
		return isms, nil
	}

	var file File
	if err := json.Unmarshal(std, &file); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}
	if file.Schema != "" && file.Schema != SchemaVersion {
		return nil, fmt.Errorf("unsupported schema %q (want %q)", file.Schema, SchemaVersion)
	}

	isms := file.Isms
	for _, m := range file.Modules {
		isms = append(isms, m.ToIsm())
	}
	return isms, nil
}

// decompress inflates a zstd frame.
func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("creating zstd reader: %w", err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decoding zstd: %w", err)
	}
	return out, nil
}
