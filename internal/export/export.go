// Package export writes swept meshes to interchange formats.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/pathbuilder/pkg/extrude"
)

var (
	ErrEmptyMesh     = errors.New("mesh has no triangles")
	ErrUnknownFormat = errors.New("unknown export format")
)

// Format identifies an output file format.
type Format string

const (
	FormatOBJ Format = "obj"
	FormatSTL Format = "stl"
)

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatOBJ, FormatSTL:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Write encodes mesh in the given format.
func Write(w io.Writer, mesh *extrude.Mesh, format Format) error {
	if mesh.IsEmpty() {
		return ErrEmptyMesh
	}
	switch format {
	case FormatOBJ:
		return WriteOBJ(w, mesh, "path")
	case FormatSTL:
		return WriteSTL(w, mesh)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteFile encodes mesh to path, creating parent directories.
func WriteFile(path string, mesh *extrude.Mesh, format Format) (err error) {
	if mesh.IsEmpty() {
		return ErrEmptyMesh
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if err := Write(f, mesh, format); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
