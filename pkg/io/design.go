package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/pagecraft/pkg/editor"
	"github.com/matzehuels/pagecraft/pkg/errors"
)

// FormatVersion is the design file version written by this package.
const FormatVersion = 1

type design struct {
	Version  int              `json:"version"`
	Elements []editor.Element `json:"elements"`
}

// WriteJSON encodes a snapshot as an indented design and writes it to w.
func WriteJSON(s editor.Snapshot, w io.Writer) error {
	out := design{Version: FormatVersion, Elements: s.Elements}
	if out.Elements == nil {
		out.Elements = []editor.Element{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a snapshot to a design file at path. The file is
// written to a temporary sibling first and renamed into place.
func ExportJSON(s editor.Snapshot, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".design-*.json")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteJSON(s, tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// ReadJSON decodes a design from r into a new document with no selection.
//
// ReadJSON returns an error if the JSON is malformed, the version is newer
// than FormatVersion, or an element has an empty or duplicate id or an
// unknown type. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*editor.Document, error) {
	var data design
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode design")
	}
	if data.Version > FormatVersion {
		return nil, errors.New(errors.ErrCodeUnsupported, "design version %d is newer than %d", data.Version, FormatVersion)
	}
	return editor.FromSnapshot(editor.Snapshot{Elements: data.Elements})
}

// ImportJSON reads a design file at path.
func ImportJSON(path string) (*editor.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
