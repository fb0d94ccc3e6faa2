package export

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zip"
)

// archiveTime is the modification time stamped on every archive entry, so
// identical bundles produce identical archives.
var archiveTime = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// WriteZip writes the bundle as a zip archive holding exactly the three
// bundle files.
func WriteZip(w io.Writer, b Bundle) error {
	zw := zip.NewWriter(w)
	for _, f := range b.Files() {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: archiveTime,
		})
		if err != nil {
			return fmt.Errorf("create %s: %w", f.Name, err)
		}
		if _, err := io.WriteString(fw, f.Content); err != nil {
			return fmt.Errorf("write %s: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}
	return nil
}

// Zip returns the bundle packaged as zip bytes.
func Zip(b Bundle) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteZip(&buf, b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadZip extracts the named files of an archive produced by WriteZip.
func ReadZip(data []byte) (map[string]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	files := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		files[f.Name] = string(content)
	}
	return files, nil
}
