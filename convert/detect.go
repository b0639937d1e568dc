package convert

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
)

// OOXML detection has to look past the zip signature for content type
// entries, plain magic-number sized buffer is not enough.
const sniffLen = 8192

func sniffFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	return buf[:n], nil
}

// isArchiveFile reports whether path is a zip container to look inside rather
// than a presentation itself. Presentations are zip archives too, so content
// sniffing alone cannot tell them apart.
func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}
	buf, err := sniffFile(path)
	if err != nil {
		return false, err
	}
	return filetype.IsType(buf, matchers.TypeZip) && !filetype.IsType(buf, matchers.TypePptx), nil
}

// isPresentationFile reports whether path looks like a PPTX document.
func isPresentationFile(path string) (bool, error) {
	buf, err := sniffFile(path)
	if err != nil {
		return false, err
	}
	if filetype.IsType(buf, matchers.TypePptx) {
		return true, nil
	}
	// [Content_Types].xml may be stored deeper in the archive than we sniff,
	// trust the extension when the container is at least a zip
	return strings.EqualFold(filepath.Ext(path), ".pptx") && filetype.IsType(buf, matchers.TypeZip), nil
}

// IsPresentationData is the in-memory variant used when the source never
// touches the file system.
func IsPresentationData(data []byte) bool {
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}
	return filetype.IsType(data, matchers.TypePptx) ||
		filetype.IsType(data, matchers.TypeZip)
}

func isPresentationInArchive(f *zip.File) bool {
	return strings.EqualFold(filepath.Ext(f.FileHeader.Name), ".pptx")
}
