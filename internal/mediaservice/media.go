// Package mediaservice stores uploaded images and hands back the public URL
// they are served from.
package mediaservice

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var ErrInvalidName = errors.New("invalid file name")

// sniffLen is how much of an upload is read to guess its type.
const sniffLen = 3072

type Uploader interface {
	Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

// CoverFilename derives the stored name of a cover image: the owner id followed
// by the extension of the original file name. When the original name has no
// extension the content is sniffed instead. The returned reader yields the whole
// upload, including any bytes consumed while sniffing.
func CoverFilename(id, original string, r io.Reader) (string, io.Reader, string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	if ext != "" && ext != "." {
		return id + ext, r, extensionMIME(ext), nil
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, "", err
	}
	head = head[:n]

	mt := mimetype.Detect(head)
	return id + mt.Extension(), io.MultiReader(bytes.NewReader(head), r), mt.String(), nil
}

// extensionMIME maps the common image extensions to their MIME type so the
// stored object gets a sensible Content-Type without reading it.
func extensionMIME(ext string) string {
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}

func validName(name string) bool {
	return name != "" && name == filepath.Base(name) && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}
