package upload

import (
	"bytes"
	"io"
	"path/filepath"

	"github.com/dmitrijs2005/gophdrive/internal/filex"
	"github.com/gabriel-vasile/mimetype"
)

// sniffLen is how much of a file is read to detect its content type.
const sniffLen = 3072

// File is one selected file. Content is opened only when its turn comes in
// Submit.
type File struct {
	// Name is the base name the file is stored and displayed under.
	Name string
	Size int64

	open func() (io.ReadCloser, int64, error)
}

// FromPath selects the local file at path.
func FromPath(path string) (File, error) {
	f, size, err := filex.FileInfo(path)
	if err != nil {
		return File{}, err
	}
	_ = f.Close()

	return File{
		Name: filepath.Base(path),
		Size: size,
		open: func() (io.ReadCloser, int64, error) {
			return filex.FileInfo(path)
		},
	}, nil
}

// FromBytes selects in-memory content under name.
func FromBytes(name string, data []byte) File {
	return File{
		Name: name,
		Size: int64(len(data)),
		open: func() (io.ReadCloser, int64, error) {
			return io.NopCloser(bytes.NewReader(data)), int64(len(data)), nil
		},
	}
}

// FromOpener selects content produced by open, for sources other than the
// local disk.
func FromOpener(name string, size int64, open func() (io.ReadCloser, error)) File {
	return File{
		Name: name,
		Size: size,
		open: func() (io.ReadCloser, int64, error) {
			rc, err := open()
			return rc, size, err
		},
	}
}

// content opens f and detects its MIME type from the first bytes. The
// returned reader yields the full content, sniffed prefix included.
func (f File) content() (io.Reader, io.Closer, int64, string, error) {
	rc, size, err := f.open()
	if err != nil {
		return nil, nil, 0, "", err
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(rc, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		_ = rc.Close()
		return nil, nil, 0, "", err
	}
	head = head[:n]

	ctype := mimetype.Detect(head).String()
	return io.MultiReader(bytes.NewReader(head), rc), rc, size, ctype, nil
}
