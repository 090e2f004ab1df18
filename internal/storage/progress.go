package storage

import (
	"io"
	"sync/atomic"
)

// progressReader reports the running total of bytes read from r.
type progressReader struct {
	r          io.Reader
	read       atomic.Int64
	onProgress func(sent int64)
}

func newProgressReader(r io.Reader, onProgress func(sent int64)) io.Reader {
	if onProgress == nil {
		return r
	}
	return &progressReader{r: r, onProgress: onProgress}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.onProgress(p.read.Add(int64(n)))
	}
	return n, err
}
