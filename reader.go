package colorbar

import "io"

// Reader is an io.Reader that reports the fraction of total bytes read to a bar.
type Reader struct {
	io.Reader
	bar   *ProgressBar
	total int64
	read  int64
}

// NewReader creates a new Reader with a given progress bar. A total of zero
// or less leaves the bar untouched while reading.
func NewReader(r io.Reader, total int64, bar *ProgressBar) *Reader {
	return &Reader{
		Reader: r,
		bar:    bar,
		total:  total,
	}
}

// Read reads buffer and updates the bar with the bytes read so far.
func (r *Reader) Read(p []byte) (n int, err error) {
	n, err = r.Reader.Read(p)
	r.read += int64(n)
	if r.total > 0 && n > 0 {
		if uerr := r.bar.Update(float64(r.read) / float64(r.total)); uerr != nil && err == nil {
			err = uerr
		}
	}
	return
}

// Close closes the embedded reader if it implements io.Closer and fills the bar to full.
// The bar itself stays open.
func (r *Reader) Close() (err error) {
	if closer, ok := r.Reader.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return err
		}
	}
	return r.bar.Update(1)
}
