package tdms

import (
	"bufio"
	"io"

	"go.uber.org/multierr"
)

// bufferedStream wraps a caller-supplied stream with buffered reads and
// writes, so every read and write this package issues goes through bufio
// instead of making a syscall per call. Reads and writes interleave
// throughout the codec (a segment's lead-in, metadata, and raw data are
// all read or written in sequence against the same stream), so Read
// flushes any pending write first, and Seek flushes and discards the read
// buffer before repositioning — otherwise a read immediately following a
// write, or a seek to a position already buffered, would observe stale or
// out-of-order bytes.
type bufferedStream struct {
	rw io.ReadWriteSeeker
	br *bufio.Reader
	bw *bufio.Writer
}

func newBufferedStream(rw io.ReadWriteSeeker) *bufferedStream {
	return &bufferedStream{
		rw: rw,
		br: bufio.NewReader(rw),
		bw: bufio.NewWriter(rw),
	}
}

func (s *bufferedStream) Read(p []byte) (int, error) {
	if err := s.bw.Flush(); err != nil {
		return 0, err
	}
	return s.br.Read(p)
}

func (s *bufferedStream) Write(p []byte) (int, error) {
	return s.bw.Write(p)
}

func (s *bufferedStream) Seek(offset int64, whence int) (int64, error) {
	if err := s.bw.Flush(); err != nil {
		return 0, err
	}
	pos, err := s.rw.Seek(offset, whence)
	if err != nil {
		return pos, err
	}
	s.br.Reset(s.rw)
	return pos, nil
}

// Sync flushes the write buffer and, if the wrapped stream also implements
// Sync (as *os.File does), fsyncs it, combining both errors.
func (s *bufferedStream) Sync() error {
	var errs error
	errs = multierr.Append(errs, s.bw.Flush())
	if f, ok := s.rw.(interface{ Sync() error }); ok {
		errs = multierr.Append(errs, f.Sync())
	}
	return errs
}
