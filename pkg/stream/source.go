package stream

import (
	"bufio"
	"fmt"
	"io"
)

// Source is the byte supplier a Stream reads from.
// Peek must not consume; both methods return io.EOF at the end of input.
type Source interface {
	Peek() (byte, error)
	Next() (byte, error)
}

// Seeker is implemented by sources that can rewind to an earlier offset.
// Offsets are relative to the point where the Stream started reading.
type Seeker interface {
	Seek(offset int64) error
}

// BytesSource reads from an in-memory buffer. It is seekable.
type BytesSource struct {
	data []byte
	off  int
}

// FromBytes returns a source over data. The slice is not copied.
func FromBytes(data []byte) *BytesSource {
	return &BytesSource{data: data}
}

// FromString returns a source over s.
func FromString(s string) *BytesSource {
	return &BytesSource{data: []byte(s)}
}

// Peek returns the next byte without consuming it.
func (b *BytesSource) Peek() (byte, error) {
	if b.off >= len(b.data) {
		return 0, io.EOF
	}
	return b.data[b.off], nil
}

// Next consumes and returns the next byte.
func (b *BytesSource) Next() (byte, error) {
	if b.off >= len(b.data) {
		return 0, io.EOF
	}
	c := b.data[b.off]
	b.off++
	return c, nil
}

// Seek moves the read offset. Seeking past the end of the buffer is an error.
func (b *BytesSource) Seek(offset int64) error {
	if offset < 0 || offset > int64(len(b.data)) {
		return fmt.Errorf("%w: offset %d outside [0, %d]", ErrSeekRange, offset, len(b.data))
	}
	b.off = int(offset)
	return nil
}

// ReaderSource reads from an io.Reader through a bufio.Reader.
// It cannot seek, so Try cannot rewind streams built on it.
type ReaderSource struct {
	r *bufio.Reader
}

// FromReader returns a non-seekable source over r.
func FromReader(r io.Reader) *ReaderSource {
	if br, ok := r.(*bufio.Reader); ok {
		return &ReaderSource{r: br}
	}
	return &ReaderSource{r: bufio.NewReader(r)}
}

// Peek returns the next byte without consuming it.
func (r *ReaderSource) Peek() (byte, error) {
	buf, err := r.r.Peek(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// Next consumes and returns the next byte.
func (r *ReaderSource) Next() (byte, error) {
	return r.r.ReadByte()
}

// ReadSeekerSource buffers an io.ReadSeeker and can rewind it.
type ReadSeekerSource struct {
	rs   io.ReadSeeker
	r    *bufio.Reader
	base int64
}

// FromReadSeeker returns a seekable source over rs, starting at its current offset.
func FromReadSeeker(rs io.ReadSeeker) *ReadSeekerSource {
	base, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		base = 0
	}
	return &ReadSeekerSource{rs: rs, r: bufio.NewReader(rs), base: base}
}

// Peek returns the next byte without consuming it.
func (r *ReadSeekerSource) Peek() (byte, error) {
	buf, err := r.r.Peek(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// Next consumes and returns the next byte.
func (r *ReadSeekerSource) Next() (byte, error) {
	return r.r.ReadByte()
}

// Seek repositions the underlying reader and drops the buffered bytes.
func (r *ReadSeekerSource) Seek(offset int64) error {
	if offset < 0 {
		return fmt.Errorf("%w: negative offset %d", ErrSeekRange, offset)
	}
	if _, err := r.rs.Seek(r.base+offset, io.SeekStart); err != nil {
		return fmt.Errorf("seek source: %w", err)
	}
	r.r.Reset(r.rs)
	return nil
}

// Open picks a source for r. Readers that can actually seek (regular files,
// strings.Reader, bytes.Reader) get a seekable source; pipes and other
// readers get a buffered non-seekable one.
func Open(r io.Reader) Source {
	if rs, ok := r.(io.ReadSeeker); ok {
		if _, err := rs.Seek(0, io.SeekCurrent); err == nil {
			return FromReadSeeker(rs)
		}
	}
	return FromReader(r)
}
