package skeleton

import (
	"errors"
	"io"
)

// cursor reads forward from a stream without crossing a byte budget.
type cursor struct {
	r      io.Reader
	remain int64
}

func newCursor(rs io.ReadSeeker, offset, length int64) (*cursor, error) {
	if _, err := rs.Seek(offset, io.SeekStart); err != nil {
		return nil, err
	}
	return &cursor{r: rs, remain: length}, nil
}

func (c *cursor) readByte() (byte, error) {
	var b [1]byte
	if err := c.readFull(b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) readN(n int) ([]byte, error) {
	if n < 0 {
		return nil, errInvalidLength
	}
	buf := make([]byte, n)
	if err := c.readFull(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (c *cursor) skip(n int) error {
	if n < 0 {
		return errInvalidLength
	}
	if int64(n) > c.remain {
		return errTruncated
	}
	if s, ok := c.r.(io.Seeker); ok {
		if _, err := s.Seek(int64(n), io.SeekCurrent); err != nil {
			return err
		}
		c.remain -= int64(n)
		return nil
	}
	_, err := c.readN(n)
	return err
}

// readString reads one length-prefixed string. The length byte counts a
// terminator that is not part of the string; zero marks an absent string.
func (c *cursor) readString() (string, bool, error) {
	l, err := c.readByte()
	if err != nil {
		return "", false, err
	}
	if l == 0 {
		return "", false, nil
	}
	b, err := c.readN(int(l) - 1)
	if err != nil {
		return "", false, err
	}
	return string(b), true, nil
}

func (c *cursor) readFull(buf []byte) error {
	if int64(len(buf)) > c.remain {
		return errTruncated
	}
	if _, err := io.ReadFull(c.r, buf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return errTruncated
		}
		return err
	}
	c.remain -= int64(len(buf))
	return nil
}
