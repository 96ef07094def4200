package sqd

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Container layout. Integers are ASCII decimal, each followed by one space:
//
//	"sqd"
//	<headerLen> <width> <height>
//	<headerLen bytes of header text>
//	<AlphabetSize>
//	<AlphabetSize code lengths, in symbol order>
//	<payloadByteCount>
//	<payloadByteCount bytes of payload, MSB-first>

// maxDigits bounds the length of a decimal field so it fits in an int.
const maxDigits = 18

// Header holds the descriptive fields at the start of a container.
type Header struct {
	Text   string
	Width  int
	Height int
}

func writeContainer(w io.Writer, h *Header, lengths []int, payload []byte) error {
	bw := bufio.NewWriter(w)

	buf := make([]byte, 0, 64)
	buf = append(buf, Magic...)
	buf = appendField(buf, len(h.Text))
	buf = appendField(buf, h.Width)
	buf = appendField(buf, h.Height)
	if _, err := bw.Write(buf); err != nil {
		return err
	}
	if _, err := bw.WriteString(h.Text); err != nil {
		return err
	}

	buf = appendField(buf[:0], len(lengths))
	for _, l := range lengths {
		buf = appendField(buf, l)
		if len(buf) >= 4096 {
			if _, err := bw.Write(buf); err != nil {
				return err
			}
			buf = buf[:0]
		}
	}
	buf = appendField(buf, len(payload))
	if _, err := bw.Write(buf); err != nil {
		return err
	}

	if _, err := bw.Write(payload); err != nil {
		return err
	}
	return bw.Flush()
}

func appendField(buf []byte, v int) []byte {
	buf = strconv.AppendInt(buf, int64(v), 10)
	return append(buf, ' ')
}

// ReadHeader reads the magic marker and header fields from r. It does not
// read past the header text.
func ReadHeader(r io.Reader) (*Header, error) {
	return readHeader(bufio.NewReader(r))
}

func readHeader(br *bufio.Reader) (*Header, error) {
	magic := make([]byte, len(Magic))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, readError(err, "magic")
	}
	if string(magic) != Magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrFormat, magic)
	}

	textLen, err := readField(br, "header length")
	if err != nil {
		return nil, err
	}
	width, err := readField(br, "width")
	if err != nil {
		return nil, err
	}
	height, err := readField(br, "height")
	if err != nil {
		return nil, err
	}

	text, err := readBlock(br, textLen)
	if err != nil {
		return nil, readError(err, "header text")
	}

	return &Header{Text: string(text), Width: width, Height: height}, nil
}

// readCodeLengths reads the alphabet size and the code length table.
func readCodeLengths(br *bufio.Reader) ([]int, error) {
	size, err := readField(br, "alphabet size")
	if err != nil {
		return nil, err
	}
	if size != AlphabetSize {
		return nil, fmt.Errorf("%w: alphabet size %d, want %d", ErrFormat, size, AlphabetSize)
	}

	lengths := make([]int, size)
	for i := range lengths {
		l, err := readField(br, "code length")
		if err != nil {
			return nil, err
		}
		if l > MaxCodeLength {
			return nil, fmt.Errorf("%w: symbol %d has code length %d", ErrFormat, i, l)
		}
		lengths[i] = l
	}
	return lengths, nil
}

// readField reads a non-negative decimal integer terminated by one space.
func readField(br *bufio.Reader, name string) (int, error) {
	v := 0
	digits := 0
	for {
		c, err := br.ReadByte()
		if err != nil {
			return 0, readError(err, name)
		}
		if c == ' ' {
			break
		}
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: unexpected byte %q in %s", ErrFormat, c, name)
		}
		digits++
		if digits > maxDigits {
			return 0, fmt.Errorf("%w: %s too long", ErrFormat, name)
		}
		v = v*10 + int(c-'0')
	}
	if digits == 0 {
		return 0, fmt.Errorf("%w: empty %s", ErrFormat, name)
	}
	return v, nil
}

// readBlock reads exactly n bytes. Storage grows with the data actually
// read, so a corrupt length cannot force a large allocation.
func readBlock(br *bufio.Reader, n int) ([]byte, error) {
	var buf bytes.Buffer
	copied, err := io.CopyN(&buf, br, int64(n))
	if err != nil {
		if errors.Is(err, io.EOF) && copied < int64(n) {
			return buf.Bytes(), io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return buf.Bytes(), nil
}

// readError maps a read failure to ErrFormat when the input simply ended,
// and to ErrIO otherwise.
func readError(err error, what string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: truncated %s", ErrFormat, what)
	}
	return fmt.Errorf("%w: reading %s: %w", ErrIO, what, err)
}
