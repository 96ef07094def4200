package sqd

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
)

// Decode reads a container from r and returns its header and the masked
// sample sequence.
func Decode(r io.Reader) (*Header, []int, error) {
	br := bufio.NewReader(r)

	h, err := readHeader(br)
	if err != nil {
		return nil, nil, err
	}

	lengths, err := readCodeLengths(br)
	if err != nil {
		return nil, nil, err
	}
	if lengths[EOFSymbol] == 0 {
		return nil, nil, fmt.Errorf("%w: end-of-stream symbol has no code", ErrFormat)
	}

	table, err := NewCodeTable(lengths)
	if err != nil {
		return nil, nil, err
	}

	numBytes, err := readField(br, "payload length")
	if err != nil {
		return nil, nil, err
	}
	if numBytes > math.MaxInt/8 {
		return nil, nil, fmt.Errorf("%w: payload length %d", ErrFormat, numBytes)
	}

	data, err := readBlock(br, numBytes)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, nil, fmt.Errorf("%w: payload has %d of %d bytes", ErrTruncatedStream, len(data), numBytes)
		}
		return nil, nil, readError(err, "payload")
	}

	payload, err := NewBitStream(len(data) * 8)
	if err != nil {
		return nil, nil, err
	}
	payload.FromBytes(data)

	samples, err := DecodeSamples(table, payload, pixelCount(h))
	if err != nil {
		return nil, nil, err
	}
	return h, samples, nil
}

// DecodeBytes is like Decode but reads from a byte slice.
func DecodeBytes(data []byte) (*Header, []int, error) {
	return Decode(bytes.NewReader(data))
}

// DecodeSamples walks payload one bit at a time, matching the accumulated
// bits against the codes of table of the same length, until the code of
// EOFSymbol is found. At most limit samples are accepted.
func DecodeSamples(table *CodeTable, payload *BitStream, limit int) ([]int, error) {
	if table.MaxLength() == 0 {
		return nil, fmt.Errorf("%w: empty code table", ErrFormat)
	}

	code, err := NewBitStream(table.MaxLength())
	if err != nil {
		return nil, err
	}
	length := 0

	br := NewBitReader(payload)
	samples := make([]int, 0, min(limit, payload.Length()))

	for {
		bit, err := br.ReadBit()
		if err != nil {
			return nil, fmt.Errorf("%w: no end-of-stream symbol after %d samples", err, len(samples))
		}
		if bit {
			if err := code.SetBit(length); err != nil {
				return nil, err
			}
		}
		length++

		if value, ok := table.match(code, length); ok {
			if value == table.Size()-1 {
				return samples, nil
			}
			if len(samples) >= limit {
				return nil, fmt.Errorf("%w: more than %d samples", ErrFormat, limit)
			}
			samples = append(samples, value)
			code.ClearAll()
			length = 0
			continue
		}

		if length == table.MaxLength() {
			return nil, fmt.Errorf("%w: no code matches bits ending at %d", ErrFormat, br.Position())
		}
	}
}

// pixelCount is the upper bound on the number of masked samples.
func pixelCount(h *Header) int {
	if h.Width == 0 || h.Height == 0 {
		return 0
	}
	if h.Width > math.MaxInt/h.Height {
		return math.MaxInt
	}
	return h.Width * h.Height
}
