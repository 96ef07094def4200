package sqd

import "fmt"

// BitWriter writes bits sequentially into a preallocated BitStream.
//
// Bits are written MSB-first: the first bit written is bit 0 of the
// stream, which becomes bit position 7 of the first byte.
type BitWriter struct {
	stream   *BitStream
	position int
}

// NewBitWriter creates a writer positioned at bit 0 of stream.
func NewBitWriter(stream *BitStream) *BitWriter {
	return &BitWriter{stream: stream}
}

// Position returns the number of bits written so far.
func (bw *BitWriter) Position() int {
	return bw.position
}

// Remaining returns the number of bits that can still be written.
func (bw *BitWriter) Remaining() int {
	return bw.stream.Length() - bw.position
}

// WriteBit writes a single bit.
func (bw *BitWriter) WriteBit(bit bool) error {
	if bw.position >= bw.stream.Length() {
		return fmt.Errorf("%w: write past end of %d-bit stream", ErrOutOfRange, bw.stream.Length())
	}

	// The stream starts zeroed, so only ones need setting.
	if bit {
		if err := bw.stream.SetBit(bw.position); err != nil {
			return err
		}
	}

	bw.position++
	return nil
}

// WriteCode writes the first n bits of code.
func (bw *BitWriter) WriteCode(code *BitStream, n int) error {
	if n > code.Length() {
		return fmt.Errorf("%w: code of %d bits has no bit %d", ErrOutOfRange, code.Length(), n-1)
	}
	if n > bw.Remaining() {
		return fmt.Errorf("%w: need %d bits, have %d", ErrOutOfRange, n, bw.Remaining())
	}

	for i := 0; i < n; i++ {
		bit, err := code.TestBit(i)
		if err != nil {
			return err
		}
		if err := bw.WriteBit(bit); err != nil {
			return err
		}
	}

	return nil
}
