package sqd

// BitReader provides sequential bit-level reading from a BitStream.
//
// Bits are read in index order, matching BitWriter output: the first bit
// read is bit 0, the MSB of the first byte.
type BitReader struct {
	stream   *BitStream
	position int
}

// NewBitReader creates a reader positioned at bit 0 of stream.
func NewBitReader(stream *BitStream) *BitReader {
	return &BitReader{stream: stream}
}

// Remaining returns the number of bits remaining to read.
func (br *BitReader) Remaining() int {
	return br.stream.Length() - br.position
}

// Position returns the current bit position.
func (br *BitReader) Position() int {
	return br.position
}

// ReadBit reads and consumes a single bit. It returns ErrTruncatedStream
// once the stream is exhausted.
func (br *BitReader) ReadBit() (bool, error) {
	if br.position >= br.stream.Length() {
		return false, ErrTruncatedStream
	}

	bit, err := br.stream.TestBit(br.position)
	if err != nil {
		return false, err
	}
	br.position++
	return bit, nil
}
