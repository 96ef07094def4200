package sqd

import (
	"fmt"
	"strings"
)

// BitStream is a fixed-length bit array using 32-bit word storage.
//
// Bit Numbering Convention:
//   - Bit 0 = MSB (first bit written to, and read from, a byte stream)
//   - Bit N-1 = LSB when the stream is read as an integer
//
// Word Packing (Big-Endian):
//   - Word[i] holds bits [32i, 32i+31]
//   - Bit 32i is the most significant bit of Word[i]
//
// Bits past Length in the last word are always zero. A BitStream is not
// safe for concurrent use.
type BitStream struct {
	data   []uint32
	length int // Length in bits
}

// NewBitStream creates a zeroed bit stream of numBits bits.
func NewBitStream(numBits int) (*BitStream, error) {
	if numBits < 0 {
		return nil, fmt.Errorf("%w: negative bit stream length %d", ErrInvalidArgument, numBits)
	}

	return &BitStream{
		data:   make([]uint32, (numBits+31)/32),
		length: numBits,
	}, nil
}

// Length returns the length of the bit stream in bits.
func (bs *BitStream) Length() int {
	return bs.length
}

// ClearAll sets all bits to zero.
func (bs *BitStream) ClearAll() {
	for i := range bs.data {
		bs.data[i] = 0
	}
}

// locate returns the word index and bit mask for pos.
func (bs *BitStream) locate(pos int) (int, uint32, error) {
	if pos < 0 || pos >= bs.length {
		return 0, 0, fmt.Errorf("%w: bit %d, length %d", ErrOutOfRange, pos, bs.length)
	}
	return pos / 32, 1 << (31 - uint(pos%32)), nil
}

// TestBit reports whether the bit at pos is set.
func (bs *BitStream) TestBit(pos int) (bool, error) {
	word, mask, err := bs.locate(pos)
	if err != nil {
		return false, err
	}
	return bs.data[word]&mask != 0, nil
}

// SetBit sets the bit at pos to one.
func (bs *BitStream) SetBit(pos int) error {
	word, mask, err := bs.locate(pos)
	if err != nil {
		return err
	}
	bs.data[word] |= mask
	return nil
}

// ClearBit sets the bit at pos to zero.
func (bs *BitStream) ClearBit(pos int) error {
	word, mask, err := bs.locate(pos)
	if err != nil {
		return err
	}
	bs.data[word] &^= mask
	return nil
}

// ShiftLeft shifts all bits n positions toward the MSB (lower indices).
// Bits shifted past bit 0 are lost; vacated bits become 0.
func (bs *BitStream) ShiftLeft(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative shift %d", ErrInvalidArgument, n)
	}
	if n >= bs.length {
		bs.ClearAll()
		return nil
	}

	words := n / 32
	bits := uint(n % 32)
	last := len(bs.data) - 1

	// Tail bits are zero and only ever move further toward the MSB than
	// valid bits, so the tail stays zero without masking.
	for i := 0; i <= last; i++ {
		var word uint32
		if src := i + words; src <= last {
			word = bs.data[src] << bits
			if bits != 0 && src+1 <= last {
				word |= bs.data[src+1] >> (32 - bits)
			}
		}
		bs.data[i] = word
	}

	return nil
}

// ShiftRight shifts all bits n positions toward the LSB (higher indices).
// Bits shifted past bit Length-1 are lost; vacated bits become 0.
func (bs *BitStream) ShiftRight(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative shift %d", ErrInvalidArgument, n)
	}
	if n >= bs.length {
		bs.ClearAll()
		return nil
	}

	words := n / 32
	bits := uint(n % 32)

	for i := len(bs.data) - 1; i >= 0; i-- {
		var word uint32
		if src := i - words; src >= 0 {
			word = bs.data[src] >> bits
			if bits != 0 && src >= 1 {
				word |= bs.data[src-1] << (32 - bits)
			}
		}
		bs.data[i] = word
	}

	bs.maskTail()
	return nil
}

// Increment adds one to the stream read as a big-endian unsigned integer.
// It reports whether the addition overflowed, in which case the stream
// wraps around to all zeros.
func (bs *BitStream) Increment() bool {
	if bs.length == 0 {
		return true
	}

	// The LSB sits just above the unused tail of the last word.
	add := uint32(1) << uint(len(bs.data)*32-bs.length)
	for i := len(bs.data) - 1; i >= 0; i-- {
		old := bs.data[i]
		bs.data[i] = old + add
		if bs.data[i] > old {
			return false
		}
		add = 1
	}

	return true
}

// Equals reports whether both streams have the same length and bits.
func (bs *BitStream) Equals(other *BitStream) bool {
	if bs.length != other.length {
		return false
	}

	for i := range bs.data {
		if bs.data[i] != other.data[i] {
			return false
		}
	}

	return true
}

// Duplicate returns an independent copy of the stream.
func (bs *BitStream) Duplicate() *BitStream {
	result := &BitStream{
		data:   make([]uint32, len(bs.data)),
		length: bs.length,
	}
	copy(result.data, bs.data)
	return result
}

// FromBytes loads the stream from bytes, MSB-first within each byte.
// Missing bytes read as zero and surplus bytes are ignored.
func (bs *BitStream) FromBytes(data []byte) {
	bs.ClearAll()

	numBytes := (bs.length + 7) / 8
	if len(data) > numBytes {
		data = data[:numBytes]
	}

	for i, b := range data {
		shift := uint(3-i%4) * 8
		bs.data[i/4] |= uint32(b) << shift
	}

	bs.maskTail()
}

// ToBytes converts the stream to (Length+7)/8 bytes, MSB-first within each
// byte. Unused bits of the final byte are zero.
func (bs *BitStream) ToBytes() []byte {
	result := make([]byte, (bs.length+7)/8)

	for i := range result {
		shift := uint(3-i%4) * 8
		result[i] = byte(bs.data[i/4] >> shift)
	}

	return result
}

// String renders the stream as a string of '0' and '1', bit 0 first.
func (bs *BitStream) String() string {
	var sb strings.Builder
	sb.Grow(bs.length)
	for i := 0; i < bs.length; i++ {
		if bs.data[i/32]&(1<<(31-uint(i%32))) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// maskTail clears the unused bits of the last word.
func (bs *BitStream) maskTail() {
	if extra := len(bs.data)*32 - bs.length; extra > 0 {
		bs.data[len(bs.data)-1] &^= (uint32(1) << uint(extra)) - 1
	}
}
