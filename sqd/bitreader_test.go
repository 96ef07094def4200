package sqd

import (
	"errors"
	"testing"
)

func TestBitReaderReadBit(t *testing.T) {
	bs, _ := NewBitStream(8)
	bs.FromBytes([]byte{0xA5}) // 10100101
	br := NewBitReader(bs)

	expected := []bool{true, false, true, false, false, true, false, true}
	for i, want := range expected {
		bit, err := br.ReadBit()
		if err != nil {
			t.Fatalf("ReadBit %d error: %v", i, err)
		}
		if bit != want {
			t.Errorf("Bit %d: expected %v, got %v", i, want, bit)
		}
	}

	if br.Position() != 8 || br.Remaining() != 0 {
		t.Errorf("Expected position 8 and 0 remaining, got %d and %d", br.Position(), br.Remaining())
	}

	if _, err := br.ReadBit(); !errors.Is(err, ErrTruncatedStream) {
		t.Errorf("Expected ErrTruncatedStream at end, got %v", err)
	}
}

func TestBitReaderMatchesWriter(t *testing.T) {
	bs, _ := NewBitStream(37)
	bw := NewBitWriter(bs)
	for i := 0; i < 37; i++ {
		bw.WriteBit(i%3 == 0)
	}

	br := NewBitReader(bs)
	for i := 0; i < 37; i++ {
		bit, err := br.ReadBit()
		if err != nil {
			t.Fatalf("ReadBit %d error: %v", i, err)
		}
		if bit != (i%3 == 0) {
			t.Errorf("Bit %d mismatch", i)
		}
	}
}
