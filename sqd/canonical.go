package sqd

import (
	"fmt"
	"sort"
)

// CodeEntry is one row of a canonical code table.
type CodeEntry struct {
	Value  int
	Length int
	// Code holds the code left-justified in a stream as long as the longest
	// code of its table. It is nil for symbols with Length 0.
	Code *BitStream
}

// sortByLength orders entries by code length, then by value.
func sortByLength(entries []CodeEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Length != entries[j].Length {
			return entries[i].Length < entries[j].Length
		}
		return entries[i].Value < entries[j].Value
	})
}

// AssignCanonicalCodes assigns canonical Huffman codes to entries, which
// must be sorted by length then value. The result depends only on the
// (value, length) pairs.
//
// Entries are visited from the longest code to the shortest. A running
// pattern starts at zero; when the length drops, the pattern is shifted
// right by the difference, each entry receives a left-justified copy, and
// the pattern is then incremented. Entries of length 0 receive no code.
//
// ErrCodeAssignment is returned when the lengths do not form a prefix code
// or the entries are not sorted.
func AssignCanonicalCodes(entries []CodeEntry) error {
	n := len(entries)
	if n == 0 || entries[n-1].Length == 0 {
		return nil
	}

	maxLength := entries[n-1].Length
	if maxLength > MaxCodeLength {
		return fmt.Errorf("%w: code length %d exceeds %d", ErrCodeAssignment, maxLength, MaxCodeLength)
	}

	pattern, err := NewBitStream(maxLength)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCodeAssignment, err)
	}
	length := maxLength
	exhausted := false

	for i := n - 1; i >= 0; i-- {
		e := &entries[i]
		e.Code = nil

		if e.Length == 0 {
			continue
		}
		if e.Length < 0 || e.Length > length {
			return fmt.Errorf("%w: entry %d (value %d, length %d) out of order", ErrCodeAssignment, i, e.Value, e.Length)
		}
		if exhausted {
			return fmt.Errorf("%w: no codes left for value %d", ErrCodeAssignment, e.Value)
		}

		if e.Length < length {
			shift := length - e.Length
			// A one shifted out means a shorter code would prefix a longer one.
			for b := maxLength - shift; b < maxLength; b++ {
				if set, _ := pattern.TestBit(b); set {
					return fmt.Errorf("%w: length %d codes collide with longer codes", ErrCodeAssignment, e.Length)
				}
			}
			if err := pattern.ShiftRight(shift); err != nil {
				return fmt.Errorf("%w: %w", ErrCodeAssignment, err)
			}
			length = e.Length
		}

		// The pattern must still fit in length bits.
		for b := 0; b < maxLength-length; b++ {
			if set, _ := pattern.TestBit(b); set {
				return fmt.Errorf("%w: too many codes of length %d or longer", ErrCodeAssignment, length)
			}
		}

		code := pattern.Duplicate()
		if err := code.ShiftLeft(maxLength - length); err != nil {
			return fmt.Errorf("%w: %w", ErrCodeAssignment, err)
		}
		e.Code = code

		exhausted = pattern.Increment()
	}

	return nil
}

// CodeTable is a canonical Huffman code over a fixed alphabet, held both
// by symbol value (for encoding) and by code length (for decoding).
type CodeTable struct {
	entries    []CodeEntry // indexed by symbol value
	byLength   []int       // symbol values sorted by length, then value
	firstIndex []int       // first byLength position of each length, -1 if none
	maxLength  int
}

// NewCodeTable builds the canonical code for the given code lengths, one per
// symbol in value order. Equal lengths always give equal tables, so the
// decoder can rebuild the encoder's code from the stored lengths alone.
func NewCodeTable(lengths []int) (*CodeTable, error) {
	sorted := make([]CodeEntry, len(lengths))
	for v, l := range lengths {
		if l < 0 || l > MaxCodeLength {
			return nil, fmt.Errorf("%w: symbol %d has code length %d", ErrCodeAssignment, v, l)
		}
		sorted[v] = CodeEntry{Value: v, Length: l}
	}
	sortByLength(sorted)

	if err := AssignCanonicalCodes(sorted); err != nil {
		return nil, err
	}

	ct := &CodeTable{
		entries:  make([]CodeEntry, len(lengths)),
		byLength: make([]int, len(sorted)),
	}
	if len(sorted) > 0 {
		ct.maxLength = sorted[len(sorted)-1].Length
	}

	ct.firstIndex = make([]int, ct.maxLength+1)
	for i := range ct.firstIndex {
		ct.firstIndex[i] = -1
	}

	for i, e := range sorted {
		ct.entries[e.Value] = e
		ct.byLength[i] = e.Value
		if e.Length > 0 && ct.firstIndex[e.Length] < 0 {
			ct.firstIndex[e.Length] = i
		}
	}

	return ct, nil
}

// Size returns the number of symbols in the alphabet.
func (ct *CodeTable) Size() int {
	return len(ct.entries)
}

// MaxLength returns the length of the longest code.
func (ct *CodeTable) MaxLength() int {
	return ct.maxLength
}

// Entry returns the table entry for symbol value.
func (ct *CodeTable) Entry(value int) (CodeEntry, error) {
	if value < 0 || value >= len(ct.entries) {
		return CodeEntry{}, fmt.Errorf("%w: symbol %d outside alphabet of %d", ErrInvalidArgument, value, len(ct.entries))
	}
	return ct.entries[value], nil
}

// Lengths returns the code length of every symbol in value order.
func (ct *CodeTable) Lengths() []int {
	lengths := make([]int, len(ct.entries))
	for v, e := range ct.entries {
		lengths[v] = e.Length
	}
	return lengths
}

// FirstIndexAtLength returns the position in length order of the first
// code of the given length, or -1 if there is none.
func (ct *CodeTable) FirstIndexAtLength(length int) int {
	if length <= 0 || length > ct.maxLength {
		return -1
	}
	return ct.firstIndex[length]
}

// EntryAt returns the i-th entry in length order.
func (ct *CodeTable) EntryAt(i int) CodeEntry {
	return ct.entries[ct.byLength[i]]
}

// match looks for a code of exactly length bits equal to code, whose
// remaining bits must be zero. It scans the codes of that length in order.
func (ct *CodeTable) match(code *BitStream, length int) (int, bool) {
	first := ct.FirstIndexAtLength(length)
	if first < 0 {
		return 0, false
	}

	for i := first; i < len(ct.byLength); i++ {
		e := &ct.entries[ct.byLength[i]]
		if e.Length != length {
			break
		}
		if e.Code.Equals(code) {
			return e.Value, true
		}
	}

	return 0, false
}
