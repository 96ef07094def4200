package sqd

import (
	"bytes"
	"fmt"
	"io"
)

// Encode compresses the samples of grid selected by mask and writes a
// complete container to w. Encoding the same input twice produces the same
// bytes.
func Encode(w io.Writer, grid *Grid, mask *Mask, headerText string) error {
	samples, err := Extract(grid, mask)
	if err != nil {
		return err
	}

	table, payload, err := EncodeSamples(samples)
	if err != nil {
		return err
	}

	h := &Header{Text: headerText, Width: grid.Width, Height: grid.Height}
	if err := writeContainer(w, h, table.Lengths(), payload.ToBytes()); err != nil {
		return fmt.Errorf("%w: writing container: %w", ErrIO, err)
	}
	return nil
}

// EncodeBytes is like Encode but returns the container.
func EncodeBytes(grid *Grid, mask *Mask, headerText string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, grid, mask, headerText); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeSamples builds the canonical code for samples and returns it with
// the encoded payload: the code of every sample followed by the code of
// EOFSymbol. The payload is exactly as long as those codes.
func EncodeSamples(samples []int) (*CodeTable, *BitStream, error) {
	counts, err := Histogram(samples)
	if err != nil {
		return nil, nil, err
	}

	root, err := BuildTree(counts)
	if err != nil {
		return nil, nil, err
	}

	lengths, err := CodeLengths(root, AlphabetSize)
	if err != nil {
		return nil, nil, err
	}

	table, err := NewCodeTable(lengths)
	if err != nil {
		return nil, nil, err
	}

	// Total payload length in bits
	total := 0
	for v, c := range counts {
		total += int(c) * lengths[v]
	}

	payload, err := NewBitStream(total)
	if err != nil {
		return nil, nil, err
	}

	bw := NewBitWriter(payload)
	for _, s := range samples {
		e := table.entries[s]
		if err := bw.WriteCode(e.Code, e.Length); err != nil {
			return nil, nil, fmt.Errorf("%w: writing symbol %d: %w", ErrCodeAssignment, s, err)
		}
	}

	eof := table.entries[EOFSymbol]
	if err := bw.WriteCode(eof.Code, eof.Length); err != nil {
		return nil, nil, fmt.Errorf("%w: writing end of stream: %w", ErrCodeAssignment, err)
	}

	return table, payload, nil
}
