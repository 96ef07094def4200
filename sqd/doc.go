// Package sqd implements the PASKIL ".sqd" container: a lossless canonical
// Huffman compressor for 16-bit all-sky images in which only the pixels
// inside a field-of-view mask are stored.
//
// The masked pixels are taken in row-major order, a Huffman code over the
// full 16-bit alphabet (plus an end-of-stream symbol) is built from their
// histogram, and only the code lengths are written to the container. The
// decoder rebuilds the identical canonical code from those lengths.
//
// Basic usage:
//
//	grid, _ := sqd.GridFromRows(rows)
//	mask := sqd.CircularMask(grid.Width, grid.Height, cx, cy, radius)
//
//	// Compress to a file
//	if err := sqd.Compress(grid, mask, "site=LYR", "image.sqd"); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Decompress the masked samples and put them back into a grid
//	samples, err := sqd.Decompress("image.sqd")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	full, err := sqd.Expand(samples, mask, 0)
//
// The mask is not stored in the container. Callers that need the full grid
// back must keep, or be able to recompute, the mask used for compression.
package sqd
