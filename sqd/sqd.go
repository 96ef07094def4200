package sqd

import (
	"errors"
	"fmt"
)

// Version is the library version.
const Version = "1.0.0"

// Format parameters. Encoder and decoder must agree on all of them; only
// AlphabetSize is written to the container, and only so that a mismatch can
// be detected.
const (
	// Magic is the 3-byte marker at the start of every container.
	Magic = "sqd"

	// AlphabetSize is the number of symbols: 65536 sample values plus EOF.
	AlphabetSize = 65537

	// EOFSymbol terminates the payload. It never appears in sample data.
	EOFSymbol = AlphabetSize - 1

	// MaxSampleValue is the largest sample value that can be encoded.
	MaxSampleValue = AlphabetSize - 2

	// MaxCodeLength is the longest code length accepted in a code table.
	MaxCodeLength = 255
)

var (
	// ErrInvalidArgument is returned for wrongly shaped grids or masks and
	// for sample values outside the alphabet.
	ErrInvalidArgument = errors.New("sqd: invalid argument")

	// ErrOutOfRange is returned when a bit index lies outside a BitStream.
	ErrOutOfRange = fmt.Errorf("%w: bit index out of range", ErrInvalidArgument)

	// ErrFormat is returned for a bad magic marker or a malformed header.
	ErrFormat = errors.New("sqd: invalid container format")

	// ErrTruncatedStream is returned when the payload ends before the
	// end-of-stream symbol has been decoded.
	ErrTruncatedStream = errors.New("sqd: truncated stream")

	// ErrCodeAssignment is returned when a set of code lengths does not
	// describe a valid prefix code.
	ErrCodeAssignment = errors.New("sqd: canonical code assignment failed")

	// ErrIO is returned when a container file cannot be read or written.
	ErrIO = errors.New("sqd: i/o failure")
)
