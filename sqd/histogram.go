package sqd

import "fmt"

// Histogram counts the occurrences of each symbol in samples. The result
// has AlphabetSize entries and always counts exactly one EOFSymbol.
func Histogram(samples []int) ([]uint64, error) {
	counts := make([]uint64, AlphabetSize)

	for i, s := range samples {
		if s < 0 || s > MaxSampleValue {
			return nil, fmt.Errorf("%w: sample %d at index %d outside [0, %d]", ErrInvalidArgument, s, i, MaxSampleValue)
		}
		counts[s]++
	}

	counts[EOFSymbol] = 1
	return counts, nil
}
