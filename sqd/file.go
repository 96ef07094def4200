package sqd

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// IsContainer reports whether the file at path starts with the container
// magic marker. Unreadable files are not containers.
func IsContainer(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	magic := make([]byte, len(Magic))
	if _, err := io.ReadFull(f, magic); err != nil {
		return false
	}
	return string(magic) == Magic
}

// ReadHeaderText returns the free-form header text stored in the container
// at path.
func ReadHeaderText(path string) (string, error) {
	h, err := readHeaderFile(path)
	if err != nil {
		return "", err
	}
	return h.Text, nil
}

// ReadImageSize returns the width and height of the image stored in the
// container at path.
func ReadImageSize(path string) (int, int, error) {
	h, err := readHeaderFile(path)
	if err != nil {
		return 0, 0, err
	}
	return h.Width, h.Height, nil
}

// Compress encodes the samples of grid selected by mask and stores them in
// a container at destPath. The container is written to a temporary file and
// renamed into place, so on failure destPath is left untouched.
func Compress(grid *Grid, mask *Mask, headerText, destPath string) error {
	data, err := EncodeBytes(grid, mask, headerText)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(destPath, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// Decompress returns the masked sample sequence stored in the container at
// path.
func Decompress(path string) ([]int, error) {
	f, err := openContainer(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	_, samples, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}

func readHeaderFile(path string) (*Header, error) {
	f, err := openContainer(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h, err := readHeader(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return h, nil
}

func openContainer(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return f, nil
}
