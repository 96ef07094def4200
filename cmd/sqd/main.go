// Package main provides the sqd command line interface.
//
// sqd stores the field of view of 16-bit all-sky images in the PASKIL
// ".sqd" canonical Huffman container. Raw images are big-endian uint16
// samples in row-major order.
package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/paskil/sqd/sqd"
)

func printVersion() {
	fmt.Printf("sqd %s (Go)\n", sqd.Version)
}

func printHelp(progName string) {
	fmt.Printf("PASKIL .sqd Canonical Huffman Image Container (v%s)\n", sqd.Version)
	fmt.Println("=========================================================")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s <input.raw> <width> <height> <cx> <cy> <radius> [header]\n", progName)
	fmt.Printf("  %s -d <input.sqd> [<cx> <cy> <radius>]\n", progName)
	fmt.Printf("  %s -i <input.sqd>\n", progName)
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -d             Decompress (default is compress)")
	fmt.Println("  -i             Show header text and image size")
	fmt.Println("  -h, --help     Show this help message")
	fmt.Println("  -v, --version  Show version information")
	fmt.Println()
	fmt.Println("Compress arguments:")
	fmt.Println("  input.raw      Big-endian uint16 samples, row-major")
	fmt.Println("  width, height  Image size in pixels")
	fmt.Println("  cx, cy         Centre of the field of view in pixels")
	fmt.Println("  radius         Radius of the field of view in pixels")
	fmt.Println("  header         Free-form header text (default empty)")
	fmt.Println()
	fmt.Println("Decompress arguments:")
	fmt.Println("  input.sqd      Compressed input file")
	fmt.Println("  cx, cy, radius Field of view used when compressing; if given the")
	fmt.Println("                 full image is written with zeros outside the view,")
	fmt.Println("                 otherwise only the in-view samples are written")
	fmt.Println()
	fmt.Println("Output:")
	fmt.Println("  Compress:   <input>.sqd")
	fmt.Println("  Decompress: <base>.desqd (or <input>.desqd if input does not end in .sqd)")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Printf("  %s sky.raw 1024 1024 511.5 511.5 480 \"site=LYR\"   # compress\n", progName)
	fmt.Printf("  %s -d sky.raw.sqd 511.5 511.5 480               # decompress\n", progName)
	fmt.Println()
}

func makeDecompressFilename(input string) string {
	if strings.HasSuffix(input, ".sqd") {
		return strings.TrimSuffix(input, ".sqd") + ".desqd"
	}
	return input + ".desqd"
}

func readRaw(path string, width, height int) (*sqd.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) != 2*width*height {
		return nil, fmt.Errorf("input size (%d) does not match %dx%d 16-bit image (%d bytes)",
			len(data), width, height, 2*width*height)
	}

	grid, err := sqd.NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	for i := range grid.Pix {
		grid.Pix[i] = int(binary.BigEndian.Uint16(data[2*i:]))
	}
	return grid, nil
}

func writeRaw(path string, samples []int) error {
	data := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.BigEndian.PutUint16(data[2*i:], uint16(s))
	}
	return os.WriteFile(path, data, 0644)
}

func doCompress(inputPath string, width, height int, cx, cy, radius float64, header string) int {
	grid, err := readRaw(inputPath, width, height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Cannot read input file: %v\n", err)
		return 1
	}

	mask, err := sqd.CircularMask(width, height, cx, cy, radius)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	outputPath := inputPath + ".sqd"
	if err := sqd.Compress(grid, mask, header, outputPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Compression failed: %v\n", err)
		return 1
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Cannot stat output file: %s\n", outputPath)
		return 1
	}

	// Print summary
	inputSize := 2 * width * height
	ratio := float64(inputSize) / float64(info.Size())
	fmt.Printf("Input:       %s (%d bytes, %dx%d)\n", inputPath, inputSize, width, height)
	fmt.Printf("Output:      %s (%d bytes)\n", outputPath, info.Size())
	fmt.Printf("In view:     %d of %d pixels\n", mask.Count(), width*height)
	fmt.Printf("Ratio:       %.2fx\n", ratio)

	return 0
}

func doDecompress(inputPath string, circle []float64) int {
	samples, err := sqd.Decompress(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Decompression failed: %v\n", err)
		return 1
	}

	width, height, err := sqd.ReadImageSize(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	output := samples
	if circle != nil {
		mask, err := sqd.CircularMask(width, height, circle[0], circle[1], circle[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		grid, err := sqd.Expand(samples, mask, 0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Field of view does not match the file: %v\n", err)
			return 1
		}
		output = grid.Pix
	}

	outputPath := makeDecompressFilename(inputPath)
	if err := writeRaw(outputPath, output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Cannot write output file: %s\n", outputPath)
		return 1
	}

	// Print summary
	fmt.Printf("Input:       %s\n", inputPath)
	fmt.Printf("Output:      %s (%d bytes)\n", outputPath, 2*len(output))
	fmt.Printf("Image:       %dx%d, %d samples in view\n", width, height, len(samples))

	return 0
}

func doInfo(inputPath string) int {
	if !sqd.IsContainer(inputPath) {
		fmt.Fprintf(os.Stderr, "Error: Not an sqd file: %s\n", inputPath)
		return 1
	}

	header, err := sqd.ReadHeaderText(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	width, height, err := sqd.ReadImageSize(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Printf("File:        %s\n", inputPath)
	fmt.Printf("Size:        %dx%d\n", width, height)
	fmt.Printf("Header:      %s\n", header)

	return 0
}

func parseCircle(args []string) ([]float64, error) {
	circle := make([]float64, 3)
	for i, name := range []string{"cx", "cy", "radius"} {
		v, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number", name)
		}
		circle[i] = v
	}
	if circle[2] < 0 {
		return nil, fmt.Errorf("radius must not be negative")
	}
	return circle, nil
}

func main() {
	args := os.Args
	progName := args[0]

	// Check for help flag
	if len(args) < 2 || args[1] == "-h" || args[1] == "--help" {
		printHelp(progName)
		if len(args) < 2 {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Check for version flag
	if args[1] == "-v" || args[1] == "--version" {
		printVersion()
		os.Exit(0)
	}

	switch args[1] {
	case "-i":
		if len(args) != 3 {
			fmt.Fprintf(os.Stderr, "Usage: %s -i <input.sqd>\n", progName)
			os.Exit(1)
		}
		os.Exit(doInfo(args[2]))

	case "-d":
		// Decompress mode: -d <input.sqd> [<cx> <cy> <radius>]
		if len(args) != 3 && len(args) != 6 {
			fmt.Fprintln(os.Stderr, "Error: Decompress requires 1 or 4 arguments after -d")
			fmt.Fprintf(os.Stderr, "Usage: %s -d <input.sqd> [<cx> <cy> <radius>]\n", progName)
			os.Exit(1)
		}

		var circle []float64
		if len(args) == 6 {
			var err error
			circle, err = parseCircle(args[3:6])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}
		os.Exit(doDecompress(args[2], circle))

	default:
		// Compress mode: <input.raw> <width> <height> <cx> <cy> <radius> [header]
		if len(args) != 7 && len(args) != 8 {
			fmt.Fprintln(os.Stderr, "Error: Compress requires 6 or 7 arguments")
			fmt.Fprintf(os.Stderr, "Usage: %s <input.raw> <width> <height> <cx> <cy> <radius> [header]\n", progName)
			os.Exit(1)
		}

		width, err := strconv.Atoi(args[2])
		if err != nil || width <= 0 {
			fmt.Fprintln(os.Stderr, "Error: width must be positive")
			os.Exit(1)
		}

		height, err := strconv.Atoi(args[3])
		if err != nil || height <= 0 {
			fmt.Fprintln(os.Stderr, "Error: height must be positive")
			os.Exit(1)
		}

		circle, err := parseCircle(args[4:7])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		header := ""
		if len(args) == 8 {
			header = args[7]
		}

		os.Exit(doCompress(args[1], width, height, circle[0], circle[1], circle[2], header))
	}
}
