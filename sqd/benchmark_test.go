package sqd

import (
	"encoding/binary"
	"math"
	"math/rand"
	"testing"

	"github.com/klauspost/compress/zstd"
)

// skyImage returns a smooth radial brightness profile with sensor noise and
// the circular mask of a 180 degree lens.
func skyImage(size int) (*Grid, *Mask) {
	g, _ := NewGrid(size, size)
	rng := rand.New(rand.NewSource(1))
	c := float64(size-1) / 2

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r := math.Hypot(float64(x)-c, float64(y)-c) / c
			v := 2000 + 6000*math.Exp(-3*r*r) + rng.NormFloat64()*40
			g.Set(x, y, int(math.Max(0, v)))
		}
	}

	m, _ := CircularMask(size, size, c, c, c)
	return g, m
}

func rawSamples(samples []int) []byte {
	raw := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.BigEndian.PutUint16(raw[2*i:], uint16(s))
	}
	return raw
}

func BenchmarkEncode(b *testing.B) {
	g, m := skyImage(256)
	samples, _ := Extract(g, m)

	b.ResetTimer()
	b.SetBytes(int64(2 * len(samples)))

	var n int
	for i := 0; i < b.N; i++ {
		data, err := EncodeBytes(g, m, "bench")
		if err != nil {
			b.Fatal(err)
		}
		n = len(data)
	}
	b.ReportMetric(float64(2*len(samples))/float64(n), "ratio")
}

func BenchmarkDecode(b *testing.B) {
	g, m := skyImage(256)
	samples, _ := Extract(g, m)
	data, err := EncodeBytes(g, m, "bench")
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.SetBytes(int64(2 * len(samples)))

	for i := 0; i < b.N; i++ {
		_, _, err := DecodeBytes(data)
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkZstdReference compresses the same masked samples, as big-endian
// 16-bit words, with zstd for comparison with BenchmarkEncode.
func BenchmarkZstdReference(b *testing.B) {
	g, m := skyImage(256)
	samples, _ := Extract(g, m)
	raw := rawSamples(samples)

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		b.Fatal(err)
	}
	defer enc.Close()

	b.ResetTimer()
	b.SetBytes(int64(len(raw)))

	var out []byte
	for i := 0; i < b.N; i++ {
		out = enc.EncodeAll(raw, out[:0])
	}
	b.ReportMetric(float64(len(raw))/float64(len(out)), "ratio")
}
