package chunker

import (
	"strings"
	"testing"
)

func BenchmarkSplit(b *testing.B) {
	text := strings.Repeat("lorem ipsum dolor sit amet ", 40000) // ~1MB

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := Split(text, DefaultChunkSize); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLocate(b *testing.B) {
	chunks, err := Split(strings.Repeat("a", 1000000), DefaultChunkSize)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		Locate(chunks, (i*7919)%1000000)
	}
}
