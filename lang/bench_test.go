package lang

import (
	"strings"
	"testing"
)

func BenchmarkParseExpression(b *testing.B) {
	input := "a.x ** 2 + b[i] * (c - 1) / 3 <= SELF\\point.y (* bound *)"

	b.ReportAllocs()

	for b.Loop() {
		if _, err := ParseExpression(input); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseExpression_Deep(b *testing.B) {
	input := strings.Repeat("(", 100) + "1" + strings.Repeat(" + 1)", 100)

	b.ReportAllocs()

	for b.Loop() {
		if _, err := ParseExpression(input); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParse(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(geometrySchema)))

	for b.Loop() {
		if _, err := Parse(geometrySchema); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFormat(b *testing.B) {
	tree, err := Parse(geometrySchema)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()

	for b.Loop() {
		var sb strings.Builder
		if err := tree.Format(&sb, 2); err != nil {
			b.Fatal(err)
		}
	}
}
