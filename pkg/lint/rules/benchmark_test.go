package rules_test

import (
	"context"
	"strings"
	"testing"

	"github.com/yaklabco/bracelint/pkg/config"
)

func benchmarkSource(functions int) []byte {
	var b strings.Builder
	for i := range functions {
		b.WriteString("/// Computes a value.\n")
		b.WriteString("func compute")
		b.WriteString(strings.Repeat("x", i%7))
		b.WriteString("(value: Int, scale: Int) -> Int {\n")
		b.WriteString("    let total = value * scale + 1\n")
		b.WriteString("    if total > 10 {\n        return total\n    }\n")
		b.WriteString("    return [value, scale].reduce(0, +)\n")
		b.WriteString("}\n\n")
	}
	return []byte(b.String())
}

func BenchmarkEngine_LintFile(b *testing.B) {
	engine := newEngine()
	cfg := config.NewConfig()
	content := benchmarkSource(200)
	ctx := context.Background()

	b.SetBytes(int64(len(content)))
	b.ResetTimer()
	for range b.N {
		if _, err := engine.LintFile(ctx, "bench.swift", content, cfg); err != nil {
			b.Fatal(err)
		}
	}
}
