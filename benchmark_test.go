package promptsplit

import (
	"context"
	"strings"
	"testing"
)

func benchmarkTexts(n int) []string {
	texts := make([]string, n)
	for i := range texts {
		texts[i] = strings.Repeat("word ", 5+i%7)
	}
	return texts
}

func BenchmarkSplit_Linear(b *testing.B) {
	texts := benchmarkTexts(500)
	counter := &CharFallbackCounter{}
	tpl := TemplateFunc(summarizationTemplate)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Split(ctx, texts, tpl, counter, 512)
	}
}

func BenchmarkSplit_Binary(b *testing.B) {
	texts := benchmarkTexts(500)
	counter := &CharFallbackCounter{}
	tpl := TemplateFunc(summarizationTemplate)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Split(ctx, texts, tpl, counter, 512, WithSearch(SearchBinary))
	}
}

func BenchmarkTextTemplate_Render(b *testing.B) {
	tpl, err := NewTextTemplate(`Summarize the following text.

Text: """{{ join .Texts " " }}"""`)
	if err != nil {
		b.Fatal(err)
	}
	texts := benchmarkTexts(20)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = tpl.Render(texts)
	}
}
