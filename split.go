package promptsplit

import (
	"context"
	"fmt"
	"log/slog"
)

// Split packs texts into prompts whose count is at most maxCount.
// Every text is first rendered alone; if one exceeds maxCount, Split returns a *TextTooLongError
// for the first such index and no prompts. Otherwise texts are grouped greedily left to right:
// a group grows until adding the next text would exceed maxCount.
// Order is preserved and every text lands in exactly one prompt. Empty input returns no prompts
// and makes no template or counter calls. Template and counter errors are returned unchanged.
func Split(ctx context.Context, texts []string, tpl Template, counter Counter, maxCount int, opts ...Option) ([]string, error) {
	s, err := NewSplitter(tpl, counter, maxCount, opts...)
	if err != nil {
		return nil, err
	}
	return s.Split(ctx, texts)
}

// SplitGroups is Split, but returns the index range and count of each prompt as well.
func SplitGroups(ctx context.Context, texts []string, tpl Template, counter Counter, maxCount int, opts ...Option) ([]Group, error) {
	s, err := NewSplitter(tpl, counter, maxCount, opts...)
	if err != nil {
		return nil, err
	}
	return s.SplitGroups(ctx, texts)
}

// checkTextLength renders each text alone and fails on the first one over the limit.
// After it succeeds every group can hold at least its first text, so pack always advances.
func (s *Splitter) checkTextLength(ctx context.Context, texts []string) error {
	for i := range texts {
		_, n, err := s.measure(ctx, texts[i:i+1:i+1])
		if err != nil {
			return err
		}
		if n > s.maxCount {
			return &TextTooLongError{Index: i, Count: n, MaxCount: s.maxCount}
		}
	}
	return nil
}

// pack groups validated texts. Each emitted Text is the render measured for that boundary.
func (s *Splitter) pack(ctx context.Context, texts []string) ([]Group, error) {
	boundary := s.linearBoundary
	if s.search == SearchBinary {
		boundary = s.binaryBoundary
	}
	groups := make([]Group, 0)
	for start := 0; start < len(texts); {
		g, err := boundary(ctx, texts, start)
		if err != nil {
			return nil, err
		}
		s.logger.DebugContext(ctx, "promptsplit: group closed",
			slog.Int("start", g.Start), slog.Int("end", g.End),
			slog.Int("count", g.Count), slog.Int("max_count", s.maxCount))
		groups = append(groups, g)
		start = g.End
	}
	return groups, nil
}

// linearBoundary extends [start, end) one text at a time and keeps the last range that fit.
func (s *Splitter) linearBoundary(ctx context.Context, texts []string, start int) (Group, error) {
	best := Group{Start: start, End: start}
	for end := start + 1; end <= len(texts); end++ {
		text, n, err := s.measure(ctx, texts[start:end:end])
		if err != nil {
			return Group{}, err
		}
		if n > s.maxCount {
			if end == start+1 {
				// Validated alone but overflowed now: the template or counter is not deterministic.
				return Group{}, &TextTooLongError{Index: start, Count: n, MaxCount: s.maxCount}
			}
			break
		}
		best = Group{Start: start, End: end, Text: text, Count: n}
	}
	return best, nil
}

// binaryBoundary finds the largest end in (start, len(texts)] whose range fits.
// Invariant: texts[start:lo] fits (or lo == start), texts[start:hi+1] does not (or hi == len(texts)).
func (s *Splitter) binaryBoundary(ctx context.Context, texts []string, start int) (Group, error) {
	best := Group{Start: start, End: start}
	lo, hi := start, len(texts)
	soloCount := 0
	for lo < hi {
		mid := lo + (hi-lo+1)/2
		text, n, err := s.measure(ctx, texts[start:mid:mid])
		if err != nil {
			return Group{}, err
		}
		if n <= s.maxCount {
			lo = mid
			best = Group{Start: start, End: mid, Text: text, Count: n}
		} else {
			hi = mid - 1
			if mid == start+1 {
				soloCount = n
			}
		}
	}
	if best.End == start {
		return Group{}, &TextTooLongError{Index: start, Count: soloCount, MaxCount: s.maxCount}
	}
	return best, nil
}

// measure renders texts and counts the result. ctx is checked before the calls.
func (s *Splitter) measure(ctx context.Context, texts []string) (string, int, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}
	text, err := s.tpl.Render(texts)
	if err != nil {
		return "", 0, err
	}
	n, err := s.counter.Count(ctx, text)
	if err != nil {
		return "", 0, err
	}
	if n < 0 {
		return "", 0, fmt.Errorf("promptsplit: counter returned negative count %d", n)
	}
	return text, n, nil
}
