package critique

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/ashagraev/roast-my-cv/internal/ai"

	"go.uber.org/zap"
)

type stubCritic struct {
	mu       sync.Mutex
	failFor  map[string]error
	prompts  []string
	response func(style ai.Style) string
}

func (s *stubCritic) Critique(_ context.Context, style ai.Style, documentText string) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, documentText)
	s.mu.Unlock()

	if err, ok := s.failFor[style.Name]; ok {
		return "", err
	}
	if s.response != nil {
		return s.response(style), nil
	}
	return "critique from " + style.Name, nil
}

func TestGeneratePreservesStyleOrder(t *testing.T) {
	critic := &stubCritic{}
	styles := DefaultStyles()

	results := Generate(context.Background(), critic, styles, "Skills: Go", zap.NewNop())

	if len(results) != len(styles) {
		t.Fatalf("expected %d results, got %d", len(styles), len(results))
	}
	for i, style := range styles {
		if results[i].Style != style.Name {
			t.Fatalf("result %d is %q, want %q", i, results[i].Style, style.Name)
		}
		if results[i].Err != nil {
			t.Fatalf("unexpected error for %s: %v", style.Name, results[i].Err)
		}
		if !strings.Contains(results[i].Text, style.Name) {
			t.Fatalf("result %d text %q does not match its style", i, results[i].Text)
		}
	}
}

func TestGenerateRecordsPerStyleFailures(t *testing.T) {
	boom := errors.New("quota exceeded")
	critic := &stubCritic{failFor: map[string]error{StyleMedium: boom}}

	results := Generate(context.Background(), critic, DefaultStyles(), "Skills: Go", nil)

	if results[1].Err == nil || !errors.Is(results[1].Err, boom) {
		t.Fatalf("expected medium failure to be recorded, got %+v", results[1])
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Fatalf("other styles should succeed: %+v", results)
	}
}

func TestDefaultStylesShape(t *testing.T) {
	styles := DefaultStyles()
	if len(styles) != 3 {
		t.Fatalf("expected 3 styles, got %d", len(styles))
	}

	names := StyleNames(styles)
	want := []string{StyleGentle, StyleMedium, StyleBrutal}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("style %d = %q, want %q", i, names[i], want[i])
		}
	}

	if styles[0].Temperature >= styles[1].Temperature || styles[1].Temperature >= styles[2].Temperature {
		t.Fatalf("temperatures should increase with harshness: %+v", styles)
	}
	for _, style := range styles {
		if strings.TrimSpace(style.Instruction) == "" {
			t.Fatalf("style %s has no instruction", style.Name)
		}
	}
}
