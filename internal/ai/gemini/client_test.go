package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/ashagraev/roast-my-cv/internal/ai"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeChatCreator struct {
	mu    sync.Mutex
	calls []chatCallRecord
	queue []fakeChatResponse
}

type chatCallRecord struct {
	model  string
	config *genai.GenerateContentConfig
	chat   *fakeChat
}

type fakeChatResponse struct {
	resp *genai.GenerateContentResponse
	err  error
}

type fakeChat struct {
	mu       sync.Mutex
	response fakeChatResponse
	messages []string
}

func (f *fakeChat) SendMessage(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, part := range parts {
		f.messages = append(f.messages, part.Text)
	}
	return f.response.resp, f.response.err
}

func (f *fakeChatCreator) enqueue(resp *genai.GenerateContentResponse, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, fakeChatResponse{resp: resp, err: err})
}

func (f *fakeChatCreator) Create(_ context.Context, model string, config *genai.GenerateContentConfig, _ []*genai.Content) (chatSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queue) == 0 {
		return nil, errors.New("unexpected call")
	}
	res := f.queue[0]
	f.queue = f.queue[1:]
	chat := &fakeChat{response: res}
	f.calls = append(f.calls, chatCallRecord{model: model, config: config, chat: chat})
	return chat, nil
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func newTestGenerator(chats *fakeChatCreator, retries int) *Generator {
	return &Generator{
		chats:      chats,
		model:      "gemini-2.0-flash",
		maxRetries: retries,
		maxLogLen:  defaultLogLength,
		logger:     zap.NewNop(),
	}
}

var gentleStyle = ai.Style{
	Name:        "gentle",
	Instruction: "You are a kind career advisor providing constructive CV feedback.",
	Temperature: 0.4,
}

func TestCritiqueSendsStyleConfig(t *testing.T) {
	chats := &fakeChatCreator{}
	chats.enqueue(textResponse("Solid CV overall."), nil)

	g := newTestGenerator(chats, 2)

	output, err := g.Critique(context.Background(), gentleStyle, "Skills: Go")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if output != "Solid CV overall." {
		t.Fatalf("unexpected output: %q", output)
	}

	if len(chats.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(chats.calls))
	}
	call := chats.calls[0]
	if call.config == nil || call.config.SystemInstruction == nil {
		t.Fatal("expected system instruction to be set")
	}
	if got := call.config.SystemInstruction.Parts[0].Text; got != gentleStyle.Instruction {
		t.Fatalf("unexpected system instruction: %q", got)
	}
	if call.config.Temperature == nil || *call.config.Temperature != 0.4 {
		t.Fatalf("unexpected temperature: %v", call.config.Temperature)
	}
	if len(call.chat.messages) != 1 {
		t.Fatalf("unexpected chat messages: %+v", call.chat.messages)
	}
}

func TestCritiqueRetriesOnTemporaryError(t *testing.T) {
	originalSleep := sleep
	sleep = func(time.Duration) {}
	defer func() { sleep = originalSleep }()

	chats := &fakeChatCreator{}
	chats.enqueue(nil, genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"})
	chats.enqueue(textResponse("retry ok"), nil)

	g := newTestGenerator(chats, 2)

	output, err := g.Critique(context.Background(), gentleStyle, "Skills: Go")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if output != "retry ok" {
		t.Fatalf("unexpected output: %q", output)
	}
	if len(chats.calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(chats.calls))
	}
}

func TestCritiqueStopsAfterRetriesExhausted(t *testing.T) {
	originalSleep := sleep
	sleep = func(time.Duration) {}
	defer func() { sleep = originalSleep }()

	chats := &fakeChatCreator{}
	tempErr := genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"}
	chats.enqueue(nil, tempErr)
	chats.enqueue(nil, tempErr)

	g := newTestGenerator(chats, 2)

	_, err := g.Critique(context.Background(), gentleStyle, "Skills: Go")
	if err == nil {
		t.Fatal("expected error after retries exhausted")
	}
	if len(chats.calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(chats.calls))
	}
}

func TestCritiqueDoesNotRetryOnLongQuotaDelay(t *testing.T) {
	chats := &fakeChatCreator{}
	chats.enqueue(nil, genai.APIError{
		Code:    http.StatusTooManyRequests,
		Status:  "RESOURCE_EXHAUSTED",
		Message: "quota exhausted, retry after 60 seconds",
	})

	g := newTestGenerator(chats, 3)

	_, err := g.Critique(context.Background(), gentleStyle, "Skills: Go")
	if err == nil {
		t.Fatal("expected error when quota delay too long")
	}
	if len(chats.calls) != 1 {
		t.Fatalf("expected single call, got %d", len(chats.calls))
	}
}

func TestCritiqueDoesNotRetryOnBadRequest(t *testing.T) {
	chats := &fakeChatCreator{}
	chats.enqueue(nil, genai.APIError{Code: http.StatusBadRequest, Status: "INVALID_ARGUMENT"})

	g := newTestGenerator(chats, 3)

	_, err := g.Critique(context.Background(), gentleStyle, "Skills: Go")
	if err == nil {
		t.Fatal("expected error")
	}
	if len(chats.calls) != 1 {
		t.Fatalf("expected single call, got %d", len(chats.calls))
	}
}

func TestCritiqueRejectsEmptyDocument(t *testing.T) {
	g := newTestGenerator(&fakeChatCreator{}, 1)
	if _, err := g.Critique(context.Background(), gentleStyle, "   "); err == nil {
		t.Fatal("expected error for empty document")
	}
}

func TestCritiqueEmptyResponse(t *testing.T) {
	chats := &fakeChatCreator{}
	chats.enqueue(&genai.GenerateContentResponse{}, nil)

	g := newTestGenerator(chats, 1)

	_, err := g.Critique(context.Background(), gentleStyle, "Skills: Go")
	if err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestQuotaDelayParsing(t *testing.T) {
	if d := quotaDelay("please retry after 12 seconds"); d != 12*time.Second {
		t.Fatalf("unexpected delay: %v", d)
	}
	if d := quotaDelay("no hint here"); d != 0 {
		t.Fatalf("expected zero delay, got %v", d)
	}
}
