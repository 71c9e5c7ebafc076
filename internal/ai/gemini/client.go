package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ashagraev/roast-my-cv/internal/ai"
	"github.com/ashagraev/roast-my-cv/internal/logger"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultModel     = "gemini-2.0-flash"
	defaultRetries   = 2
	defaultLogLength = 200

	// Sampling parameters for critique generation. Temperature comes from
	// the style.
	topP            = 0.95
	topK            = 40
	maxOutputTokens = 1024

	// Quota errors asking to wait longer than this are not worth retrying
	// interactively.
	maxQuotaDelay = 30 * time.Second
)

var sleep = time.Sleep

var retryAfterPattern = regexp.MustCompile(`retry after (\d+) seconds`)

// chatSession is the part of genai chats the generator needs.
type chatSession interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// chatCreator abstracts genai.Client.Chats so tests can substitute fakes.
type chatCreator interface {
	Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (chatSession, error)
}

type genaiChats struct {
	client *genai.Client
}

func (c *genaiChats) Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (chatSession, error) {
	return c.client.Chats.Create(ctx, model, config, history)
}

// Generator produces CV critiques through the Gemini API. It implements
// ai.Critic.
type Generator struct {
	chats      chatCreator
	model      string
	maxRetries int
	maxLogLen  int
	logger     *zap.Logger
}

// New creates a Generator configured for the Gemini API backend.
func New(ctx context.Context, apiKey, model string, maxRetries, maxLogLength int, log *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if maxRetries <= 0 {
		maxRetries = defaultRetries
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultLogLength
	}

	return &Generator{
		chats:      &genaiChats{client: client},
		model:      model,
		maxRetries: maxRetries,
		maxLogLen:  maxLogLength,
		logger:     logger.WithCommonFields(log, "gemini", model),
	}, nil
}

// Critique sends the CV to Gemini under the style's system instruction and
// returns the generated critique text.
func (g *Generator) Critique(ctx context.Context, style ai.Style, documentText string) (string, error) {
	if strings.TrimSpace(documentText) == "" {
		return "", errors.New("document text must not be empty")
	}

	prompt := fmt.Sprintf("Review this CV:\n\n%s", documentText)
	return g.generate(ctx, style, prompt)
}

func (g *Generator) generate(ctx context.Context, style ai.Style, message string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(style.Instruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](style.Temperature),
		TopP:              genai.Ptr[float32](topP),
		TopK:              genai.Ptr[float32](topK),
		MaxOutputTokens:   maxOutputTokens,
	}

	g.logger.Debug("gemini critique request",
		zap.String("style", style.Name),
		zap.Float64("temperature", float64(style.Temperature)),
		zap.Int("prompt_length", utf8.RuneCountInString(message)),
		zap.String("prompt_preview", logger.Truncate(message, g.maxLogLen)),
	)

	var lastErr error
	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		chat, err := g.chats.Create(ctx, g.model, config, nil)
		if err != nil {
			return "", fmt.Errorf("create chat: %w", err)
		}

		resp, err := chat.SendMessage(ctx, genai.Part{Text: message})
		if err == nil {
			output := responseText(resp)
			if output == "" {
				return "", errors.New("gemini api returned empty response")
			}

			g.logger.Debug("gemini critique response",
				zap.String("style", style.Name),
				zap.Int("response_length", utf8.RuneCountInString(output)),
				zap.String("response_preview", logger.Truncate(output, g.maxLogLen)),
			)

			return output, nil
		}

		lastErr = err
		delay, retryable := retryDelay(err)
		if !retryable || attempt == g.maxRetries {
			break
		}

		g.logger.Warn("gemini request failed, retrying",
			zap.String("style", style.Name),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		sleep(delay)
	}

	return "", fmt.Errorf("generate critique: %w", lastErr)
}

// retryDelay reports whether the error is worth retrying and how long to wait
// before the next attempt.
func retryDelay(err error) (time.Duration, bool) {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return 0, false
	}

	switch apiErr.Code {
	case http.StatusInternalServerError, http.StatusServiceUnavailable:
		return time.Second, true
	case http.StatusTooManyRequests:
		delay := quotaDelay(apiErr.Message)
		if delay > maxQuotaDelay {
			return 0, false
		}
		if delay == 0 {
			delay = 5 * time.Second
		}
		return delay, true
	default:
		return 0, false
	}
}

func quotaDelay(message string) time.Duration {
	match := retryAfterPattern.FindStringSubmatch(strings.ToLower(message))
	if match == nil {
		return 0
	}
	seconds, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String())
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}
