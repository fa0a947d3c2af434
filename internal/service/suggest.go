// internal/service/suggest.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	openai "github.com/sashabaranov/go-openai"

	"github.com/quizdeck/backend/internal/domain/pack"
	"github.com/quizdeck/backend/internal/id"
	"github.com/quizdeck/backend/internal/worker"
)

// ErrDisabled is returned when no API key was configured.
var ErrDisabled = errors.New("question suggestions are disabled: no API key configured")

// Draft is a generated question proposal; the author still reviews and
// saves it explicitly, nothing is written to the pack automatically.
type Draft struct {
	Text    string   `json:"text"`
	Answer  string   `json:"answer"`
	Options []string `json:"options,omitempty"`
}

const (
	batchSize    = 5
	maxSuggested = 20
)

type suggestOutput struct {
	drafts []Draft
	err    error
}

// SuggestService drafts quiz questions for a round topic via an LLM.
// Batches fan out through the worker pool; a collector goroutine routes
// pool results back to the waiting request by job id.
type SuggestService struct {
	client *openai.Client
	logger *slog.Logger
	pool   *worker.Pool[suggestOutput]

	mu      sync.Mutex
	pending map[string]chan suggestOutput // request id → result channel
}

func NewSuggestService(apiKey string, logger *slog.Logger) *SuggestService {
	s := &SuggestService{
		logger:  logger,
		pending: make(map[string]chan suggestOutput),
	}
	if apiKey == "" {
		return s
	}
	s.client = openai.NewClient(apiKey)
	s.pool = worker.NewPool[suggestOutput](2, 8)
	go s.collect()
	return s
}

func (s *SuggestService) Enabled() bool {
	return s.client != nil
}

// SuggestQuestions generates up to count drafts about topic. Batches run
// concurrently; partial failures fail the whole request.
func (s *SuggestService) SuggestQuestions(ctx context.Context, topic string, qType pack.QuestionType, count int) ([]Draft, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}
	if count <= 0 {
		count = batchSize
	}
	if count > maxSuggested {
		count = maxSuggested
	}

	batches := 0
	reqID := id.GenerateID()
	ch := make(chan suggestOutput, (count+batchSize-1)/batchSize)

	s.mu.Lock()
	s.pending[reqID] = ch
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.pending, reqID)
		s.mu.Unlock()
	}()

	for remaining := count; remaining > 0; remaining -= batchSize {
		n := remaining
		if n > batchSize {
			n = batchSize
		}
		batches++
		s.pool.Submit(reqID, func() suggestOutput {
			drafts, err := s.generateBatch(ctx, topic, qType, n)
			return suggestOutput{drafts: drafts, err: err}
		})
	}

	var drafts []Draft
	for i := 0; i < batches; i++ {
		select {
		case out := <-ch:
			if out.err != nil {
				return nil, out.err
			}
			drafts = append(drafts, out.drafts...)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return drafts, nil
}

// collect routes pool results to the request that submitted them.
// Results for abandoned requests are dropped.
func (s *SuggestService) collect() {
	for r := range s.pool.Results() {
		s.mu.Lock()
		ch, ok := s.pending[r.JobID]
		s.mu.Unlock()
		if ok {
			ch <- r.Output
		}
	}
}

func (s *SuggestService) generateBatch(ctx context.Context, topic string, qType pack.QuestionType, n int) ([]Draft, error) {
	s.logger.Info("generating question drafts", "topic", topic, "type", qType, "count", n)

	prompt := fmt.Sprintf("Write %d pub-quiz questions about %q with short factual answers.", n, topic)
	if qType == pack.TypeMultipleChoice {
		prompt = fmt.Sprintf("Write %d multiple-choice pub-quiz questions about %q with exactly 4 options each; the answer field must match one option verbatim.", n, topic)
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4o,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a quiz author drafting questions for a live pub quiz. Questions must be unambiguous and answerable in one short phrase.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Tools: []openai.Tool{
			{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        "submit_drafts",
					Description: "Submit drafted quiz questions",
					Parameters: map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"questions": map[string]interface{}{
								"type": "array",
								"items": map[string]interface{}{
									"type": "object",
									"properties": map[string]interface{}{
										"text": map[string]interface{}{
											"type":        "string",
											"description": "The question as read to the audience",
										},
										"answer": map[string]interface{}{
											"type":        "string",
											"description": "The accepted answer",
										},
										"options": map[string]interface{}{
											"type":        "array",
											"items":       map[string]interface{}{"type": "string"},
											"description": "4 options, multiple-choice only",
										},
									},
									"required": []string{"text", "answer"},
								},
							},
						},
						"required": []string{"questions"},
					},
				},
			},
		},
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: "submit_drafts"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("suggestion request failed: %w", err)
	}

	if len(resp.Choices) == 0 || len(resp.Choices[0].Message.ToolCalls) == 0 {
		return nil, errors.New("suggestion response contained no tool call")
	}

	var parsed struct {
		Questions []Draft `json:"questions"`
	}
	args := resp.Choices[0].Message.ToolCalls[0].Function.Arguments
	if err := json.Unmarshal([]byte(args), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse suggestion payload: %w", err)
	}
	return parsed.Questions, nil
}
