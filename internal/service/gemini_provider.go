package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"dhandhan-quiz-backend/config"
	"dhandhan-quiz-backend/internal/core/domain"

	"github.com/rs/zerolog"
)

const questionPrompt = `Generate %d EXTREMELY DIFFICULT, EXPERT-LEVEL multiple-choice quiz questions in Bengali (Bangla).

CRITICAL INSTRUCTIONS:
1. Difficulty: HARD. Questions must be obscure, challenging, and require deep knowledge. Avoid common facts.
2. Topics: Advanced Science (Physics/Chemistry), Deep History (Specific dates/events), World Literature, Complex Geography, Ancient Civilizations.
3. Format: 4 options, 1 correct.
4. Avoid repetitive patterns.

The output must be a JSON object containing an array of questions.`

// GeminiProvider implements ports.QuestionProvider against the Gemini
// generateContent REST API.
type GeminiProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewGeminiProvider creates a Gemini-backed question provider.
func NewGeminiProvider(cfg config.ProviderConfig, log zerolog.Logger) *GeminiProvider {
	return &GeminiProvider{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
		log:     log,
	}
}

// Request/response shapes for the generateContent endpoint. Only the fields
// we touch are modelled.
type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig geminiGenControl `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenControl struct {
	ResponseMimeType string          `json:"responseMimeType"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// questionSchema constrains the model output to the question batch shape.
var questionSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"questions": {
			"type": "ARRAY",
			"items": {
				"type": "OBJECT",
				"properties": {
					"question": {"type": "STRING", "description": "The hard question text in Bengali"},
					"options": {"type": "ARRAY", "items": {"type": "STRING"}, "description": "Array of 4 options in Bengali"},
					"correctAnswerIndex": {"type": "INTEGER", "description": "The index (0-3) of the correct answer"}
				},
				"required": ["question", "options", "correctAnswerIndex"]
			}
		}
	}
}`)

type questionBatch struct {
	Questions []struct {
		Question           string   `json:"question"`
		Options            []string `json:"options"`
		CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	} `json:"questions"`
}

// Generate asks the model for count questions and maps the reply to domain
// questions, each keyed by its text fingerprint. Malformed items (wrong
// option count, out-of-range answer index) are dropped.
func (p *GeminiProvider) Generate(ctx context.Context, count int) ([]domain.Question, error) {
	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: fmt.Sprintf(questionPrompt, count)}}},
		},
		GenerationConfig: geminiGenControl{
			ResponseMimeType: "application/json",
			ResponseSchema:   questionSchema,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", p.baseURL, p.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling gemini: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading gemini response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, raw)
	}

	var reply geminiResponse
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, fmt.Errorf("decoding gemini response: %w", err)
	}
	if len(reply.Candidates) == 0 || len(reply.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	var batch questionBatch
	if err := json.Unmarshal([]byte(reply.Candidates[0].Content.Parts[0].Text), &batch); err != nil {
		return nil, fmt.Errorf("decoding question batch: %w", err)
	}

	questions := make([]domain.Question, 0, len(batch.Questions))
	for _, q := range batch.Questions {
		if len(q.Options) != 4 || q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex > 3 {
			p.log.Warn().Str("question", q.Question).Msg("dropping malformed question from provider")
			continue
		}
		questions = append(questions, domain.Question{
			ID:           domain.Fingerprint(q.Question),
			Text:         q.Question,
			Options:      q.Options,
			CorrectIndex: q.CorrectAnswerIndex,
		})
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("gemini returned no usable questions")
	}
	return questions, nil
}
