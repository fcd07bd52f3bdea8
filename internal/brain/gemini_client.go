package brain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"scamshield/internal/core/domain"
	"scamshield/internal/core/ports"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

// ErrBudgetExhausted means the per-minute or per-day request budget is used up.
var ErrBudgetExhausted = errors.New("model request budget exhausted")

type modelConfig struct {
	Name string
	RPM  int
	RPD  int
}

// contentGenerator is the subset of *genai.Models the brain calls.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiBrain struct {
	Models contentGenerator
	Model  modelConfig

	dailyCount   int
	minuteCount  int
	lastResetDay time.Time
	lastResetMin time.Time
	mu           sync.Mutex
}

// NewGeminiBrain never fails on a missing key: it warns and builds a client that will
// fail per call, which the brain turns into fallback results.
func NewGeminiBrain(ctx context.Context, apiKey, model string) (*GeminiBrain, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		log.Println("⚠️  Missing API Key. Please add GEMINI_API_KEY to your .env file.")
		apiKey = "MISSING_KEY"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return newBrain(client.Models, model), nil
}

func newBrain(gen contentGenerator, model string) *GeminiBrain {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiBrain{
		Models:       gen,
		Model:        modelConfig{Name: model, RPM: 10, RPD: 250},
		lastResetDay: time.Now(),
		lastResetMin: time.Now(),
	}
}

// Ensure implementation
var _ ports.Brain = (*GeminiBrain)(nil)

// Analyze returns the model's verdict on a URL, email body or code snippet.
func (b *GeminiBrain) Analyze(ctx context.Context, input string, kind domain.ScanKind) domain.AnalysisResult {
	prompt, ok := analysisPrompt(input, kind)
	if !ok {
		log.Printf("Gemini Analysis Error: unsupported kind %q", kind)
		return AnalysisFallback()
	}

	res, err := b.generateVerdict(ctx, prompt, AnalystInstruction)
	if err != nil {
		log.Printf("Gemini Analysis Error: %v", err)
		return AnalysisFallback()
	}
	return res
}

// CheckPasswordStrength asks the model to grade a password without echoing it back.
func (b *GeminiBrain) CheckPasswordStrength(ctx context.Context, password string) domain.AnalysisResult {
	res, err := b.generateVerdict(ctx, passwordPrompt(password), PasswordInstruction)
	if err != nil {
		log.Printf("Gemini Password Error: %v", err)
		return PasswordFallback()
	}
	return res
}

// GenerateReply writes a short moderator reply to a community post.
func (b *GeminiBrain) GenerateReply(ctx context.Context, postContent string) string {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(ModeratorInstruction, genai.RoleUser),
	}
	text, err := b.generate(ctx, replyPrompt(postContent), config)
	if err != nil {
		log.Printf("Gemini Reply Error: %v", err)
		return ReplyFailed
	}
	if strings.TrimSpace(text) == "" {
		return ReplyEmpty
	}
	return text
}

func (b *GeminiBrain) generateVerdict(ctx context.Context, prompt, instruction string) (domain.AnalysisResult, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType:  "application/json",
		ResponseSchema:    analysisSchema(),
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
	}
	text, err := b.generate(ctx, prompt, config)
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	if strings.TrimSpace(text) == "" {
		return domain.AnalysisResult{}, errors.New("no response from AI")
	}
	return parseVerdict(text)
}

func (b *GeminiBrain) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (text string, err error) {
	if b.Models == nil {
		return "", errors.New("gemini client not configured")
	}
	if !b.reserveSlot() {
		return "", ErrBudgetExhausted
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("gemini call panicked: %v", r)
		}
	}()

	result, err := b.Models.GenerateContent(ctx, b.Model.Name, genai.Text(prompt), config)
	if err != nil {
		return "", err
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var sb strings.Builder
		for _, part := range result.Candidates[0].Content.Parts {
			if part != nil {
				sb.WriteString(part.Text)
			}
		}
		return sb.String(), nil
	}
	return "", nil
}

// reserveSlot counts a request against the per-minute and per-day budget before it is
// sent. Failed calls keep their slot; the API bills attempts.
func (b *GeminiBrain) reserveSlot() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now()
	if now.YearDay() != b.lastResetDay.YearDay() || now.Year() != b.lastResetDay.Year() {
		b.dailyCount = 0
		b.lastResetDay = now
	}
	if now.Sub(b.lastResetMin) >= time.Minute {
		b.minuteCount = 0
		b.lastResetMin = now
	}
	if b.dailyCount >= b.Model.RPD || b.minuteCount >= b.Model.RPM {
		return false
	}
	b.dailyCount++
	b.minuteCount++
	return true
}

// rawVerdict uses pointers so missing fields can be told apart from zero values.
type rawVerdict struct {
	RiskLevel      *string   `json:"riskLevel"`
	Score          *float64  `json:"score"`
	Summary        *string   `json:"summary"`
	Details        *[]string `json:"details"`
	Recommendation *string   `json:"recommendation"`
}

func parseVerdict(text string) (domain.AnalysisResult, error) {
	var raw rawVerdict
	if err := json.Unmarshal([]byte(cleanJSON(text)), &raw); err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("malformed verdict: %w", err)
	}
	if raw.RiskLevel == nil || raw.Score == nil || raw.Summary == nil || raw.Details == nil || raw.Recommendation == nil {
		return domain.AnalysisResult{}, errors.New("verdict is missing required fields")
	}

	level := domain.RiskLevel(*raw.RiskLevel)
	if !level.Valid() {
		return domain.AnalysisResult{}, fmt.Errorf("unknown risk level %q", *raw.RiskLevel)
	}

	f := *raw.Score
	if f != math.Trunc(f) {
		return domain.AnalysisResult{}, fmt.Errorf("score %v is not an integer", f)
	}
	f = math.Max(0, math.Min(100, f))
	score := int(f)

	details := *raw.Details
	if details == nil {
		details = []string{}
	}

	return domain.AnalysisResult{
		RiskLevel:      level,
		Score:          score,
		Summary:        *raw.Summary,
		Details:        details,
		Recommendation: *raw.Recommendation,
	}, nil
}

func cleanJSON(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
