package brain

import (
	"context"
	"errors"
	"reflect"
	"scamshield/internal/core/domain"
	"strings"
	"sync"
	"testing"
	"time"

	"google.golang.org/genai"
)

type fakeCall struct {
	model  string
	prompt string
	config *genai.GenerateContentConfig
}

// fakeGenerator answers every call with the same text or error.
type fakeGenerator struct {
	text  string
	err   error
	panic bool
	delay time.Duration

	mu    sync.Mutex
	calls []fakeCall
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	var prompt strings.Builder
	for _, c := range contents {
		for _, p := range c.Parts {
			prompt.WriteString(p.Text)
		}
	}
	f.mu.Lock()
	f.calls = append(f.calls, fakeCall{model: model, prompt: prompt.String(), config: config})
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.panic {
		panic("transport exploded")
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: f.text}}}},
		},
	}, nil
}

func (f *fakeGenerator) lastCall(t *testing.T) fakeCall {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		t.Fatal("expected the model to be called")
	}
	return f.calls[len(f.calls)-1]
}

const goodVerdict = `{"riskLevel":"MALICIOUS","score":12,"summary":"Lookalike domain.","details":["Typosquatted brand","Fresh registration"],"recommendation":"Do not open."}`

func TestAnalyzeParsesVerdict(t *testing.T) {
	gen := &fakeGenerator{text: goodVerdict}
	b := newBrain(gen, "")

	got := b.Analyze(context.Background(), "http://netflix-support-verify.com", domain.ScanURL)
	want := domain.AnalysisResult{
		RiskLevel:      domain.RiskMalicious,
		Score:          12,
		Summary:        "Lookalike domain.",
		Details:        []string{"Typosquatted brand", "Fresh registration"},
		Recommendation: "Do not open.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v\nwant %+v", got, want)
	}

	call := gen.lastCall(t)
	if call.model != DefaultModel {
		t.Errorf("expected model %s, got %s", DefaultModel, call.model)
	}
	if call.config.ResponseMIMEType != "application/json" || call.config.ResponseSchema == nil {
		t.Errorf("expected JSON schema constrained request, got %+v", call.config)
	}
	if !reflect.DeepEqual(call.config.ResponseSchema.Required, []string{"riskLevel", "score", "summary", "details", "recommendation"}) {
		t.Errorf("unexpected required fields %v", call.config.ResponseSchema.Required)
	}
	if enum := call.config.ResponseSchema.Properties["riskLevel"].Enum; len(enum) != 4 {
		t.Errorf("expected four risk levels in schema, got %v", enum)
	}
}

func TestAnalyzeSelectsPromptByKind(t *testing.T) {
	cases := []struct {
		kind   domain.ScanKind
		marker string
	}{
		{domain.ScanURL, `URL: "payload"`},
		{domain.ScanEmail, `Content: "payload"`},
		{domain.ScanCode, `Code: "payload"`},
	}
	for _, c := range cases {
		gen := &fakeGenerator{text: goodVerdict}
		newBrain(gen, "").Analyze(context.Background(), "payload", c.kind)
		if p := gen.lastCall(t).prompt; !strings.Contains(p, c.marker) {
			t.Errorf("%s: prompt %q does not contain %q", c.kind, p, c.marker)
		}
	}
}

func TestAnalyzeFallsBack(t *testing.T) {
	cases := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"transport error", &fakeGenerator{err: errors.New("dial tcp: connection refused")}},
		{"panic", &fakeGenerator{panic: true}},
		{"empty text", &fakeGenerator{text: ""}},
		{"malformed json", &fakeGenerator{text: `{"riskLevel": "SAFE", "score":`}},
		{"not json", &fakeGenerator{text: "I think it's fine"}},
		{"missing field", &fakeGenerator{text: `{"riskLevel":"SAFE","score":90,"summary":"ok","details":[]}`}},
		{"bad risk level", &fakeGenerator{text: `{"riskLevel":"SCARY","score":90,"summary":"ok","details":[],"recommendation":"x"}`}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := newBrain(c.gen, "").Analyze(context.Background(), "x", domain.ScanEmail)
			if !reflect.DeepEqual(got, AnalysisFallback()) {
				t.Errorf("expected fallback, got %+v", got)
			}
		})
	}
}

func TestAnalyzeUnsupportedKindDoesNotCallModel(t *testing.T) {
	gen := &fakeGenerator{text: goodVerdict}
	got := newBrain(gen, "").Analyze(context.Background(), "x", domain.ScanPassword)
	if !reflect.DeepEqual(got, AnalysisFallback()) {
		t.Errorf("expected fallback, got %+v", got)
	}
	if len(gen.calls) != 0 {
		t.Errorf("expected no model calls, got %d", len(gen.calls))
	}
}

func TestAnalyzeCleansFencesAndClampsScore(t *testing.T) {
	gen := &fakeGenerator{text: "```json\n{\"riskLevel\":\"SAFE\",\"score\":140,\"summary\":\"fine\",\"details\":null,\"recommendation\":\"none\"}\n```"}
	got := newBrain(gen, "").Analyze(context.Background(), "x", domain.ScanCode)
	// null details counts as missing
	if !reflect.DeepEqual(got, AnalysisFallback()) {
		t.Fatalf("expected fallback for null details, got %+v", got)
	}

	gen.text = "```json\n{\"riskLevel\":\"SAFE\",\"score\":140,\"summary\":\"fine\",\"details\":[],\"recommendation\":\"none\"}\n```"
	got = newBrain(gen, "").Analyze(context.Background(), "x", domain.ScanCode)
	if got.RiskLevel != domain.RiskSafe || got.Score != 100 {
		t.Errorf("expected SAFE clamped to 100, got %+v", got)
	}

	gen.text = `{"riskLevel":"SUSPICIOUS","score":-5,"summary":"meh","details":["a"],"recommendation":"r"}`
	got = newBrain(gen, "").Analyze(context.Background(), "x", domain.ScanCode)
	if got.Score != 0 {
		t.Errorf("expected score clamped to 0, got %d", got.Score)
	}

	gen.text = `{"riskLevel":"SAFE","score":1e20,"summary":"fine","details":[],"recommendation":"none"}`
	got = newBrain(gen, "").Analyze(context.Background(), "x", domain.ScanCode)
	if got.RiskLevel != domain.RiskSafe || got.Score != 100 {
		t.Errorf("expected huge score clamped to 100, got %+v", got)
	}

	gen.text = `{"riskLevel":"SAFE","score":42.9,"summary":"fine","details":[],"recommendation":"none"}`
	got = newBrain(gen, "").Analyze(context.Background(), "x", domain.ScanCode)
	if !reflect.DeepEqual(got, AnalysisFallback()) {
		t.Errorf("expected fallback for fractional score, got %+v", got)
	}
}

func TestCheckPasswordStrength(t *testing.T) {
	gen := &fakeGenerator{text: `{"riskLevel":"SUSPICIOUS","score":35,"summary":"Short.","details":["dictionary word"],"recommendation":"Use a passphrase."}`}
	b := newBrain(gen, "")

	got := b.CheckPasswordStrength(context.Background(), "hunter2")
	if got.RiskLevel != domain.RiskSuspicious || got.Score != 35 {
		t.Errorf("unexpected verdict %+v", got)
	}
	call := gen.lastCall(t)
	if !strings.Contains(call.prompt, "Do not reveal the password in output.") {
		t.Errorf("password prompt lacks the no-echo instruction: %q", call.prompt)
	}
	if call.config.SystemInstruction == nil || call.config.SystemInstruction.Parts[0].Text != PasswordInstruction {
		t.Errorf("unexpected system instruction %+v", call.config.SystemInstruction)
	}

	gen.err = errors.New("quota")
	if got := b.CheckPasswordStrength(context.Background(), "hunter2"); !reflect.DeepEqual(got, PasswordFallback()) {
		t.Errorf("expected password fallback, got %+v", got)
	}
}

func TestGenerateReply(t *testing.T) {
	gen := &fakeGenerator{text: "Good catch, never click SMS links."}
	b := newBrain(gen, "")

	if got := b.GenerateReply(context.Background(), "Suspicious link seen"); got != "Good catch, never click SMS links." {
		t.Errorf("unexpected reply %q", got)
	}
	call := gen.lastCall(t)
	if !strings.Contains(call.prompt, `"Suspicious link seen"`) || !strings.Contains(call.prompt, ModeratorName) {
		t.Errorf("unexpected reply prompt %q", call.prompt)
	}
	if call.config.ResponseSchema != nil {
		t.Error("reply request must not carry a schema")
	}

	gen.text = "   "
	if got := b.GenerateReply(context.Background(), "x"); got != ReplyEmpty {
		t.Errorf("expected empty-text fallback, got %q", got)
	}

	gen.err = errors.New("503")
	if got := b.GenerateReply(context.Background(), "x"); got != ReplyFailed {
		t.Errorf("expected failure fallback, got %q", got)
	}
}

func TestBudgetExhaustionSkipsModel(t *testing.T) {
	gen := &fakeGenerator{text: goodVerdict}
	b := newBrain(gen, "")
	b.Model.RPM = 2

	for i := 0; i < 2; i++ {
		if got := b.Analyze(context.Background(), "x", domain.ScanURL); got.RiskLevel != domain.RiskMalicious {
			t.Fatalf("call %d: expected real verdict, got %+v", i, got)
		}
	}
	if got := b.Analyze(context.Background(), "x", domain.ScanURL); !reflect.DeepEqual(got, AnalysisFallback()) {
		t.Errorf("expected fallback once budget is spent, got %+v", got)
	}
	if len(gen.calls) != 2 {
		t.Errorf("expected 2 model calls, got %d", len(gen.calls))
	}
}

func TestBudgetHoldsUnderConcurrentCalls(t *testing.T) {
	gen := &fakeGenerator{text: goodVerdict, delay: 50 * time.Millisecond}
	b := newBrain(gen, "")
	b.Model.RPM = 2

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Analyze(context.Background(), "x", domain.ScanURL)
		}()
	}
	wg.Wait()

	gen.mu.Lock()
	defer gen.mu.Unlock()
	if len(gen.calls) != 2 {
		t.Errorf("RPM=2 but %d model calls were sent", len(gen.calls))
	}
}

func TestFailedCallsSpendBudget(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("503")}
	b := newBrain(gen, "")
	b.Model.RPM = 1

	b.Analyze(context.Background(), "x", domain.ScanURL)
	gen.err = nil
	gen.text = goodVerdict
	if got := b.Analyze(context.Background(), "x", domain.ScanURL); !reflect.DeepEqual(got, AnalysisFallback()) {
		t.Errorf("expected budget spent by the failed attempt, got %+v", got)
	}
	if len(gen.calls) != 1 {
		t.Errorf("expected 1 model call, got %d", len(gen.calls))
	}
}

func TestNilGeneratorFallsBack(t *testing.T) {
	b := newBrain(nil, "")
	if got := b.Analyze(context.Background(), "x", domain.ScanURL); got.RiskLevel != domain.RiskUnknown {
		t.Errorf("expected UNKNOWN, got %+v", got)
	}
	if got := b.GenerateReply(context.Background(), "x"); got != ReplyFailed {
		t.Errorf("expected failure reply, got %q", got)
	}
}
