package scanner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"scamshield/internal/core/domain"
	"scamshield/internal/core/ports"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

var (
	ErrEmptyInput  = errors.New("input is required")
	ErrUnknownKind = errors.New("unknown scan kind")
)

const (
	alertPreviewLen = 200
	alertTimeout    = 15 * time.Second
)

// Service backs the four scanner screens.
type Service struct {
	Analyzer ports.Analyzer
	Alerts   ports.Notifier // optional

	pending sync.WaitGroup
}

func NewService(analyzer ports.Analyzer, alerts ports.Notifier) *Service {
	return &Service{Analyzer: analyzer, Alerts: alerts}
}

// Scan sends input to the analyzer matching kind. Only validation problems are errors;
// analyzer failures already come back as UNKNOWN verdicts.
func (s *Service) Scan(ctx context.Context, kind domain.ScanKind, input string) (domain.AnalysisResult, error) {
	if !kind.Valid() {
		return domain.AnalysisResult{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if strings.TrimSpace(input) == "" {
		return domain.AnalysisResult{}, ErrEmptyInput
	}

	if kind == domain.ScanPassword {
		return s.Analyzer.CheckPasswordStrength(ctx, input), nil
	}

	res := s.Analyzer.Analyze(ctx, input, kind)
	if res.RiskLevel == domain.RiskMalicious {
		s.alert(kind, input, res)
	}
	return res, nil
}

// alert sends in the background so a slow notifier never holds up the scan.
func (s *Service) alert(kind domain.ScanKind, input string, res domain.AnalysisResult) {
	n := s.Alerts
	if n == nil {
		return
	}
	title := fmt.Sprintf("🚨 MALICIOUS %s detected", kind)
	body := fmt.Sprintf("📍 Input: %s\n\n📄 Summary: %s\n\n🔢 Score: %d/100\n\n💡 %s",
		preview(input), res.Summary, res.Score, res.Recommendation)

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer func() {
			if p := recover(); p != nil {
				log.Printf("⚠️  alert notifier panicked: %v", p)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), alertTimeout)
		defer cancel()
		if err := n.Notify(ctx, title, body); err != nil {
			log.Printf("⚠️  alert delivery failed: %v", err)
		}
	}()
}

// Wait blocks until in-flight alerts finish.
func (s *Service) Wait() {
	s.pending.Wait()
}

func preview(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= alertPreviewLen {
		return s
	}
	return string([]rune(s)[:alertPreviewLen]) + "…"
}
