package brain

import (
	"fmt"
	"scamshield/internal/core/domain"

	"google.golang.org/genai"
)

const (
	AnalystInstruction   = "You are an expert cybersecurity analyst. Be conservative and highlight potential risks. Output JSON only."
	PasswordInstruction  = "You are a password cracking expert. Estimate entropy and guessability. Score 0 (weak) to 100 (strong)."
	ModeratorInstruction = "You are a helpful cybersecurity community moderator."

	ModeratorName = "ScamShield AI Moderator"
)

// Fallback strings for GenerateReply.
const (
	ReplyEmpty  = "Thank you for sharing! Stay safe."
	ReplyFailed = "Thanks for your contribution to the community!"
)

func analysisPrompt(input string, kind domain.ScanKind) (string, bool) {
	switch kind {
	case domain.ScanURL:
		return fmt.Sprintf(`Analyze this URL for cybersecurity threats (Phishing, Malware, XSS, etc.). URL: "%s"`, input), true
	case domain.ScanEmail:
		return fmt.Sprintf(`Analyze this email content for SPAM, Phishing, or Social Engineering attacks. Content: "%s"`, input), true
	case domain.ScanCode:
		return fmt.Sprintf(`Analyze this code snippet for security vulnerabilities (SQL Injection, Buffer Overflow, Hardcoded secrets, etc.). Code: "%s"`, input), true
	}
	return "", false
}

func passwordPrompt(password string) string {
	return fmt.Sprintf(`Analyze the strength of this password: "%s". Do not reveal the password in output.`, password)
}

func replyPrompt(postContent string) string {
	return fmt.Sprintf(`A user posted this in a cybersecurity community: "%s". Write a helpful, short, professional reply as '%s'. Focus on safety tips or validation.`, postContent, ModeratorName)
}

// analysisSchema constrains the model to exactly the AnalysisResult fields.
func analysisSchema() *genai.Schema {
	levels := make([]string, 0, len(domain.RiskLevels))
	for _, l := range domain.RiskLevels {
		levels = append(levels, string(l))
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"riskLevel": {
				Type: genai.TypeString,
				Enum: levels,
			},
			"score": {
				Type:        genai.TypeInteger,
				Description: "A safety score from 0 (very dangerous) to 100 (very safe)",
			},
			"summary": {
				Type:        genai.TypeString,
				Description: "A brief summary of the findings.",
			},
			"details": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "List of specific technical reasons for the verdict.",
			},
			"recommendation": {
				Type:        genai.TypeString,
				Description: "Actionable advice for the user.",
			},
		},
		Required: []string{"riskLevel", "score", "summary", "details", "recommendation"},
	}
}

// AnalysisFallback is returned whenever a URL, email or code analysis cannot be completed.
func AnalysisFallback() domain.AnalysisResult {
	return domain.AnalysisResult{
		RiskLevel: domain.RiskUnknown,
		Score:     0,
		Summary:   "Analysis failed due to an error.",
		Details: []string{
			"API connection failed or input was invalid.",
			"Check your GEMINI_API_KEY in .env file.",
		},
		Recommendation: "Try again later.",
	}
}

// PasswordFallback is returned whenever a password check cannot be completed.
func PasswordFallback() domain.AnalysisResult {
	return domain.AnalysisResult{
		RiskLevel:      domain.RiskUnknown,
		Score:          0,
		Summary:        "Error checking password",
		Details:        []string{},
		Recommendation: "Use a longer password.",
	}
}
