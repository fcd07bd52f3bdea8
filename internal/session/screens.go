package session

import "scamshield/internal/core/domain"

// Screen is what entering a view renders: the component and its static parameters.
type Screen struct {
	View        domain.AppView  `json:"view"`
	Component   string          `json:"component"`
	ScanKind    domain.ScanKind `json:"scanKind,omitempty"`
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	Placeholder string          `json:"placeholder,omitempty"`
}

// IsScanner reports whether the screen hosts a scanner form.
func (s Screen) IsScanner() bool {
	return s.ScanKind != ""
}

var screens = map[domain.AppView]Screen{
	domain.ViewLogin:     {View: domain.ViewLogin, Component: "Login"},
	domain.ViewDashboard: {View: domain.ViewDashboard, Component: "Dashboard"},
	domain.ViewURLScanner: {
		View:        domain.ViewURLScanner,
		Component:   "ScannerView",
		ScanKind:    domain.ScanURL,
		Title:       "Malicious URL Scanner",
		Description: "Detect phishing links, malware distribution sites, and suspicious domains using AI heuristics.",
		Placeholder: "https://example.com/suspicious-path",
	},
	domain.ViewEmailScanner: {
		View:        domain.ViewEmailScanner,
		Component:   "ScannerView",
		ScanKind:    domain.ScanEmail,
		Title:       "Email Spam & Phishing Detector",
		Description: "Analyze email headers and body text for social engineering, spam patterns, and malicious intent.",
		Placeholder: "Paste raw email content here...",
	},
	domain.ViewCommunity: {View: domain.ViewCommunity, Component: "Community"},
	domain.ViewCodeScanner: {
		View:        domain.ViewCodeScanner,
		Component:   "ScannerView",
		ScanKind:    domain.ScanCode,
		Title:       "Vulnerability Code Scanner",
		Description: "Static analysis of code snippets to identify potential security flaws like SQL Injection or XSS.",
		Placeholder: "def login(user): query = 'SELECT * FROM users WHERE name=' + user...",
	},
	domain.ViewPasswordChecker: {
		View:        domain.ViewPasswordChecker,
		Component:   "ScannerView",
		ScanKind:    domain.ScanPassword,
		Title:       "Password Strength Audit",
		Description: "Evaluate password entropy and resistance to brute-force or dictionary attacks.",
		Placeholder: "Enter password to test...",
	},
	domain.ViewEducation:   {View: domain.ViewEducation, Component: "Education"},
	domain.ViewDeployGuide: {View: domain.ViewDeployGuide, Component: "DeployGuide"},
}

// ScreenFor returns the static screen of a view, or the dashboard for anything unknown.
func ScreenFor(v domain.AppView) Screen {
	if s, ok := screens[v]; ok {
		return s
	}
	return screens[domain.ViewDashboard]
}
