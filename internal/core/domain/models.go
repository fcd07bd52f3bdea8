package domain

import (
	"strings"
	"unicode/utf8"
)

// RiskLevel is the verdict class of an analysis.
type RiskLevel string

const (
	RiskSafe       RiskLevel = "SAFE"
	RiskSuspicious RiskLevel = "SUSPICIOUS"
	RiskMalicious  RiskLevel = "MALICIOUS"
	RiskUnknown    RiskLevel = "UNKNOWN"
)

// RiskLevels lists every verdict class in schema order.
var RiskLevels = []RiskLevel{RiskSafe, RiskSuspicious, RiskMalicious, RiskUnknown}

func (r RiskLevel) Valid() bool {
	for _, l := range RiskLevels {
		if r == l {
			return true
		}
	}
	return false
}

// AnalysisResult is the structured verdict returned by the AI gateway.
type AnalysisResult struct {
	RiskLevel      RiskLevel `json:"riskLevel"`
	Score          int       `json:"score"` // 0 (dangerous / weak) to 100 (safe / strong)
	Summary        string    `json:"summary"`
	Details        []string  `json:"details"`
	Recommendation string    `json:"recommendation"`
}

// ScanKind selects the scanner variant of a view.
type ScanKind string

const (
	ScanURL      ScanKind = "URL"
	ScanEmail    ScanKind = "EMAIL"
	ScanCode     ScanKind = "CODE"
	ScanPassword ScanKind = "PASSWORD"
)

func (k ScanKind) Valid() bool {
	switch k {
	case ScanURL, ScanEmail, ScanCode, ScanPassword:
		return true
	}
	return false
}

// AppView is the closed set of screens the session can show.
type AppView string

const (
	ViewLogin           AppView = "LOGIN"
	ViewDashboard       AppView = "DASHBOARD"
	ViewURLScanner      AppView = "URL_SCANNER"
	ViewEmailScanner    AppView = "EMAIL_SCANNER"
	ViewCommunity       AppView = "COMMUNITY"
	ViewCodeScanner     AppView = "CODE_SCANNER"
	ViewPasswordChecker AppView = "PASSWORD_CHECKER"
	ViewEducation       AppView = "EDUCATION"
	ViewDeployGuide     AppView = "DEPLOY_GUIDE"
)

var AppViews = []AppView{
	ViewLogin, ViewDashboard, ViewURLScanner, ViewEmailScanner, ViewCommunity,
	ViewCodeScanner, ViewPasswordChecker, ViewEducation, ViewDeployGuide,
}

func (v AppView) Valid() bool {
	for _, known := range AppViews {
		if v == known {
			return true
		}
	}
	return false
}

// User is the live session user. At most one exists per session.
type User struct {
	Username   string `json:"username"`
	Avatar     string `json:"avatar"`
	IsLoggedIn bool   `json:"isLoggedIn"`
}

// NewUser builds a logged-in session user; the avatar is the upper-cased initial.
func NewUser(username string) User {
	return User{Username: username, Avatar: Initial(username), IsLoggedIn: true}
}

// Initial returns the first character of name, upper-cased.
func Initial(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return ""
	}
	return strings.ToUpper(string(r))
}

// Account is a registered credential as kept in the key/value store.
type Account struct {
	Username string `json:"username"`
	Password string `json:"password"`
	JoinedAt string `json:"joinedAt"`
}

// AuthResponse is the outcome of a register or authenticate call.
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Comment belongs to exactly one CommunityPost and never changes after creation.
type Comment struct {
	ID        int64  `json:"id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	IsAi      bool   `json:"isAi"`
}

// CommunityPost is a session-scoped feed entry.
type CommunityPost struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Avatar    string    `json:"avatar"`
	Content   string    `json:"content"`
	Timestamp string    `json:"timestamp"`
	LikedBy   []string  `json:"likedBy"` // usernames, each at most once
	Comments  []Comment `json:"comments"`
	Tags      []string  `json:"tags"`
}

// IsLikedBy reports whether username is in the post's liked-by set.
func (p CommunityPost) IsLikedBy(username string) bool {
	for _, u := range p.LikedBy {
		if u == username {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can't mutate feed state.
func (p CommunityPost) Clone() CommunityPost {
	c := p
	c.LikedBy = append([]string{}, p.LikedBy...)
	c.Comments = append([]Comment{}, p.Comments...)
	c.Tags = append([]string{}, p.Tags...)
	return c
}
