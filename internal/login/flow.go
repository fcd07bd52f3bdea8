package login

import (
	"context"
	"log"
	"scamshield/internal/core/domain"
	"sync"
	"time"
)

const DefaultRedirectDelay = time.Second

const (
	MsgAccountCreated = "Account created successfully! Logging you in..."
	MsgUnexpected     = "An unexpected system error occurred."
)

// Accounts is the part of the account store the form calls.
type Accounts interface {
	Register(ctx context.Context, username, password string) (domain.AuthResponse, error)
	Authenticate(ctx context.Context, username, password string) (domain.AuthResponse, error)
}

type Mode string

const (
	ModeLogin    Mode = "login"
	ModeRegister Mode = "register"
)

// Snapshot is what the form shows. The password is never echoed.
type Snapshot struct {
	Mode     Mode   `json:"mode"`
	Username string `json:"username"`
	Error    string `json:"error,omitempty"`
	Success  string `json:"success,omitempty"`
	Loading  bool   `json:"loading"`
}

// Form is the two-mode login/register workflow.
type Form struct {
	Accounts      Accounts
	OnLogin       func(username string)
	RedirectDelay time.Duration

	mu          sync.Mutex
	registering bool
	username    string
	password    string
	errMsg      string
	successMsg  string
	loading     bool
	redirect    *time.Timer
}

func NewForm(accounts Accounts, onLogin func(username string), redirectDelay time.Duration) *Form {
	return &Form{Accounts: accounts, OnLogin: onLogin, RedirectDelay: redirectDelay}
}

// ToggleMode flips between login and register, clearing messages and the password.
func (f *Form) ToggleMode() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registering = !f.registering
	f.errMsg = ""
	f.successMsg = ""
	f.password = ""
	return f.snapshot()
}

func (f *Form) SetCredentials(username, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.username = username
	f.password = password
}

// Submit runs the current mode against the account store. With an empty username or
// password it does nothing.
func (f *Form) Submit(ctx context.Context) Snapshot {
	f.mu.Lock()
	if f.username == "" || f.password == "" {
		defer f.mu.Unlock()
		return f.snapshot()
	}
	registering, username, password := f.registering, f.username, f.password
	f.loading = true
	f.errMsg = ""
	f.successMsg = ""
	f.mu.Unlock()

	var (
		res domain.AuthResponse
		err error
	)
	if registering {
		res, err = f.Accounts.Register(ctx, username, password)
	} else {
		res, err = f.Accounts.Authenticate(ctx, username, password)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false

	switch {
	case err != nil:
		log.Printf("login: %v", err)
		f.errMsg = MsgUnexpected
	case !res.Success:
		f.errMsg = res.Message
	case registering:
		f.successMsg = MsgAccountCreated
		f.scheduleLogin(username)
	default:
		f.login(username)
	}
	return f.snapshot()
}

func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot()
}

// Close cancels a pending post-registration login.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.redirect != nil {
		f.redirect.Stop()
		f.redirect = nil
	}
}

func (f *Form) scheduleLogin(username string) {
	if f.redirect != nil {
		f.redirect.Stop()
	}
	if f.RedirectDelay <= 0 {
		f.login(username)
		return
	}
	f.redirect = time.AfterFunc(f.RedirectDelay, func() {
		if f.OnLogin != nil {
			f.OnLogin(username)
		}
	})
}

func (f *Form) login(username string) {
	if f.OnLogin != nil {
		f.OnLogin(username)
	}
}

func (f *Form) snapshot() Snapshot {
	mode := ModeLogin
	if f.registering {
		mode = ModeRegister
	}
	return Snapshot{
		Mode:     mode,
		Username: f.username,
		Error:    f.errMsg,
		Success:  f.successMsg,
		Loading:  f.loading,
	}
}
