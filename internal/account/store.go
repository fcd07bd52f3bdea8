// Package account keeps registered credentials as one JSON array in a key/value store.
//
// Passwords are stored and compared in plaintext. This is a demo login, not an
// authentication system.
package account

import (
	"context"
	"encoding/json"
	"fmt"
	"scamshield/internal/core/domain"
	"scamshield/internal/core/ports"
	"strings"
	"sync"
	"time"
)

// DBKey is the namespaced key holding the account array.
const DBKey = "scamshield_users_db"

const DefaultLatency = 800 * time.Millisecond

const (
	MsgUsernameTaken = "Username already taken."
	MsgRegistered    = "Registration successful!"
	MsgUserNotFound  = "User not found. Please register first."
	MsgInvalidPass   = "Invalid password."
	MsgLoggedIn      = "Login successful."
)

type Store struct {
	KV ports.KeyValueStore
	// Latency is waited before every operation to mimic a network round trip.
	Latency time.Duration
	Now     func() time.Time

	mu sync.Mutex
}

func NewStore(kv ports.KeyValueStore, latency time.Duration) *Store {
	return &Store{KV: kv, Latency: latency, Now: time.Now}
}

// Register adds a new account unless the username is taken, compared case-insensitively.
func (s *Store) Register(ctx context.Context, username, password string) (domain.AuthResponse, error) {
	if err := s.wait(ctx); err != nil {
		return domain.AuthResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.load(ctx)
	if err != nil {
		return domain.AuthResponse{}, err
	}
	if _, ok := find(accounts, username); ok {
		return domain.AuthResponse{Success: false, Message: MsgUsernameTaken}, nil
	}

	accounts = append(accounts, domain.Account{
		Username: username,
		Password: password,
		JoinedAt: s.now().UTC().Format(time.RFC3339Nano),
	})
	if err := s.save(ctx, accounts); err != nil {
		return domain.AuthResponse{}, err
	}
	return domain.AuthResponse{Success: true, Message: MsgRegistered}, nil
}

// Authenticate matches the username case-insensitively and the password exactly.
func (s *Store) Authenticate(ctx context.Context, username, password string) (domain.AuthResponse, error) {
	if err := s.wait(ctx); err != nil {
		return domain.AuthResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.load(ctx)
	if err != nil {
		return domain.AuthResponse{}, err
	}
	acc, ok := find(accounts, username)
	if !ok {
		return domain.AuthResponse{Success: false, Message: MsgUserNotFound}, nil
	}
	if acc.Password != password {
		return domain.AuthResponse{Success: false, Message: MsgInvalidPass}, nil
	}
	return domain.AuthResponse{Success: true, Message: MsgLoggedIn}, nil
}

// Accounts returns every stored record in registration order.
func (s *Store) Accounts(ctx context.Context) ([]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) ([]domain.Account, error) {
	raw, ok, err := s.KV.GetItem(ctx, DBKey)
	if err != nil {
		return nil, fmt.Errorf("read accounts: %w", err)
	}
	if !ok || raw == "" {
		return []domain.Account{}, nil
	}
	var accounts []domain.Account
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

func (s *Store) save(ctx context.Context, accounts []domain.Account) error {
	data, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("encode accounts: %w", err)
	}
	if err := s.KV.SetItem(ctx, DBKey, string(data)); err != nil {
		return fmt.Errorf("write accounts: %w", err)
	}
	return nil
}

func (s *Store) wait(ctx context.Context) error {
	if s.Latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.Latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func find(accounts []domain.Account, username string) (domain.Account, bool) {
	want := strings.ToLower(username)
	for _, a := range accounts {
		if strings.ToLower(a.Username) == want {
			return a, true
		}
	}
	return domain.Account{}, false
}
