// Package session holds the one live ScamShield session: which view is showing and who,
// if anyone, is logged in.
package session

import (
	"errors"
	"fmt"
	"scamshield/internal/core/domain"
	"sync"
)

var ErrUnknownView = errors.New("unknown view")

// State is a point-in-time copy of the router.
type State struct {
	View domain.AppView `json:"view"`
	User *domain.User   `json:"user"`
}

type Router struct {
	mu   sync.RWMutex
	view domain.AppView
	user *domain.User
}

func NewRouter() *Router {
	return &Router{view: domain.ViewDashboard}
}

// Navigate switches directly to v. There are no guards on plain navigation.
func (r *Router) Navigate(v domain.AppView) error {
	if !v.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownView, v)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.view = v
	return nil
}

// Login replaces any current user and forces the community view.
func (r *Router) Login(username string) domain.User {
	u := domain.NewUser(username)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.user = &u
	r.view = domain.ViewCommunity
	return u
}

// Logout drops the user and forces the login view.
func (r *Router) Logout() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.user = nil
	r.view = domain.ViewLogin
}

func (r *Router) Snapshot() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st := State{View: r.view}
	if r.user != nil {
		u := *r.user
		st.User = &u
	}
	return st
}

// User returns a copy of the current user, or nil.
func (r *Router) User() *domain.User {
	return r.Snapshot().User
}

func (r *Router) Screen() Screen {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return ScreenFor(r.view)
}
