package client

import (
	"context"

	"github.com/offanish/proshop/models"
)

// UserInfo is the signed-in session: token plus profile fields. The
// credential never reaches the client.
type UserInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token"`
}

// UserState is a snapshot of the session slice.
type UserState struct {
	phase
	UserInfo    *UserInfo
	UserDetails *models.User
	Users       []models.User
}

// UserSlice owns the session and the admin user collection. Its token
// feeds the gateway for every authenticated request.
type UserSlice struct {
	sliceMu
	gw    *Gateway
	cache Cache
	state UserState
}

// NewUserSlice seeds the session from the cache.
func NewUserSlice(gw *Gateway, cache Cache) *UserSlice {
	s := &UserSlice{gw: gw, cache: cache}
	var info UserInfo
	if ok, err := cache.Get(CacheKeyUserInfo, &info); ok && err == nil {
		s.state.UserInfo = &info
	}
	return s
}

func (s *UserSlice) State() UserState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Token returns the current bearer token, or "" when signed out.
func (s *UserSlice) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.UserInfo == nil {
		return ""
	}
	return s.state.UserInfo.Token
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileInput carries the editable own-profile fields.
type UpdateProfileInput struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// UpdateUserInput carries the admin-editable user fields.
type UpdateUserInput struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	IsAdmin *bool   `json:"isAdmin,omitempty"`
}

func (s *UserSlice) session(ctx context.Context, method, path string, body interface{}) error {
	s.mu.Lock()
	s.state.begin()
	s.mu.Unlock()

	var info UserInfo
	err := s.gw.do(ctx, method, path, body, &info)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state.reject(err)
		return err
	}
	s.state.fulfill()
	s.state.UserInfo = &info
	s.state.Success = true
	return s.cache.Put(CacheKeyUserInfo, info)
}

// Login authenticates and replaces the session.
func (s *UserSlice) Login(ctx context.Context, email, password string) error {
	return s.session(ctx, "POST", "/users/login", loginInput{Email: email, Password: password})
}

// Register creates an account and signs it in.
func (s *UserSlice) Register(ctx context.Context, name, email, password string) error {
	return s.session(ctx, "POST", "/users", registerInput{Name: name, Email: email, Password: password})
}

// UpdateProfile edits the signed-in user and replaces the session with
// the fresh token and profile.
func (s *UserSlice) UpdateProfile(ctx context.Context, input UpdateProfileInput) error {
	return s.session(ctx, "PUT", "/users/profile", input)
}

// GetDetails replaces the viewed user record (admin).
func (s *UserSlice) GetDetails(ctx context.Context, id string) error {
	s.mu.Lock()
	s.state.begin()
	s.mu.Unlock()

	var user models.User
	err := s.gw.Get(ctx, "/users/"+id, &user)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state.reject(err)
		return err
	}
	s.state.fulfill()
	s.state.UserDetails = &user
	return nil
}

// ListAll replaces the user collection (admin).
func (s *UserSlice) ListAll(ctx context.Context) error {
	s.mu.Lock()
	s.state.begin()
	s.mu.Unlock()

	var users []models.User
	err := s.gw.Get(ctx, "/users", &users)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state.reject(err)
		return err
	}
	s.state.fulfill()
	s.state.Users = users
	return nil
}

// Delete removes a user, then re-lists so the collection reflects server
// truth.
func (s *UserSlice) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	s.state.begin()
	s.mu.Unlock()

	if err := s.gw.Delete(ctx, "/users/"+id); err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.state.reject(err)
		return err
	}

	s.mu.Lock()
	s.state.fulfill()
	s.state.Success = true
	s.mu.Unlock()

	return s.ListAll(ctx)
}

// Update edits a user (admin), then re-fetches the record so the details
// view reflects server truth.
func (s *UserSlice) Update(ctx context.Context, id string, input UpdateUserInput) error {
	s.mu.Lock()
	s.state.begin()
	s.mu.Unlock()

	if err := s.gw.Put(ctx, "/users/"+id, input, nil); err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.state.reject(err)
		return err
	}

	s.mu.Lock()
	s.state.fulfill()
	s.state.Success = true
	s.mu.Unlock()

	return s.GetDetails(ctx, id)
}

// ResetUsers clears only the user collection. Invoked as part of logout,
// always together with ResetOrders.
func (s *UserSlice) ResetUsers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Users = nil
}

// Logout clears the session and drops its cache slot, then cascade-resets
// the order collections and the user collection so nothing leaks into the
// next session.
func (s *UserSlice) Logout(orders *OrderSlice) error {
	s.mu.Lock()
	s.state.UserInfo = nil
	s.state.UserDetails = nil
	s.mu.Unlock()

	s.ResetUsers()
	if orders != nil {
		orders.ResetOrders()
	}
	return s.cache.Delete(CacheKeyUserInfo)
}

// ResetStatus clears the error and success flags.
func (s *UserSlice) ResetStatus() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Error = ""
	s.state.Success = false
}
