package viewmodel

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/mmcdole/reel/internal/domain"
)

// AuthStatus is the tag of the authentication state machine
type AuthStatus int

const (
	LoggedOut AuthStatus = iota
	AuthLoading
	LoggedIn
	RegistrationSuccess
	AuthFailed
)

func (s AuthStatus) String() string {
	switch s {
	case AuthLoading:
		return "loading"
	case LoggedIn:
		return "logged_in"
	case RegistrationSuccess:
		return "registration_success"
	case AuthFailed:
		return "error"
	default:
		return "logged_out"
	}
}

// Messages shown by the auth screens
const (
	MsgEmptyEmail       = "Email cannot be empty"
	MsgEmptyUsername    = "Username cannot be empty"
	MsgEmptyPassword    = "Password cannot be empty"
	MsgPasswordMismatch = "Passwords do not match!"

	ToastLogin        = "Login Successful!"
	ToastRegistration = "Registration Successful!"
	ToastLogout       = "Logout Successful!"
)

// AuthState is a snapshot of the auth screen. Code is the HTTP status of
// the failure, 400 for local validation and 0 when the server was not reached.
type AuthState struct {
	Status  AuthStatus
	Code    int
	Message string
	Kind    domain.ErrorKind
	Toast   string
}

// Field is one form input with its validation message
type Field struct {
	Text string
	Err  string
}

// Form holds the login and registration inputs
type Form struct {
	Username Field
	Email    Field
	Password Field
	Confirm  Field
}

// Auth drives login, registration and logout. When several calls overlap
// only the most recently started one may publish its result.
type Auth struct {
	mu         sync.Mutex
	repo       domain.AuthRepository
	sessions   SessionStore
	form       Form
	state      AuthState
	generation uint64
	logger     *slog.Logger
}

// NewAuth creates the controller. It starts LoggedIn when a session exists.
func NewAuth(repo domain.AuthRepository, sessions SessionStore, logger *slog.Logger) *Auth {
	if logger == nil {
		logger = slog.Default()
	}
	a := &Auth{repo: repo, sessions: sessions, logger: logger}
	if sessions.LoggedIn() {
		a.state = AuthState{Status: LoggedIn}
	}
	return a
}

// State returns the current snapshot
func (a *Auth) State() AuthState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Form returns the current inputs
func (a *Auth) Form() Form {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.form
}

// SetUsername updates the username input and clears its error
func (a *Auth) SetUsername(v string) { a.setField(&a.form.Username, v) }

// SetEmail updates the email input and clears its error
func (a *Auth) SetEmail(v string) { a.setField(&a.form.Email, v) }

// SetPassword updates the password input and clears its error
func (a *Auth) SetPassword(v string) { a.setField(&a.form.Password, v) }

// SetConfirm updates the confirm-password input and clears its error
func (a *Auth) SetConfirm(v string) { a.setField(&a.form.Confirm, v) }

func (a *Auth) setField(f *Field, v string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	*f = Field{Text: v}
}

// ResetForm clears every input
func (a *Auth) ResetForm() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.form = Form{}
}

// DismissError returns an Error state to LoggedOut
func (a *Auth) DismissError() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state.Status == AuthFailed {
		a.state = AuthState{Status: LoggedOut}
	}
}

// requireText sets f.Err when f is blank and reports whether it was filled.
// Callers hold a.mu.
func requireText(f *Field, msg string) bool {
	if strings.TrimSpace(f.Text) == "" {
		f.Err = msg
		return false
	}
	f.Err = ""
	return true
}

func failedState(err error) AuthState {
	return AuthState{
		Status:  AuthFailed,
		Code:    domain.StatusOf(err),
		Kind:    domain.KindOf(err),
		Message: domain.UserMessage(err),
	}
}

// begin moves to Loading and returns the generation of the new call.
// Callers hold a.mu.
func (a *Auth) begin() uint64 {
	a.generation++
	a.state = AuthState{Status: AuthLoading}
	return a.generation
}

// Login validates the form and signs in
func (a *Auth) Login(ctx context.Context) AuthState {
	a.mu.Lock()
	okUser := requireText(&a.form.Username, MsgEmptyUsername)
	okPass := requireText(&a.form.Password, MsgEmptyPassword)
	if !okUser || !okPass {
		msg := a.form.Username.Err
		if msg == "" {
			msg = a.form.Password.Err
		}
		a.state = failedState(domain.NewValidationError(msg))
		defer a.mu.Unlock()
		return a.state
	}
	creds := domain.Credentials{Username: strings.TrimSpace(a.form.Username.Text), Password: a.form.Password.Text}
	gen := a.begin()
	a.mu.Unlock()

	a.logger.Debug("logging in", "username", creds.Username)
	sess, err := a.repo.Login(ctx, creds)
	return a.finishSignIn(gen, sess, err, ToastLogin)
}

// LoginWithGoogle signs in with an ID token from Google
func (a *Auth) LoginWithGoogle(ctx context.Context, idToken string) AuthState {
	a.mu.Lock()
	gen := a.begin()
	a.mu.Unlock()

	sess, err := a.repo.LoginWithGoogle(ctx, idToken)
	return a.finishSignIn(gen, sess, err, ToastLogin)
}

func (a *Auth) finishSignIn(gen uint64, sess domain.Session, err error, toast string) AuthState {
	a.mu.Lock()
	defer a.mu.Unlock()

	if gen != a.generation {
		a.logger.Debug("dropping superseded sign-in result")
		return a.state
	}
	if err == nil {
		err = a.sessions.Save(sess)
	}
	if err != nil {
		a.logger.Error("sign-in failed", "error", err)
		a.state = failedState(err)
		return a.state
	}

	a.form = Form{}
	a.state = AuthState{Status: LoggedIn, Toast: toast}
	a.logger.Info("signed in", "username", sess.Username)
	return a.state
}

// Register validates the form and creates an account. A blank or differing
// confirmation blocks the call.
func (a *Auth) Register(ctx context.Context) AuthState {
	a.mu.Lock()
	okEmail := requireText(&a.form.Email, MsgEmptyEmail)
	okUser := requireText(&a.form.Username, MsgEmptyUsername)
	okPass := requireText(&a.form.Password, MsgEmptyPassword)

	var msg string
	switch {
	case strings.TrimSpace(a.form.Confirm.Text) == "" || a.form.Confirm.Text != a.form.Password.Text:
		a.form.Confirm.Err = MsgPasswordMismatch
		msg = MsgPasswordMismatch
	case !okEmail:
		msg = MsgEmptyEmail
	case !okUser:
		msg = MsgEmptyUsername
	case !okPass:
		msg = MsgEmptyPassword
	}
	if msg != "" {
		a.state = failedState(domain.NewValidationError(msg))
		defer a.mu.Unlock()
		return a.state
	}
	a.form.Confirm.Err = ""

	reg := domain.Registration{
		Username: strings.TrimSpace(a.form.Username.Text),
		Email:    strings.TrimSpace(a.form.Email.Text),
		Password: a.form.Password.Text,
	}
	gen := a.begin()
	a.mu.Unlock()

	a.logger.Debug("registering", "username", reg.Username)
	reply, err := a.repo.Register(ctx, reg)

	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.generation {
		return a.state
	}
	if err != nil {
		a.logger.Error("registration failed", "error", err)
		a.state = failedState(err)
		return a.state
	}
	a.logger.Info("registered", "username", reg.Username, "reply", reply)
	a.form = Form{}
	a.state = AuthState{Status: RegistrationSuccess, Toast: ToastRegistration}
	return a.state
}

// Logout revokes the refresh token and forgets the session. The local
// session is cleared even when the server call fails.
func (a *Auth) Logout(ctx context.Context) AuthState {
	a.mu.Lock()
	gen := a.begin()
	a.mu.Unlock()

	sess := a.sessions.Current()
	if sess.RefreshToken != "" {
		if err := a.repo.Logout(ctx, sess.RefreshToken); err != nil {
			a.logger.Warn("remote logout failed", "error", err)
		}
	}
	if err := a.sessions.Invalidate(); err != nil {
		a.logger.Error("failed to clear session", "error", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.generation {
		return a.state
	}
	a.form = Form{}
	a.state = AuthState{Status: LoggedOut, Toast: ToastLogout}
	return a.state
}
