package form

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"memorymap/internal/backend"
)

// Mode selects between the sign-in and sign-up flows.
type Mode int

const (
	ModeSignIn Mode = iota
	ModeSignUp
)

// AuthForm holds the state of one auth modal.
type AuthForm struct {
	client *backend.Client

	Email    string
	Password string
	Username string

	// OnSuccess fires after a successful sign-in or sign-up, before OnClose.
	OnSuccess func()
	// OnClose asks the caller to dismiss the modal.
	OnClose func()

	mu      sync.Mutex
	mode    Mode
	loading bool
	closed  bool
	message string
}

// NewAuthForm creates the form in sign-in mode.
func NewAuthForm(client *backend.Client) *AuthForm {
	return &AuthForm{client: client}
}

// Mode returns the current flow.
func (f *AuthForm) Mode() Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

// SetMode switches between sign-in and sign-up. It is a pure state
// flip: entered fields are kept and no network call happens.
func (f *AuthForm) SetMode(mode Mode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mode = mode
}

// Message returns the last user-visible status message.
func (f *AuthForm) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// Loading reports whether a submission is in flight.
func (f *AuthForm) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Close marks the modal dismissed. Callbacks of an in-flight submission
// are suppressed.
func (f *AuthForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

// Submit runs the sign-in or sign-up flow. Repeated calls while loading
// are ignored.
func (f *AuthForm) Submit(ctx context.Context) {
	f.mu.Lock()
	if f.loading {
		f.mu.Unlock()
		return
	}
	f.loading = true
	f.message = ""
	mode := f.mode
	f.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("auth submission panicked", "panic", r)
			f.setMessage("Beklenmeyen bir hata oluştu")
		}
		f.mu.Lock()
		f.loading = false
		f.mu.Unlock()
	}()

	if mode == ModeSignIn {
		f.signIn(ctx)
	} else {
		f.signUp(ctx)
	}
}

func (f *AuthForm) signIn(ctx context.Context) {
	_, err := f.client.Auth.SignIn(ctx, f.Email, f.Password)
	if err != nil {
		f.setMessage("Giriş hatası: " + err.Error())
		return
	}

	f.setMessage("Giriş başarılı! ✨")
	f.fireCallbacks()
}

// signUp registers the account, then writes the profile row as a
// best-effort second step. A profile failure is a soft warning only.
func (f *AuthForm) signUp(ctx context.Context) {
	identity, err := f.client.Auth.SignUp(ctx, f.Email, f.Password)
	if err != nil {
		f.setMessage("Kayıt hatası: " + err.Error())
		return
	}

	username := strings.TrimSpace(f.Username)
	if username == "" {
		username = emailLocalPart(identity.Email)
	}

	profileErr := f.client.Profiles.Insert(ctx, backend.NewProfile{
		ID:       identity.ID,
		Email:    identity.Email,
		Username: username,
	})
	if profileErr != nil {
		slog.Warn("profile creation failed", "error", profileErr)
		f.setMessage("Hesap oluşturuldu ama profilde sorun var. Devam edebilirsin.")
	} else {
		f.setMessage("Kayıt başarılı! Artık anılarını ekleyebilirsin ✨")
	}

	f.fireCallbacks()
}

func (f *AuthForm) setMessage(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.message = msg
}

func (f *AuthForm) fireCallbacks() {
	f.mu.Lock()
	closed := f.closed
	onSuccess, onClose := f.OnSuccess, f.OnClose
	f.mu.Unlock()

	if closed {
		return
	}
	if onSuccess != nil {
		onSuccess()
	}
	if onClose != nil {
		onClose()
	}
}

// emailLocalPart returns the text before the @, or "user" when empty.
func emailLocalPart(email string) string {
	local := strings.SplitN(email, "@", 2)[0]
	if local == "" {
		return "user"
	}
	return local
}
