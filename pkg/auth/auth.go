// Package auth resolves the caller identity for each request, either from an
// OIDC bearer token or, in local development, from a trusted header.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/JaimeStill/spiral/pkg/handlers"
	"github.com/JaimeStill/spiral/pkg/lifecycle"
)

// Errors returned by the identity middleware.
var (
	ErrNotReady     = errors.New("identity provider not ready")
	ErrInvalidToken = errors.New("invalid bearer token")
)

type contextKey struct{}

// WithUserID returns a copy of ctx carrying the caller subject.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

// UserID returns the caller subject attached by the middleware, if any.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	return id, ok && id != ""
}

// Verifier validates a raw ID token. *oidc.IDTokenVerifier satisfies it.
type Verifier interface {
	Verify(ctx context.Context, rawIDToken string) (*oidc.IDToken, error)
}

// System resolves request identity and manages provider discovery.
type System interface {
	// Middleware attaches the caller subject to the request context.
	Middleware() func(http.Handler) http.Handler
	// Ready reports whether tokens can be verified.
	Ready() bool
	// Start registers provider discovery with the lifecycle coordinator.
	Start(lc *lifecycle.Coordinator) error
}

type authenticator struct {
	cfg    *Config
	logger *slog.Logger

	mu       sync.RWMutex
	verifier Verifier
}

// New creates an identity system. When cfg.Enabled is set the verifier is
// built during Start; until then the middleware rejects requests with 503.
func New(cfg *Config, logger *slog.Logger) System {
	return &authenticator{
		cfg:    cfg,
		logger: logger.With("system", "auth"),
	}
}

// NewWithVerifier creates an enabled identity system with a prebuilt verifier.
func NewWithVerifier(cfg *Config, verifier Verifier, logger *slog.Logger) System {
	a := &authenticator{
		cfg:    cfg,
		logger: logger.With("system", "auth"),
	}
	a.setVerifier(verifier)
	return a
}

func (a *authenticator) Ready() bool {
	if !a.cfg.Enabled {
		return true
	}
	return a.current() != nil
}

func (a *authenticator) Start(lc *lifecycle.Coordinator) error {
	if !a.cfg.Enabled {
		a.logger.Warn("identity verification disabled, trusting header", "header", a.cfg.DevHeader)
		return nil
	}
	if a.current() != nil {
		return nil
	}

	lc.OnStartup(func() {
		ctx, cancel := context.WithTimeout(lc.Context(), a.cfg.DiscoveryTimeoutDuration())
		defer cancel()

		provider, err := oidc.NewProvider(ctx, a.cfg.IssuerURL)
		if err != nil {
			a.logger.Error("oidc discovery failed", "issuer", a.cfg.IssuerURL, "error", err)
			return
		}

		a.setVerifier(provider.Verifier(&oidc.Config{ClientID: a.cfg.ClientID}))
		a.logger.Info("oidc provider ready", "issuer", a.cfg.IssuerURL)
	})

	return nil
}

func (a *authenticator) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.cfg.Enabled {
				if id := strings.TrimSpace(r.Header.Get(a.cfg.DevHeader)); id != "" {
					r = r.WithContext(WithUserID(r.Context(), id))
				}
				next.ServeHTTP(w, r)
				return
			}

			verifier := a.current()
			if verifier == nil {
				handlers.RespondError(w, a.logger, http.StatusServiceUnavailable, ErrNotReady)
				return
			}

			raw, ok := bearer(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			token, err := verifier.Verify(r.Context(), raw)
			if err != nil {
				a.logger.Info("token rejected", "error", err)
				handlers.RespondError(w, a.logger, http.StatusUnauthorized, ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), token.Subject)))
		})
	}
}

func (a *authenticator) current() Verifier {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.verifier
}

func (a *authenticator) setVerifier(v Verifier) {
	a.mu.Lock()
	a.verifier = v
	a.mu.Unlock()
}

func bearer(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
