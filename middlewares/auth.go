package middlewares

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/googleauth/internal"
	"github.com/dmitrymomot/googleauth/pkg/logger"
)

type (
	userKey struct{}
	infoKey struct{}
)

// AuthConfig configures the Authenticate middleware.
type AuthConfig struct {
	Logger          *slog.Logger
	OnFailure       func(w http.ResponseWriter, r *http.Request, fail internal.Fail)
	OnError         func(w http.ResponseWriter, r *http.Request, err error)
	SuccessRedirect string // Redirect here instead of calling next on success
	FailureRedirect string // Redirect here instead of calling OnFailure
	AuthOptions     []internal.AuthOption
}

// AuthOption configures AuthConfig.
type AuthOption func(*AuthConfig)

// WithSuccessRedirect redirects the user agent after a successful login
// instead of calling the next handler.
func WithSuccessRedirect(url string) AuthOption {
	return func(cfg *AuthConfig) {
		cfg.SuccessRedirect = url
	}
}

// WithFailureRedirect redirects the user agent after a failed login.
func WithFailureRedirect(url string) AuthOption {
	return func(cfg *AuthConfig) {
		cfg.FailureRedirect = url
	}
}

// WithFailureHandler sets the function that writes the response on Fail.
// Defaults to the Fail status, or 401 when it has none.
func WithFailureHandler(h func(w http.ResponseWriter, r *http.Request, fail internal.Fail)) AuthOption {
	return func(cfg *AuthConfig) {
		if h != nil {
			cfg.OnFailure = h
		}
	}
}

// WithErrorHandler sets the function that writes the response on Error.
// Defaults to the status suggested by the error, or 500.
func WithErrorHandler(h func(w http.ResponseWriter, r *http.Request, err error)) AuthOption {
	return func(cfg *AuthConfig) {
		if h != nil {
			cfg.OnError = h
		}
	}
}

// WithAuthenticateOptions passes per-call options, such as scope or
// access type, to every Authenticate call.
func WithAuthenticateOptions(opts ...internal.AuthOption) AuthOption {
	return func(cfg *AuthConfig) {
		cfg.AuthOptions = append(cfg.AuthOptions, opts...)
	}
}

// WithAuthLogger sets the logger used to report outcomes.
func WithAuthLogger(l *slog.Logger) AuthOption {
	return func(cfg *AuthConfig) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// Authenticate returns middleware that runs the strategy on every request
// and applies the outcome:
//   - Redirect: the user agent is redirected to the provider
//   - Success: user and info are stored in the request context and next
//     is called, or the user agent is sent to SuccessRedirect
//   - Fail: FailureRedirect or OnFailure
//   - Error: OnError
//
// Mount it on both the login route and the callback route.
func Authenticate(a internal.Authenticator, opts ...AuthOption) func(http.Handler) http.Handler {
	cfg := &AuthConfig{
		Logger:    logger.NewNope(),
		OnFailure: defaultFailureHandler,
		OnError:   defaultErrorHandler,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			switch out := a.Authenticate(r, cfg.AuthOptions...).(type) {
			case internal.Redirect:
				status := out.Status
				if status == 0 {
					status = http.StatusFound
				}
				http.Redirect(w, r, out.URL, status)

			case internal.Success:
				cfg.Logger.InfoContext(ctx, "authentication succeeded",
					slog.String("strategy", a.Name()))

				if cfg.SuccessRedirect != "" {
					http.Redirect(w, r, cfg.SuccessRedirect, http.StatusFound)
					return
				}

				ctx = context.WithValue(ctx, userKey{}, out.User)
				ctx = context.WithValue(ctx, infoKey{}, out.Info)
				next.ServeHTTP(w, r.WithContext(ctx))

			case internal.Fail:
				cfg.Logger.InfoContext(ctx, "authentication failed",
					slog.String("strategy", a.Name()),
					slog.Any("challenge", out.Challenge))

				if cfg.FailureRedirect != "" {
					http.Redirect(w, r, cfg.FailureRedirect, http.StatusFound)
					return
				}
				cfg.OnFailure(w, r, out)

			case internal.Error:
				cfg.Logger.ErrorContext(ctx, "authentication error",
					slog.String("strategy", a.Name()),
					slog.String("error", out.Error()))

				cfg.OnError(w, r, out)

			default:
				cfg.Logger.ErrorContext(ctx, "unknown authentication outcome",
					slog.String("strategy", a.Name()))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		})
	}
}

// UserFromContext returns the user stored by Authenticate.
// Returns false if no user is present or it is not of type T.
func UserFromContext[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(userKey{}).(T)
	return v, ok
}

// InfoFromContext returns the info value stored by Authenticate.
func InfoFromContext(ctx context.Context) any {
	return ctx.Value(infoKey{})
}

func defaultFailureHandler(w http.ResponseWriter, _ *http.Request, fail internal.Fail) {
	status := fail.Status
	if status == 0 {
		status = http.StatusUnauthorized
	}
	http.Error(w, http.StatusText(status), status)
}

func defaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	status := errorStatus(err)
	http.Error(w, http.StatusText(status), status)
}
