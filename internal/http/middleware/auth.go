package middleware

import (
	"net/http"
	"strings"

	"github.com/MrJamesThe3rd/haggle/internal/auth"
	"github.com/MrJamesThe3rd/haggle/internal/http/respond"
)

type Verifier interface {
	Verify(token string) (auth.Identity, error)
}

// Authenticate attaches the caller's identity when a token is present, from
// the Authorization header or, for browser WebSockets, the token query
// parameter. Requests without a token continue anonymously; a bad token is
// rejected.
func Authenticate(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := v.Verify(token)
			if err != nil {
				respond.Error(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

// RequireIdentity rejects anonymous requests with 401.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := auth.FromContext(r.Context()).Require(); err != nil {
			respond.Error(w, r, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}

		return ""
	}

	return r.URL.Query().Get("token")
}
