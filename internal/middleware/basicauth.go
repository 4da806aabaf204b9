// Package middleware provides HTTP middleware shared by the three apps.
package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/webtriad/webtriad/internal/config"
	"github.com/webtriad/webtriad/pkg/logger"
)

// BasicAuth guards the member API with the static credential pair from
// configuration.
type BasicAuth struct {
	username string
	password string
	log      *logger.Logger
}

// NewBasicAuth creates the middleware from configuration.
func NewBasicAuth(cfg config.BasicAuthConfig, log *logger.Logger) *BasicAuth {
	if log == nil {
		log = logger.NewDefault("basicauth")
	}
	return &BasicAuth{username: cfg.Username, password: cfg.Password, log: log}
}

// Handler returns the middleware handler.
func (a *BasicAuth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || !a.matches(user, pass) {
			a.log.WithFields(map[string]interface{}{
				"path":   r.URL.Path,
				"method": r.Method,
			}).Warn("basic auth failed")

			w.Header().Set("WWW-Authenticate", `Basic realm="member api"`)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Authorization failed! "})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *BasicAuth) matches(user, pass string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(a.password)) == 1
	return userOK && passOK
}
