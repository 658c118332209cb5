package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"hotelres/pkg/logger"
	"net/http"
)

// OperatorAuth gates the API behind HTTP basic auth for the single hotel operator.
// Both fields are hashed before comparing so the check takes the same time
// regardless of which part is wrong or how long it is.
func OperatorAuth(username, password string, log *logger.Logger) func(http.Handler) http.Handler {
	wantUser := sha256.Sum256([]byte(username))
	wantPass := sha256.Sum256([]byte(password))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok {
				rejectUnauthorized(w, log, r, "missing credentials")
				return
			}

			gotUser := sha256.Sum256([]byte(user))
			gotPass := sha256.Sum256([]byte(pass))
			userMatch := subtle.ConstantTimeCompare(gotUser[:], wantUser[:])
			passMatch := subtle.ConstantTimeCompare(gotPass[:], wantPass[:])

			if userMatch&passMatch != 1 {
				rejectUnauthorized(w, log, r, "invalid credentials")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func rejectUnauthorized(w http.ResponseWriter, log *logger.Logger, r *http.Request, reason string) {
	log.Warn("Operator authentication failed",
		"request_id", RequestIDFromContext(r.Context()),
		"reason", reason,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr,
	)

	w.Header().Set("WWW-Authenticate", `Basic realm="hotel", charset="UTF-8"`)
	writeJSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
}
