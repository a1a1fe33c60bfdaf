package middleware

import (
	"net/http"
)

// CredentialCheck verifies an admin username/password pair.
type CredentialCheck func(username, password string) bool

// RequireAdmin guards a route with HTTP Basic authentication. There are no
// sessions or tokens; every request re-presents the credential.
func RequireAdmin(verify CredentialCheck) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", `Basic realm="admin"`)
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}
			if !verify(username, password) {
				http.Error(w, "Invalid credentials", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IsAdmin reports whether the request carries valid admin credentials.
// Used by read and create paths where admin access changes behavior
// (password bypass, upload-toggle bypass) without being mandatory.
func IsAdmin(r *http.Request, verify CredentialCheck) bool {
	username, password, ok := r.BasicAuth()
	if !ok {
		return false
	}
	return verify(username, password)
}
