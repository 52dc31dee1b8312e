package server

import (
	"net/http"
)

const adminCookieName = "admin_session"

// adminFromRequest reads the admin_session cookie and looks up the admin
// session in the store.
func adminFromRequest(r *http.Request, store Store) (adminSession, error) {
	cookie, err := r.Cookie(adminCookieName)
	if err != nil || cookie.Value == "" {
		return adminSession{}, errNoAdminSession
	}
	return store.AdminFromSession(r.Context(), cookie.Value)
}

func adminAuthMiddleware(store Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := adminFromRequest(r, store); err != nil {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
