package server

import (
	"errors"
	"net/http"
	"strings"
)

var errNoToken = errors.New("no session token")

// tokenFromRequest extracts the Bearer session token identifying one
// playthrough. The token is the durable-store key; the sessionId inside
// the state is the isolation authority and changes on every reset.
func tokenFromRequest(r *http.Request) (string, error) {
	auth := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(auth, "Bearer ")
	if !found || token == "" {
		return "", errNoToken
	}
	return token, nil
}
