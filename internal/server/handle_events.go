package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/stadtaev/citychase/internal/game"
)

func handleEvents(mgr *game.Manager, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			writeError(w, http.StatusUnauthorized, "token query parameter required")
			return
		}

		state, err := mgr.Restore(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if state == nil {
			writeError(w, http.StatusUnauthorized, "invalid session token")
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		flusher.Flush()

		ch := broker.Subscribe(token)
		defer broker.Unsubscribe(token, ch)

		ping := time.NewTicker(30 * time.Second)
		defer ping.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case data := <-ch:
				fmt.Fprintf(w, "event: game\ndata: %s\n\n", data)
				flusher.Flush()
			case <-ping.C:
				fmt.Fprintf(w, ": ping\n\n")
				flusher.Flush()
			}
		}
	}
}
