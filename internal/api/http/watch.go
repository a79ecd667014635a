package http

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/scalednative/assessment-engine/internal/assessment"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WatchSessionHandler streams session snapshots (phase, cursor, remaining
// seconds) once per second so clients can render the countdown without
// polling. The stream ends with the final snapshot after submission.
func WatchSessionHandler(mgr *assessment.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		s, err := mgr.Get(id)
		if err != nil {
			http.Error(w, err.Error(), 404)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("watch upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		// Drain client frames so close messages are noticed.
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		t := time.NewTicker(time.Second)
		defer t.Stop()
		for {
			snap := s.Snapshot()
			if err := conn.WriteJSON(snap); err != nil {
				return
			}
			if snap.Phase == assessment.PhaseSubmitted {
				return
			}
			select {
			case <-closed:
				return
			case <-r.Context().Done():
				return
			case <-t.C:
			}
		}
	}
}
