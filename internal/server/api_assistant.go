package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Tyrowin/moodsync/internal/assistant"
	"github.com/Tyrowin/moodsync/internal/middleware"
)

// AssistantHandler serves one assistant endpoint. It always answers 200 with
// {success:true, response}; generation problems surface as fallback text.
func (s *Server) AssistantHandler(ep assistant.Endpoint) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req assistant.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			s.log.Debug().Err(err).Str("endpoint", ep.Name).Msg("unreadable assistant request; using defaults")
			req = assistant.Request{}
		}

		event := s.log.Debug().Str("endpoint", ep.Name)
		if subject, ok := middleware.Subject(r.Context()); ok {
			event = event.Str("user", subject)
		}
		event.Msg("assistant request")

		s.JSON(w, http.StatusOK, map[string]any{
			"success":  true,
			"response": s.assistant.Respond(r.Context(), ep, req),
		})
	}
}
