package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/mathblitz/internal/leaderboard"
)

// Client-facing error strings.
const (
	errInvalidData       = "Invalid data format"
	errScoreOutOfRange   = "Score out of range"
	errIncorrectPassword = "Incorrect password"
	errResetDisabled     = "Reset is disabled"
	errStorage           = "Leaderboard unavailable"
)

const maxBodyBytes = 4 << 10

type apiError struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func errorBody(msg string) apiError {
	return apiError{OK: false, Error: msg}
}

// submitRequest mirrors the POST body. Pointers distinguish absent fields.
type submitRequest struct {
	Name      string `json:"name"`
	Score     *int   `json:"score"`
	Level     *int   `json:"level"`
	SessionID string `json:"session_id"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// top loads the ranked board. Concurrent callers share one read, which runs
// detached from any single caller so one disconnect cannot fail the others.
func (s *Server) top(r *http.Request) ([]leaderboard.Entry, error) {
	ch := s.sf.DoChan("top", func() (any, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), s.opts.RequestTimeout)
		defer cancel()
		return s.board.Top(ctx, s.opts.MaxEntries)
	})

	select {
	case <-r.Context().Done():
		return nil, r.Context().Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		entries := res.Val.([]leaderboard.Entry)
		if entries == nil {
			entries = []leaderboard.Entry{}
		}
		return entries, nil
	}
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	entries, err := s.top(r)
	if err != nil {
		s.logger.Error().Err(err).Msg("read leaderboard")
		writeJSON(w, http.StatusInternalServerError, errorBody(errStorage))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(errInvalidData))
		return
	}
	if err := validateBody(submitSchema, raw); err != nil {
		s.logger.Debug().Err(err).Msg("rejected submission")
		writeJSON(w, http.StatusBadRequest, errorBody(errInvalidData))
		return
	}

	var req submitRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(errInvalidData))
		return
	}

	score := 0
	if req.Score != nil {
		score = *req.Score
	}
	if score < 0 || score > s.opts.MaxScore {
		writeJSON(w, http.StatusBadRequest, errorBody(errScoreOutOfRange))
		return
	}
	level := 1
	if req.Level != nil && *req.Level > 0 {
		level = *req.Level
	}

	entry := leaderboard.Entry{
		Name:  leaderboard.NormalizeNameOrDefault(req.Name),
		Score: score,
		Level: level,
		Date:  s.opts.Now().UTC(),
	}
	board, changed, err := s.board.Submit(r.Context(), entry)
	if err != nil {
		s.logger.Error().Err(err).Str("name", entry.Name).Msg("submit score")
		writeJSON(w, http.StatusInternalServerError, errorBody(errStorage))
		return
	}

	s.logger.Info().
		Str("name", entry.Name).
		Int("score", entry.Score).
		Int("level", entry.Level).
		Str("session_id", req.SessionID).
		Bool("changed", changed).
		Msg("score submitted")
	if changed {
		s.hub.Broadcast(board)
	}
	writeJSON(w, http.StatusOK, leaderboard.SubmitResponse{OK: true, Board: board})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil || validateBody(resetSchema, raw) != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(errInvalidData))
		return
	}
	var req leaderboard.ResetRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(errInvalidData))
		return
	}

	if len(s.opts.ResetPasswordHash) == 0 {
		writeJSON(w, http.StatusForbidden, errorBody(errResetDisabled))
		return
	}
	if bcrypt.CompareHashAndPassword(s.opts.ResetPasswordHash, []byte(req.Password)) != nil {
		s.logger.Warn().Msg("reset rejected: incorrect password")
		writeJSON(w, http.StatusForbidden, errorBody(errIncorrectPassword))
		return
	}

	if err := s.board.Reset(r.Context()); err != nil {
		s.logger.Error().Err(err).Msg("reset leaderboard")
		writeJSON(w, http.StatusInternalServerError, errorBody(errStorage))
		return
	}
	s.logger.Info().Msg("leaderboard reset")
	s.hub.Broadcast([]leaderboard.Entry{})
	writeJSON(w, http.StatusOK, leaderboard.ResetResult{OK: true})
}

// handleLive upgrades to a websocket that receives the current board and
// then every change.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	initial, err := s.top(r)
	if err != nil {
		s.logger.Error().Err(err).Msg("read leaderboard")
		writeJSON(w, http.StatusInternalServerError, errorBody(errStorage))
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	updates, cancel := s.hub.Subscribe(initial)
	defer cancel()

	// Reads only detect the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case board, ok := <-updates:
			if !ok {
				return
			}
			msg := leaderboard.LiveMessage{Type: leaderboard.LiveMessageBoard, Payload: board}
			if err := conn.WriteJSON(msg); err != nil {
				s.logger.Debug().Err(err).Msg("ws write error")
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}
