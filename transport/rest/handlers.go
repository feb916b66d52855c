package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-server/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-server/internal/tictactoe"
)

type moveRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type cellResponse struct {
	Row  int            `json:"row"`
	Col  int            `json:"col"`
	Mark tictactoe.Mark `json:"mark"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type gameHandlers struct {
	logger *slog.Logger
	uGame  gameUseCase
}

func newGameHandlers(logger *slog.Logger, uGame gameUseCase) *gameHandlers {
	return &gameHandlers{
		logger: logger,
		uGame:  uGame,
	}
}

func (that *gameHandlers) createGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.NewGame(r.Context())
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, game)
}

func (that *gameHandlers) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *gameHandlers) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.uGame.EndGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *gameHandlers) makeMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, r, fmt.Errorf("%w: %w", apperror.ErrInvalidRequest, err))
		return
	}

	if req.Row == nil || req.Col == nil {
		that.writeError(w, r, fmt.Errorf("%w: row and col are required", apperror.ErrInvalidRequest))
		return
	}

	game, err := that.uGame.MakeMove(r.Context(), chi.URLParam(r, "id"), *req.Row, *req.Col)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *gameHandlers) restart(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.Restart(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *gameHandlers) queryCell(w http.ResponseWriter, r *http.Request) {
	row, rowErr := strconv.Atoi(chi.URLParam(r, "row"))
	col, colErr := strconv.Atoi(chi.URLParam(r, "col"))
	if err := errors.Join(rowErr, colErr); err != nil {
		that.writeError(w, r, fmt.Errorf("%w: %w", apperror.ErrInvalidRequest, err))
		return
	}

	mark, err := that.uGame.QueryCell(r.Context(), chi.URLParam(r, "id"), row, col)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, cellResponse{Row: row, Col: col, Mark: mark})
}

func (that *gameHandlers) listResults(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		var err error
		if limit, err = strconv.Atoi(raw); err != nil {
			that.writeError(w, r, fmt.Errorf("%w: limit: %w", apperror.ErrInvalidRequest, err))
			return
		}
	}

	results, err := that.uGame.Results(r.Context(), limit)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, results)
}

func (that *gameHandlers) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := that.uGame.Stats(r.Context())
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, stats)
}

func (that *gameHandlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *gameHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFromError(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "path", r.URL.Path, "error", err)
		that.writeJSON(w, status, errorResponse{Error: http.StatusText(status)})
		return
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// StatusFromError maps application errors to HTTP status codes.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrOutOfBounds), errors.Is(err, apperror.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrInvalidMove):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
