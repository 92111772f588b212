package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/pastanaga/killer-services/internal/gamesvc/service"
)

// SubmitElimination records a kill claim against the caller's assigned
// target. The caller is resolved to their active participant first, so a
// forged eliminator id in the payload is impossible.
func (h *Handler) SubmitElimination(w http.ResponseWriter, r *http.Request) {
	actor, err := h.Actor(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "unauthorized"})
		return
	}

	var req struct {
		TargetID        string   `json:"target_id"`
		KillerSignature string   `json:"killer_signature"`
		Method          string   `json:"method"`
		Location        string   `json:"location"`
		Witnesses       []string `json:"witnesses"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}
	if req.TargetID == "" || req.KillerSignature == "" {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "target_id and killer_signature are required"})
		return
	}

	participant, err := h.ParticipantService.GetActive(r.Context(), actor.UserID)
	if err != nil {
		h.ServiceError(w, err)
		return
	}

	result, err := h.EliminationService.Submit(r.Context(), service.SubmitRequest{
		EliminatorID:    participant.ID,
		VictimID:        req.TargetID,
		KillerSignature: req.KillerSignature,
		Method:          req.Method,
		Location:        req.Location,
		Witnesses:       req.Witnesses,
	})
	if err != nil {
		h.ServiceError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusCreated, Message: result.Message, Data: result})
}

func (h *Handler) ListEliminations(w http.ResponseWriter, r *http.Request) {
	actor, err := h.Actor(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "unauthorized"})
		return
	}

	gameID := r.URL.Query().Get("gameId")
	if gameID == "" {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "gameId is required"})
		return
	}

	var confirmed *bool
	if v := r.URL.Query().Get("confirmed"); v != "" {
		b := v == "true"
		confirmed = &b
	}

	eliminations, err := h.EliminationService.List(r.Context(), gameID, confirmed, actor)
	if err != nil {
		h.ServiceError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: eliminations})
}

func (h *Handler) ConfirmElimination(w http.ResponseWriter, r *http.Request) {
	actor, err := h.Actor(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "unauthorized"})
		return
	}

	result, err := h.EliminationService.Confirm(r.Context(), chi.URLParam(r, "eliminationID"), actor)
	if err != nil {
		h.ServiceError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Message: "elimination confirmed", Data: result})
}

func (h *Handler) RejectElimination(w http.ResponseWriter, r *http.Request) {
	actor, err := h.Actor(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "unauthorized"})
		return
	}

	if err := h.EliminationService.Reject(r.Context(), chi.URLParam(r, "eliminationID"), actor); err != nil {
		h.ServiceError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Message: "pending elimination rejected"})
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("gameId")
	if gameID == "" {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "gameId is required"})
		return
	}

	entries, err := h.LeaderboardService.GetLeaderboard(r.Context(), gameID)
	if err != nil {
		h.ServiceError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: entries})
}
