package handlers

import (
	"net/http"
)

// Me returns the caller's ALIVE participant in the active game.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	actor, err := h.Actor(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "unauthorized"})
		return
	}

	p, err := h.ParticipantService.GetActive(r.Context(), actor.UserID)
	if err != nil {
		h.ServiceError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: p})
}

// MyTarget returns the participant the caller is hunting. The target's own
// target and signature are stripped; a hunter learns only who to find.
func (h *Handler) MyTarget(w http.ResponseWriter, r *http.Request) {
	actor, err := h.Actor(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "unauthorized"})
		return
	}

	target, err := h.ParticipantService.GetTarget(r.Context(), actor.UserID)
	if err != nil {
		h.ServiceError(w, err)
		return
	}

	target.TargetID = nil
	target.Signature = nil

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: target})
}

// MySignature returns the caller's stored reusable signature.
func (h *Handler) MySignature(w http.ResponseWriter, r *http.Request) {
	actor, err := h.Actor(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "unauthorized"})
		return
	}

	signature, err := h.ParticipantService.GetSignature(r.Context(), actor.UserID)
	if err != nil {
		h.ServiceError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: map[string]*string{"signature": signature}})
}
