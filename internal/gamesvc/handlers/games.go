package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/pastanaga/killer-services/internal/gamesvc/models"
	"github.com/pastanaga/killer-services/internal/gamesvc/service"
)

func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	actor, err := h.Actor(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "unauthorized"})
		return
	}
	if !models.IsOrganizerRole(actor.Role) {
		h.CreateResponse(w, Response{Code: http.StatusForbidden, Error: "organizer role required"})
		return
	}

	var req struct {
		Name        string     `json:"name"`
		Description string     `json:"description"`
		StartDate   *time.Time `json:"start_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	game, err := h.GameService.CreateGame(r.Context(), req.Name, req.Description, req.StartDate)
	if err != nil {
		h.ServiceError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusCreated, Data: game})
}

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	actor, err := h.Actor(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "unauthorized"})
		return
	}
	if !models.IsOrganizerRole(actor.Role) {
		h.CreateResponse(w, Response{Code: http.StatusForbidden, Error: "organizer role required"})
		return
	}

	games, err := h.GameService.ListGames(r.Context())
	if err != nil {
		h.ServiceError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: games})
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := h.GameService.GetGame(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		h.ServiceError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: game})
}

func (h *Handler) UpdateGameStatus(w http.ResponseWriter, r *http.Request) {
	actor, err := h.Actor(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "unauthorized"})
		return
	}
	if !models.IsOrganizerRole(actor.Role) {
		h.CreateResponse(w, Response{Code: http.StatusForbidden, Error: "organizer role required"})
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	game, err := h.GameService.UpdateStatus(r.Context(), chi.URLParam(r, "gameID"), req.Status)
	if err != nil {
		h.ServiceError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: game})
}

// CreateParticipants provisions accounts and participants for a roster the
// organizer submits while the game is in SETUP.
func (h *Handler) CreateParticipants(w http.ResponseWriter, r *http.Request) {
	actor, err := h.Actor(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "unauthorized"})
		return
	}
	if !models.IsOrganizerRole(actor.Role) {
		h.CreateResponse(w, Response{Code: http.StatusForbidden, Error: "organizer role required"})
		return
	}

	var req struct {
		Participants []struct {
			Email string  `json:"email"`
			Name  string  `json:"name"`
			Group string  `json:"group"`
			Photo *string `json:"photo"`
		} `json:"participants"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	roster := make([]service.NewParticipant, 0, len(req.Participants))
	for _, entry := range req.Participants {
		user, err := h.UserService.GetOrCreateUser(r.Context(), entry.Email, entry.Name)
		if err != nil {
			h.ServiceError(w, err)
			return
		}
		roster = append(roster, service.NewParticipant{
			UserID:   user.ID,
			Nickname: entry.Name,
			Group:    entry.Group,
			Photo:    entry.Photo,
		})
	}

	created, err := h.ParticipantService.CreateParticipants(r.Context(), chi.URLParam(r, "gameID"), roster)
	if err != nil {
		h.ServiceError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusCreated, Data: created})
}

// AssignTargets builds the target ring over the game's living participants
// and starts the game if it was still in SETUP.
func (h *Handler) AssignTargets(w http.ResponseWriter, r *http.Request) {
	actor, err := h.Actor(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "unauthorized"})
		return
	}
	if !models.IsOrganizerRole(actor.Role) {
		h.CreateResponse(w, Response{Code: http.StatusForbidden, Error: "organizer role required"})
		return
	}

	assignments, err := h.RingService.AssignTargets(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		h.ServiceError(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Code:    http.StatusOK,
		Message: "targets assigned",
		Data:    map[string]int{"assigned": len(assignments)},
	})
}
