package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/go-chi/jwtauth"
	"github.com/pastanaga/killer-services/internal/gamesvc/service"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	tokenAuth *jwtauth.JWTAuth

	GameService        *service.GameService
	ParticipantService *service.ParticipantService
	EliminationService *service.EliminationService
	LeaderboardService *service.LeaderboardService
	RingService        *service.RingService
	UserService        *service.UserService
}

func NewHandler(games *service.GameService, participants *service.ParticipantService,
	eliminations *service.EliminationService, leaderboard *service.LeaderboardService,
	ring *service.RingService, users *service.UserService) *Handler {
	return &Handler{
		GameService:        games,
		ParticipantService: participants,
		EliminationService: eliminations,
		LeaderboardService: leaderboard,
		RingService:        ring,
		UserService:        users,
	}
}

type Response struct {
	Message string      `json:"message,omitempty"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	json.NewEncoder(w).Encode(rsp)
}

// ServiceError maps a domain error to the Response envelope. Validation and
// state-conflict rejections are expected outcomes of concurrent play and
// come back as 4xx; anything unrecognized is a 500 and gets logged.
func (h *Handler) ServiceError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, service.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, service.ErrNotAuthorized):
		code = http.StatusForbidden
	case errors.Is(err, service.ErrNotActiveParticipant),
		errors.Is(err, service.ErrAlreadyJoined),
		errors.Is(err, service.ErrWrongTarget),
		errors.Is(err, service.ErrVictimEliminated),
		errors.Is(err, service.ErrVictimPendingClaim),
		errors.Is(err, service.ErrAlreadyConfirmed),
		errors.Is(err, service.ErrTooFewParticipants),
		errors.Is(err, service.ErrInvalidStatus):
		code = http.StatusBadRequest
	default:
		log.Errorf("internal error: %s", err)
		h.CreateResponse(w, Response{Code: code, Error: "internal error"})
		return
	}

	h.CreateResponse(w, Response{Code: code, Error: err.Error()})
}

// Actor builds the capability value the services authorize against from
// the verified token claims.
func (h *Handler) Actor(r *http.Request) (service.Actor, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return service.Actor{}, err
	}

	actor := service.Actor{}
	if v, ok := claims["user_id"].(string); ok {
		actor.UserID = v
	}
	if v, ok := claims["role"].(string); ok {
		actor.Role = v
	}
	if actor.UserID == "" {
		return service.Actor{}, errors.New("token has no user_id claim")
	}

	return actor, nil
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "game service is running at port " + os.Getenv("GAME_SERVICE_PORT"),
		Code:    200,
	}
	json.NewEncoder(w).Encode(rsp)
}
