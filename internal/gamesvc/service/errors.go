package service

import "errors"

// Domain errors returned by the game services. Handlers match them with
// errors.Is; none of them implies any state was mutated.
var (
	// ErrNotFound is returned when a referenced game, participant or
	// elimination does not exist.
	ErrNotFound = errors.New("not found")

	// ErrTooFewParticipants is returned by the target ring builder when
	// fewer than three participants are supplied.
	ErrTooFewParticipants = errors.New("at least 3 participants are required")

	// ErrAlreadyJoined is returned when a user already has a participant in
	// the game.
	ErrAlreadyJoined = errors.New("user already joined this game")

	// Submission guard rejections, in check order.
	ErrNotActiveParticipant = errors.New("not an active participant")
	ErrWrongTarget          = errors.New("not your assigned target")
	ErrVictimEliminated     = errors.New("victim already eliminated")
	ErrVictimPendingClaim   = errors.New("victim already has a pending elimination")

	// Confirmation engine rejections.
	ErrAlreadyConfirmed = errors.New("elimination already confirmed")
	ErrNotAuthorized    = errors.New("not authorized to confirm")

	// ErrInvalidStatus is returned for an unknown or disallowed game
	// status transition.
	ErrInvalidStatus = errors.New("invalid game status")
)
