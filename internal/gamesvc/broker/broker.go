package broker

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pastanaga/killer-services/internal/comm"
	"github.com/pastanaga/killer-services/internal/gamesvc/models"
	log "github.com/sirupsen/logrus"
)

// Subject carrying all game events for downstream services.
const GameEventsSubject = "game.events"

// Broker publishes committed game-state changes over NATS. Publishing is
// best-effort: a failed publish is logged and never fails the request that
// produced the event.
type Broker struct {
	Conn *nats.Conn
}

func NewBroker(nc *nats.Conn) *Broker {
	return &Broker{Conn: nc}
}

func (b *Broker) publish(ev comm.GameEvent) {
	ev.Timestamp = time.Now()

	data, err := json.Marshal(ev)
	if err != nil {
		log.Errorf("Error marshaling %s event: %s", ev.Type, err)
		return
	}

	if err := b.Conn.Publish(GameEventsSubject, data); err != nil {
		log.Errorf("Error publishing %s event for game %s: %s", ev.Type, ev.GameID, err)
	}
}

func (b *Broker) TargetsAssigned(gameID string) {
	b.publish(comm.GameEvent{
		Type:   comm.EventTargetsAssigned,
		GameID: gameID,
	})
}

func (b *Broker) EliminationSubmitted(e *models.Elimination) {
	b.publish(comm.GameEvent{
		Type:          comm.EventEliminationSubmitted,
		GameID:        e.GameID,
		EliminationID: e.ID,
		VictimID:      e.VictimID,
	})
}

func (b *Broker) EliminationConfirmed(e *models.Elimination) {
	b.publish(comm.GameEvent{
		Type:          comm.EventEliminationConfirmed,
		GameID:        e.GameID,
		EliminationID: e.ID,
		EliminatorID:  e.EliminatorID,
		VictimID:      e.VictimID,
	})
}

func (b *Broker) EliminationRejected(e *models.Elimination) {
	b.publish(comm.GameEvent{
		Type:          comm.EventEliminationRejected,
		GameID:        e.GameID,
		EliminationID: e.ID,
		VictimID:      e.VictimID,
	})
}

func (b *Broker) GameEnded(gameID, winnerID string) {
	b.publish(comm.GameEvent{
		Type:     comm.EventGameEnded,
		GameID:   gameID,
		WinnerID: winnerID,
	})
}
