package server

import (
	"encoding/json"
	"sync"
)

// GameEvent is the payload published to a session's SSE subscribers after
// each gameplay action.
type GameEvent struct {
	Type              string `json:"type"`
	CityID            string `json:"cityId,omitempty"`
	Tier              string `json:"tier,omitempty"`
	PointsAwarded     int    `json:"pointsAwarded,omitempty"`
	AttemptsRemaining int    `json:"attemptsRemaining,omitempty"`
}

// Event types published by the gameplay handlers.
const (
	eventCluePresented = "clue_presented"
	eventNoMoreInfo    = "no_more_info"
	eventTravelCorrect = "travel_correct"
	eventTravelWrong   = "travel_wrong"
	eventGameOver      = "game_over"
	eventVictory       = "victory"
	eventReset         = "reset"
)

// Broker is an in-process pub/sub for SSE events, keyed by session token.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel receiving JSON-encoded events for the given
// session token.
func (b *Broker) Subscribe(token string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[token] == nil {
		b.subs[token] = make(map[chan []byte]struct{})
	}
	b.subs[token][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the session's subscribers.
func (b *Broker) Unsubscribe(token string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[token], ch)
	if len(b.subs[token]) == 0 {
		delete(b.subs, token)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of the given session.
func (b *Broker) Publish(token string, event GameEvent) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[token] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}
