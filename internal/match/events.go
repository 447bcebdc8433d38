package match

import "time"

// EventType represents a match event type with type safety
type EventType string

// EventType constants for match domain events
const (
	EventTypeRoundStart    EventType = "round_start"
	EventTypeRoundEnd      EventType = "round_end"
	EventTypeMatchEnd      EventType = "match_end"
	EventTypeElimination   EventType = "elimination"
	EventTypeStateChanged  EventType = "state_changed"
	EventTypeNotice        EventType = "notice"
	EventTypeThrow         EventType = "throw"
	EventTypeStatusRefresh EventType = "status_refresh"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a match
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartEvent is published when a round begins
type RoundStartEvent struct {
	Round     int
	MaxRounds int
	Deadline  time.Time
	timestamp time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// RoundEndEvent is published once a round has been scored
type RoundEndEvent struct {
	Round     int
	Outcome   RoundOutcome
	ScoreRed  int
	ScoreBlue int
	timestamp time.Time
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }
func (e RoundEndEvent) Timestamp() time.Time { return e.timestamp }

// MVP is the player with the most kills at match end
type MVP struct {
	PlayerID string
	Kills    int
}

// MatchEndEvent is published when a team reaches the win score
type MatchEndEvent struct {
	Winner    Team
	ScoreRed  int
	ScoreBlue int
	Rounds    int
	MVP       *MVP // nil when nobody is present
	timestamp time.Time
}

func (e MatchEndEvent) EventType() EventType { return EventTypeMatchEnd }
func (e MatchEndEvent) Timestamp() time.Time { return e.timestamp }

// EliminationEvent is published when a hit drops a player to zero health
type EliminationEvent struct {
	AttackerID string
	TargetID   string
	timestamp  time.Time
}

func (e EliminationEvent) EventType() EventType { return EventTypeElimination }
func (e EliminationEvent) Timestamp() time.Time { return e.timestamp }

// StateChangedEvent carries a fresh status for one player after a hit,
// throw or refill
type StateChangedEvent struct {
	Status    Status
	timestamp time.Time
}

func (e StateChangedEvent) EventType() EventType { return EventTypeStateChanged }
func (e StateChangedEvent) Timestamp() time.Time { return e.timestamp }

// NoticeKind identifies a transient message shown to a single player
type NoticeKind string

const (
	NoticeNoAmmo     NoticeKind = "no_ammo"
	NoticeAmmoFull   NoticeKind = "ammo_full"
	NoticeRefilled   NoticeKind = "refilled"
	NoticeEliminated NoticeKind = "eliminated"
	NoticeCooldown   NoticeKind = "cooldown"
)

// NoticeEvent is published when a single player should see a notice
type NoticeEvent struct {
	PlayerID  string
	Kind      NoticeKind
	timestamp time.Time
}

func (e NoticeEvent) EventType() EventType { return EventTypeNotice }
func (e NoticeEvent) Timestamp() time.Time { return e.timestamp }

// ThrowEvent is published when a player releases a snowball. The physics
// collaborator turns it into a later Hit, or nothing.
type ThrowEvent struct {
	PlayerID  string
	Team      Team
	timestamp time.Time
}

func (e ThrowEvent) EventType() EventType { return EventTypeThrow }
func (e ThrowEvent) Timestamp() time.Time { return e.timestamp }

// StatusRefreshEvent is the periodic overlay refresh for every present player
type StatusRefreshEvent struct {
	Statuses  []Status
	timestamp time.Time
}

func (e StatusRefreshEvent) EventType() EventType { return EventTypeStatusRefresh }
func (e StatusRefreshEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to match events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// SubscriberFunc adapts a function to EventSubscriber
type SubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f SubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus delivers events synchronously in subscription order
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
