package world

import "time"

// SchemaVersion is stored in every snapshot and checked by the persistence
// layer before decoding. Bump on any breaking change to the aggregate shape.
const SchemaVersion = "1"

// State is one complete, immutable snapshot of the world. It is never
// mutated in place: every operation takes a *State and returns a new one,
// sharing untouched entities by pointer with its predecessor.
type State struct {
	Player         *Player              `json:"player"`
	Locations      map[string]*Location `json:"locations"`
	NPCs           map[string]*NPC      `json:"npcs"`
	Factions       map[string]*Faction  `json:"factions"`
	Quests         map[string]*Quest    `json:"quests"`
	Combat         *CombatState         `json:"combatState,omitempty"`
	EventHistory   []Event              `json:"eventHistory"`
	DeceasedHeroes []DeceasedHero       `json:"deceasedHeroes,omitempty"`
	MessageLog     []string             `json:"messageLog,omitempty"`

	// ActionCounter is a monotonic version stamp incremented once per applied
	// action batch. The orchestrator uses it as an optimistic-concurrency
	// guard when persisting.
	ActionCounter int    `json:"actionCounter"`
	Version       string `json:"version"`
}

// Location returns the location with the given id, or nil.
func (s *State) Location(id string) *Location { return s.Locations[id] }

// NPC returns the NPC with the given id, or nil.
func (s *State) NPC(id string) *NPC { return s.NPCs[id] }

// Faction returns the faction with the given id, or nil.
func (s *State) Faction(id string) *Faction { return s.Factions[id] }

// Quest returns the quest with the given id, or nil.
func (s *State) Quest(id string) *Quest { return s.Quests[id] }

// EventType categorizes entries in the event history.
type EventType string

const (
	EventCombat       EventType = "combat"
	EventQuest        EventType = "quest"
	EventDiscovery    EventType = "discovery"
	EventRelationship EventType = "relationship"
	EventCrime        EventType = "crime"
	EventDeath        EventType = "death"
	EventWorld        EventType = "world"
	EventSocial       EventType = "social"
)

// Event is one entry in the append-only world event log. Significant events
// are the ones downstream systems may surface as rumors or deeds.
type Event struct {
	Type        EventType `json:"type"`
	Description string    `json:"description"`
	ActionIndex int       `json:"actionIndex"`
	Timestamp   time.Time `json:"timestamp"`
	Significant bool      `json:"isSignificant"`
}

// DeceasedHero archives a permanently dead player character.
type DeceasedHero struct {
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Level           int      `json:"level"`
	DeathNarrative  string   `json:"deathNarrative,omitempty"`
	DeathLocationID string   `json:"deathLocationId"`
	DiedAtAction    int      `json:"diedAtAction"`
	BelongingsLeft  []Item   `json:"belongingsLeft,omitempty"`
	MajorDeeds      []string `json:"majorDeeds,omitempty"`
	KnownByNpcIDs   []string `json:"knownByNpcIds,omitempty"`
}

// CombatState tracks a live encounter. Non-nil only while the referenced
// enemy NPC is alive.
type CombatState struct {
	EnemyNpcID   string   `json:"enemyNpcId"`
	PlayerTurn   bool     `json:"playerTurn"`
	Round        int      `json:"round"`
	CompanionIDs []string `json:"companionIds,omitempty"` // companions present at initiation
}
