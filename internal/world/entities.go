package world

// NPCStats holds an NPC's combat-relevant numbers.
type NPCStats struct {
	Health    int `json:"health"`
	MaxHealth int `json:"maxHealth"`
	Strength  int `json:"strength"`
	Defense   int `json:"defense"`
}

// NPC is a non-player character. NPCs are never deleted, only marked dead.
type NPC struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	CurrentLocationID string `json:"currentLocationId"`
	HomeLocationID    string `json:"homeLocationId,omitempty"`

	Attitude    int  `json:"attitude"` // [-100, 100]
	IsCompanion bool `json:"isCompanion"`
	IsAlive     bool `json:"isAlive"`

	Inventory  []Item   `json:"inventory,omitempty"`
	Stats      NPCStats `json:"stats"`
	FactionIDs []string `json:"factionIds,omitempty"`

	// Narrative memory.
	Knowledge           []string `json:"knowledge,omitempty"`
	ConversationHistory []string `json:"conversationHistory,omitempty"`
	RumorsHeard         []string `json:"rumorsHeard,omitempty"`
}

// Coordinates addresses a location on the integer world grid.
type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Structure is a named construction inside a location.
type Structure struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Location is one node of the world graph.
type Location struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	Coordinates Coordinates `json:"coordinates"`
	Terrain     string      `json:"terrain,omitempty"`
	DangerLevel int         `json:"dangerLevel,omitempty"`

	PresentNpcIDs []string    `json:"presentNpcIds,omitempty"`
	Items         []Item      `json:"items,omitempty"`
	Structures    []Structure `json:"structures,omitempty"`

	// IsCanonical marks authored seed content as opposed to locations
	// materialized mid-session by the narrative layer.
	IsCanonical bool `json:"isCanonical,omitempty"`

	// LastVisitedAtAction is the action counter of the player's last visit
	// (0 = never visited; the counter starts at 1).
	LastVisitedAtAction int `json:"lastVisitedAtAction,omitempty"`
}

// FindItem returns the index of the first item with the given id, or -1.
func (l *Location) FindItem(itemID string) int {
	for i, it := range l.Items {
		if it.ID == itemID {
			return i
		}
	}
	return -1
}

// FindStructure returns the index of the structure with the given name
// (loose match), or -1.
func (l *Location) FindStructure(name string) int {
	for i, st := range l.Structures {
		if LooseMatch(st.Name, name) {
			return i
		}
	}
	return -1
}

// Faction is a political or social group the player holds reputation with.
type Faction struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	PlayerReputation int `json:"playerReputation"` // [-100, 100]

	MemberNpcIDs []string `json:"memberNpcIds,omitempty"`
	LeaderNpcID  string   `json:"leaderNpcId,omitempty"`
}

// QuestStatus enumerates the quest lifecycle.
type QuestStatus string

const (
	QuestActive     QuestStatus = "active"
	QuestCompleted  QuestStatus = "completed"
	QuestFailed     QuestStatus = "failed"
	QuestImpossible QuestStatus = "impossible"
)

// ValidQuestStatus reports whether s is a known quest status.
func ValidQuestStatus(s QuestStatus) bool {
	switch s {
	case QuestActive, QuestCompleted, QuestFailed, QuestImpossible:
		return true
	}
	return false
}

// QuestReward is the optional payout attached to a quest.
type QuestReward struct {
	Gold       int    `json:"gold,omitempty"`
	Experience int    `json:"experience,omitempty"`
	Items      []Item `json:"items,omitempty"`
}

// Quest tracks a multi-objective task given by an NPC.
type Quest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	GiverNpcID  string `json:"giverNpcId"`

	Status              QuestStatus  `json:"status"`
	Objectives          []string     `json:"objectives"`
	CompletedObjectives []string     `json:"completedObjectives,omitempty"`
	Rewards             *QuestReward `json:"rewards,omitempty"`
}
