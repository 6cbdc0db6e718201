package world

// Player holds the single player character.
type Player struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	Health     int `json:"health"`
	MaxHealth  int `json:"maxHealth"`
	Strength   int `json:"strength"`
	Defense    int `json:"defense"`
	Magic      int `json:"magic"`
	Level      int `json:"level"`
	Experience int `json:"experience"`
	Gold       int `json:"gold"`

	Inventory         []Item   `json:"inventory,omitempty"`
	CurrentLocationID string   `json:"currentLocationId"`
	HomeLocationID    string   `json:"homeLocationId,omitempty"`
	CompanionIDs      []string `json:"companionIds,omitempty"`

	Knowledge        Knowledge        `json:"knowledge"`
	BehaviorPatterns BehaviorPatterns `json:"behaviorPatterns"`

	Transformations   []string `json:"transformations,omitempty"`
	Curses            []string `json:"curses,omitempty"`
	Blessings         []string `json:"blessings,omitempty"`
	RevealedBackstory []string `json:"revealedBackstory,omitempty"`

	MarriedToNpcID string   `json:"marriedToNpcId,omitempty"`
	ChildrenNpcIDs []string `json:"childrenNpcIds,omitempty"`

	Crimes   []Crime  `json:"crimes,omitempty"`   // append-only
	Bounties []Bounty `json:"bounties,omitempty"` // mutable list
}

// Knowledge is the player's accumulated explicit memory.
type Knowledge struct {
	LocationIDs []string          `json:"locationIds,omitempty"`
	NpcIDs      []string          `json:"npcIds,omitempty"`
	Lore        []string          `json:"lore,omitempty"`
	Recipes     []string          `json:"recipes,omitempty"`
	Skills      map[string]string `json:"skills,omitempty"` // skill name -> ladder level
}

// BehaviorPatterns accumulates per-axis action scores.
type BehaviorPatterns struct {
	Combat      int `json:"combat"`
	Diplomacy   int `json:"diplomacy"`
	Exploration int `json:"exploration"`
	Social      int `json:"social"`
	Stealth     int `json:"stealth"`
	Magic       int `json:"magic"`
}

// Item is a carried or placed object. Effect is the magnitude of the item's
// use effect (heal amount for potions).
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Kind        string `json:"kind,omitempty"`
	Description string `json:"description,omitempty"`
	Effect      int    `json:"effect,omitempty"`
}

// HasCompanion reports whether the NPC id is in the player's companion set.
func (p *Player) HasCompanion(npcID string) bool {
	return containsString(p.CompanionIDs, npcID)
}

// FindItem returns the index of the first inventory item with the given id,
// or -1.
func (p *Player) FindItem(itemID string) int {
	for i, it := range p.Inventory {
		if it.ID == itemID {
			return i
		}
	}
	return -1
}

// FindItemByKind returns the index of the first inventory item of the given
// kind, or -1.
func (p *Player) FindItemByKind(kind string) int {
	for i, it := range p.Inventory {
		if it.Kind == kind {
			return i
		}
	}
	return -1
}

// FindBounty returns the index of the bounty with the given id, or -1.
func (p *Player) FindBounty(bountyID string) int {
	for i, b := range p.Bounties {
		if b.ID == bountyID {
			return i
		}
	}
	return -1
}
