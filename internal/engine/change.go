package engine

import (
	"fmt"

	"github.com/mythforge/server/internal/world"
)

// Kind tags a state change request. The set is closed: apply.go's dispatch
// switch covers every kind, and unknown tags degrade to a warning.
type Kind string

const (
	// Player scalars.
	KindMovePlayer   Kind = "move_player"
	KindDamagePlayer Kind = "damage_player"
	KindHealPlayer   Kind = "heal_player"
	KindUpdateGold   Kind = "update_gold"
	KindAddKnowledge Kind = "add_knowledge"

	// Inventory transfer.
	KindAddItem    Kind = "add_item"
	KindRemoveItem Kind = "remove_item"

	// NPC lifecycle.
	KindCreateNPC         Kind = "create_npc"
	KindMoveNPC           Kind = "move_npc"
	KindUpdateNPCAttitude Kind = "update_npc_attitude"
	KindNPCDeath          Kind = "npc_death"

	// Companions.
	KindAddCompanion      Kind = "add_companion"
	KindRemoveCompanion   Kind = "remove_companion"
	KindCompanionWaitHome Kind = "companion_wait_home"
	KindCompanionRejoin   Kind = "companion_rejoin"

	// World generation.
	KindCreateLocation   Kind = "create_location"
	KindCreateStructure  Kind = "create_structure"
	KindDestroyStructure Kind = "destroy_structure"
	KindUpdateLocation   Kind = "update_location"

	// Quests.
	KindAddQuest    Kind = "add_quest"
	KindUpdateQuest Kind = "update_quest"

	// Factions.
	KindUpdateFactionReputation Kind = "update_faction_reputation"

	// Home ownership.
	KindClaimHome        Kind = "claim_home"
	KindStoreItemHome    Kind = "store_item_home"
	KindRetrieveItemHome Kind = "retrieve_item_home"

	// Relationships.
	KindUpdateRelationship Kind = "update_relationship"

	// Transformations, curses, blessings.
	KindAddTransformation    Kind = "add_transformation"
	KindRemoveTransformation Kind = "remove_transformation"
	KindAddCurse             Kind = "add_curse"
	KindRemoveCurse          Kind = "remove_curse"
	KindAddBlessing          Kind = "add_blessing"
	KindRemoveBlessing       Kind = "remove_blessing"

	// Skills and backstory.
	KindPracticeSkill   Kind = "practice_skill"
	KindRevealBackstory Kind = "reveal_backstory"

	// Crime and bounties.
	KindRecordCrime  Kind = "record_crime"
	KindAddBounty    Kind = "add_bounty"
	KindUpdateBounty Kind = "update_bounty"
	KindRemoveBounty Kind = "remove_bounty"

	// Combat and death.
	KindStartCombat Kind = "start_combat"
	KindPlayerDeath Kind = "player_death"
)

// Change is one tagged mutation request. Data originates from a generative
// process and is untrusted: handlers validate every field and tolerate
// unknown extras.
type Change struct {
	Kind Kind           `json:"kind"`
	Data map[string]any `json:"data"`
}

// Warning reports a change that was dropped or partially applied. Warnings
// are the reducer's diagnostic side channel; they never abort the batch.
type Warning struct {
	Kind   Kind   `json:"kind"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

func (w Warning) String() string {
	if w.Field != "" {
		return fmt.Sprintf("%s: %s: %s", w.Kind, w.Field, w.Reason)
	}
	return fmt.Sprintf("%s: %s", w.Kind, w.Reason)
}

// Result carries the snapshot produced by an apply call plus everything that
// was dropped along the way.
type Result struct {
	State    *world.State
	Warnings []Warning
}

func (r *Result) warn(kind Kind, field, reason string) {
	r.Warnings = append(r.Warnings, Warning{Kind: kind, Field: field, Reason: reason})
}

func (r *Result) warnf(kind Kind, field, format string, args ...any) {
	r.warn(kind, field, fmt.Sprintf(format, args...))
}
