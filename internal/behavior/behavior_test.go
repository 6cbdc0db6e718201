package behavior

import (
	"reflect"
	"testing"

	"github.com/mythforge/server/internal/engine"
	"github.com/mythforge/server/internal/world"
)

func TestScoreKeywordsAndKinds(t *testing.T) {
	changes := []engine.Change{
		{Kind: engine.KindStartCombat},
		{Kind: engine.KindMovePlayer},
	}
	got := Score("I attack the wolf and then travel north", changes)

	// combat: keyword "attack" (1) + start_combat (2) = 3
	if got.Combat != 3 {
		t.Fatalf("combat = %d, want 3", got.Combat)
	}
	// exploration: keyword "travel" (1) + move_player (2) = 3
	if got.Exploration != 3 {
		t.Fatalf("exploration = %d, want 3", got.Exploration)
	}
	if got.Magic != 0 || got.Stealth != 0 {
		t.Fatalf("unrelated axes scored: %+v", got)
	}
}

func TestScoreIsCaseInsensitiveAndMultiAxis(t *testing.T) {
	got := Score("SNEAK into the camp and CAST a spell", nil)
	if got.Stealth != 1 {
		t.Fatalf("stealth = %d", got.Stealth)
	}
	// "cast" and "spell" are two separate keyword hits.
	if got.Magic != 2 {
		t.Fatalf("magic = %d", got.Magic)
	}
}

func TestScoreCountsRepeatedKinds(t *testing.T) {
	changes := []engine.Change{
		{Kind: engine.KindRecordCrime},
		{Kind: engine.KindRecordCrime},
	}
	if got := Score("", changes); got.Stealth != 4 {
		t.Fatalf("stealth = %d, want 2 per record_crime", got.Stealth)
	}
}

func TestAccumulateFoldsOntoPlayer(t *testing.T) {
	s := &world.State{
		Player: &world.Player{
			BehaviorPatterns: world.BehaviorPatterns{Combat: 5},
		},
	}
	out := Accumulate(s, "attack", []engine.Change{{Kind: engine.KindStartCombat}})

	if out.Player.BehaviorPatterns.Combat != 8 {
		t.Fatalf("combat = %d, want 8", out.Player.BehaviorPatterns.Combat)
	}
	if s.Player.BehaviorPatterns.Combat != 5 {
		t.Fatal("input snapshot mutated")
	}

	// A zero score returns the input snapshot unchanged.
	if same := Accumulate(s, "nothing of note", nil); same != s {
		t.Fatal("zero score should return the input")
	}
}

func TestDominantRequiresThresholdAndFloor(t *testing.T) {
	// Mean = (12+2+1+1+1+1)/6 = 3; threshold 4.5; combat 12 qualifies.
	bp := world.BehaviorPatterns{Combat: 12, Diplomacy: 2, Exploration: 1, Social: 1, Stealth: 1, Magic: 1}
	if got := Dominant(bp); !reflect.DeepEqual(got, []string{AxisCombat}) {
		t.Fatalf("dominant = %v", got)
	}

	// Small samples never produce a label: 2 > threshold but below floor 3.
	bp = world.BehaviorPatterns{Combat: 2}
	if got := Dominant(bp); got != nil {
		t.Fatalf("dominant = %v, want none", got)
	}

	// A flat profile has no dominant axis.
	bp = world.BehaviorPatterns{Combat: 10, Diplomacy: 10, Exploration: 10, Social: 10, Stealth: 10, Magic: 10}
	if got := Dominant(bp); got != nil {
		t.Fatalf("dominant = %v, want none", got)
	}
}

func TestDominantSortsDescending(t *testing.T) {
	bp := world.BehaviorPatterns{Combat: 20, Magic: 30}
	// Mean = 50/6 ≈ 8.33; threshold 12.5; both pass floor and threshold.
	got := Dominant(bp)
	want := []string{AxisMagic, AxisCombat}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("dominant = %v, want %v", got, want)
	}
}
