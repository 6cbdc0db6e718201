package engine

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestApplyEmptyBatchReturnsInputUnchanged(t *testing.T) {
	e := testEngine(stubRoller{})
	s := testState()

	res := e.Apply(s, nil)
	if res.State != s {
		t.Fatal("empty batch should return the input snapshot")
	}
	if res.State.ActionCounter != 1 {
		t.Fatalf("action counter = %d, want 1", res.State.ActionCounter)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
}

func TestApplyIncrementsCounterOncePerBatch(t *testing.T) {
	e := testEngine(stubRoller{})
	s := testState()

	res := e.Apply(s, []Change{
		ch(KindDamagePlayer, map[string]any{"amount": 1}),
		ch(KindHealPlayer, map[string]any{"amount": 1}),
		ch(KindUpdateGold, map[string]any{"amount": 5}),
	})
	if res.State.ActionCounter != 2 {
		t.Fatalf("action counter = %d, want 2", res.State.ActionCounter)
	}
}

func TestApplyUnknownKindWarnsAndContinues(t *testing.T) {
	e := testEngine(stubRoller{})
	s := testState()

	res := e.Apply(s, []Change{
		ch(Kind("summon_dragon"), nil),
		ch(KindUpdateGold, map[string]any{"amount": 5}),
	})
	if len(res.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", res.Warnings)
	}
	if res.Warnings[0].Kind != "summon_dragon" {
		t.Fatalf("warning kind = %q", res.Warnings[0].Kind)
	}
	if res.State.Player.Gold != 15 {
		t.Fatalf("gold = %d, want 15 (batch should continue past unknown kind)", res.State.Player.Gold)
	}
}

func TestApplyNeverMutatesInputSnapshot(t *testing.T) {
	e := testEngine(stubRoller{})
	s := testState()

	before, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}

	e.Apply(s, []Change{
		ch(KindMovePlayer, map[string]any{"locationId": "forest"}),
		ch(KindDamagePlayer, map[string]any{"amount": 10}),
		ch(KindAddItem, map[string]any{"item": map[string]any{"name": "Rope"}}),
		ch(KindCreateNPC, map[string]any{"name": "Stranger"}),
		ch(KindMoveNPC, map[string]any{"npcId": "elda", "toLocationId": "forest"}),
		ch(KindAddCompanion, map[string]any{"npcId": "elda"}),
		ch(KindStartCombat, map[string]any{"npcId": "wolf"}),
	})

	after, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Fatal("input snapshot was mutated by Apply")
	}
}

func TestApplyMalformedDataIsDroppedNotFatal(t *testing.T) {
	e := testEngine(stubRoller{})
	s := testState()

	res := e.Apply(s, []Change{
		ch(KindDamagePlayer, map[string]any{"amount": "not a number"}),
		ch(KindMovePlayer, map[string]any{}),
		ch(KindUpdateNPCAttitude, map[string]any{"npcId": "nobody", "delta": 5}),
	})
	if len(res.Warnings) != 3 {
		t.Fatalf("warnings = %v, want 3", res.Warnings)
	}
	if res.State.Player.Health != 30 {
		t.Fatalf("health = %d, want untouched 30", res.State.Player.Health)
	}
}

func TestApplyLenientNumericDecoding(t *testing.T) {
	e := testEngine(stubRoller{})

	cases := []struct {
		name   string
		amount any
	}{
		{"float64", float64(7)},
		{"int", int(7)},
		{"json.Number", json.Number("7")},
		{"digit string", "7"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := e.Apply(testState(), []Change{
				ch(KindDamagePlayer, map[string]any{"amount": tc.amount}),
			})
			if len(res.Warnings) != 0 {
				t.Fatalf("warnings: %v", res.Warnings)
			}
			if res.State.Player.Health != 23 {
				t.Fatalf("health = %d, want 23", res.State.Player.Health)
			}
		})
	}
}

func TestApplyStringPromotedToList(t *testing.T) {
	e := testEngine(stubRoller{})
	res := e.Apply(testState(), []Change{
		ch(KindAddQuest, map[string]any{
			"id":         "q1",
			"title":      "Clear the Forest",
			"giverNpcId": "guard",
			"objectives": "Slay the wolf",
		}),
	})
	q := res.State.Quest("q1")
	if q == nil {
		t.Fatal("quest not created")
	}
	if len(q.Objectives) != 1 || q.Objectives[0] != "Slay the wolf" {
		t.Fatalf("objectives = %v", q.Objectives)
	}
}
