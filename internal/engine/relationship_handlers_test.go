package engine

import "testing"

func TestMarryAndDivorce(t *testing.T) {
	e := testEngine(stubRoller{})
	s := e.Apply(testState(), []Change{
		ch(KindUpdateRelationship, map[string]any{"type": "marry", "npcId": "elda", "attitudeDelta": 30}),
	}).State

	if s.Player.MarriedToNpcID != "elda" {
		t.Fatalf("marriedTo = %q", s.Player.MarriedToNpcID)
	}
	if s.NPC("elda").Attitude != 70 {
		t.Fatalf("attitude = %d, want 70", s.NPC("elda").Attitude)
	}

	// A second marriage is refused while the first stands.
	res := e.Apply(s, []Change{
		ch(KindUpdateRelationship, map[string]any{"type": "marry", "npcId": "guard"}),
	})
	if res.State.Player.MarriedToNpcID != "elda" || len(res.Warnings) != 1 {
		t.Fatalf("marriedTo=%q warnings=%v", res.State.Player.MarriedToNpcID, res.Warnings)
	}

	s = e.Apply(s, []Change{
		ch(KindUpdateRelationship, map[string]any{"type": "divorce"}),
	}).State
	if s.Player.MarriedToNpcID != "" {
		t.Fatal("divorce did not clear the marriage")
	}
}

func TestDivorceWrongSpouseRejected(t *testing.T) {
	e := testEngine(stubRoller{})
	res := e.Apply(testState(), []Change{
		ch(KindUpdateRelationship, map[string]any{"type": "marry", "npcId": "elda"}),
		ch(KindUpdateRelationship, map[string]any{"type": "divorce", "npcId": "guard"}),
	})
	if res.State.Player.MarriedToNpcID != "elda" || len(res.Warnings) != 1 {
		t.Fatalf("marriedTo=%q warnings=%v", res.State.Player.MarriedToNpcID, res.Warnings)
	}
}

func TestHaveChildMaterializesNPC(t *testing.T) {
	e := testEngine(stubRoller{})
	s := e.Apply(testState(), []Change{
		ch(KindUpdateRelationship, map[string]any{"type": "have_child", "childName": "Ada"}),
	}).State

	if len(s.Player.ChildrenNpcIDs) != 1 {
		t.Fatalf("children = %v", s.Player.ChildrenNpcIDs)
	}
	childID := s.Player.ChildrenNpcIDs[0]
	child := s.NPC(childID)
	if child == nil || !child.IsAlive || child.Attitude != 80 {
		t.Fatalf("child = %+v", child)
	}
	if n, loc := rosterCount(s, childID); n != 1 || loc != "village" {
		t.Fatalf("roster: count=%d loc=%q", n, loc)
	}
}

func TestAdoptAndDisown(t *testing.T) {
	e := testEngine(stubRoller{})
	s := e.Apply(testState(), []Change{
		ch(KindUpdateRelationship, map[string]any{"type": "adopt_child", "npcId": "elda"}),
	}).State
	if len(s.Player.ChildrenNpcIDs) != 1 {
		t.Fatalf("children = %v", s.Player.ChildrenNpcIDs)
	}

	s = e.Apply(s, []Change{
		ch(KindUpdateRelationship, map[string]any{"type": "disown_child", "npcId": "elda"}),
	}).State
	if len(s.Player.ChildrenNpcIDs) != 0 {
		t.Fatalf("children = %v", s.Player.ChildrenNpcIDs)
	}
}

func TestRelationshipAttitudeDelegates(t *testing.T) {
	e := testEngine(stubRoller{})
	res := e.Apply(testState(), []Change{
		ch(KindUpdateRelationship, map[string]any{"type": "attitude", "npcId": "elda", "delta": -10}),
	})
	if got := res.State.NPC("elda").Attitude; got != 30 {
		t.Fatalf("attitude = %d, want 30", got)
	}
}
