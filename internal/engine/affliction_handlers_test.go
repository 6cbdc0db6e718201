package engine

import "testing"

func TestAddCurseAnnotatesSource(t *testing.T) {
	e := testEngine(stubRoller{})
	res := e.Apply(testState(), []Change{
		ch(KindAddCurse, map[string]any{"name": "Curse of Ash", "source": "the Ember Witch"}),
	})

	s := res.State
	if len(s.Player.Curses) != 1 || s.Player.Curses[0] != "curse of ash (from the ember witch)" {
		t.Fatalf("curses = %v", s.Player.Curses)
	}
	if len(s.EventHistory) != 1 || !s.EventHistory[0].Significant {
		t.Fatal("curse add should log a significant event")
	}
}

func TestAddCurseIsIdempotentUnderLooseMatch(t *testing.T) {
	e := testEngine(stubRoller{})
	res := e.Apply(testState(), []Change{
		ch(KindAddCurse, map[string]any{"name": "Curse of Ash", "source": "the Ember Witch"}),
		ch(KindAddCurse, map[string]any{"name": "curse of ash"}),
	})
	if got := res.State.Player.Curses; len(got) != 1 {
		t.Fatalf("curses = %v, want the duplicate silently dropped", got)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("warnings = %v, duplicates are quiet no-ops", res.Warnings)
	}
}

func TestRemoveCurseMatchesAnnotatedEntry(t *testing.T) {
	e := testEngine(stubRoller{})
	res := e.Apply(testState(), []Change{
		ch(KindAddCurse, map[string]any{"name": "Curse of Ash", "source": "the Ember Witch"}),
		ch(KindRemoveCurse, map[string]any{"name": "Curse of Ash"}),
	})
	if got := res.State.Player.Curses; len(got) != 0 {
		t.Fatalf("curses = %v, want removed by partial name", got)
	}
}

func TestRemoveAbsentAfflictionIsQuiet(t *testing.T) {
	e := testEngine(stubRoller{})
	res := e.Apply(testState(), []Change{
		ch(KindRemoveBlessing, map[string]any{"name": "grace of dawn"}),
	})
	if len(res.Warnings) != 0 {
		t.Fatalf("warnings = %v", res.Warnings)
	}
}

func TestBlessingsAndCursesAreIndependentSets(t *testing.T) {
	e := testEngine(stubRoller{})
	res := e.Apply(testState(), []Change{
		ch(KindAddBlessing, map[string]any{"name": "Grace of Dawn"}),
		ch(KindAddCurse, map[string]any{"name": "Night Terrors"}),
		ch(KindRemoveCurse, map[string]any{"name": "grace of dawn"}),
	})

	s := res.State
	if len(s.Player.Blessings) != 1 {
		t.Fatalf("blessings = %v", s.Player.Blessings)
	}
	if len(s.Player.Curses) != 1 {
		t.Fatalf("curses = %v, removing a blessing name from curses must not match", s.Player.Curses)
	}
}

func TestTransformationsExactLowercaseSet(t *testing.T) {
	e := testEngine(stubRoller{})
	res := e.Apply(testState(), []Change{
		ch(KindAddTransformation, map[string]any{"name": "Werewolf"}),
		ch(KindAddTransformation, map[string]any{"name": "werewolf"}),
		ch(KindRemoveTransformation, map[string]any{"name": "WEREWOLF"}),
	})
	if got := res.State.Player.Transformations; len(got) != 0 {
		t.Fatalf("transformations = %v", got)
	}
}
