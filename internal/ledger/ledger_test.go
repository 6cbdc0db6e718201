package ledger

import (
	"math"
	"strings"
	"testing"

	"github.com/mythforge/server/internal/world"
)

type fixedChance bool

func (f fixedChance) Chance(p float64) bool { return bool(f) }

// recordingChance captures the probability it was asked to roll.
type recordingChance struct {
	p      float64
	result bool
}

func (r *recordingChance) Chance(p float64) bool {
	r.p = p
	return r.result
}

func ledgerFixture() *world.State {
	return &world.State{
		Player: &world.Player{
			Name:              "Hero",
			CurrentLocationID: "village",
			Crimes: []world.Crime{
				{ID: "c1", Type: world.CrimeTheft, Severity: world.SeverityMinor, WasDetected: true, ActionIndex: 90},
				{ID: "c2", Type: world.CrimeMurder, Severity: world.SeveritySevere, WasDetected: true,
					VictimNpcID: "victim", WitnessNpcIDs: []string{"witness"}, ActionIndex: 95},
				{ID: "c3", Type: world.CrimeFraud, Severity: world.SeverityModerate, WasDetected: false, ActionIndex: 99},
				{ID: "c4", Type: world.CrimeVandalism, Severity: world.SeverityModerate, WasDetected: true, ActionIndex: 10},
			},
			Bounties: []world.Bounty{
				{ID: "b1", IssuerFactionID: "watch", Amount: 150, Reason: "murder", IsActive: true},
				{ID: "b2", IssuerNpcID: "victim", Amount: 75, Reason: "theft", IsActive: false},
			},
		},
		NPCs: map[string]*world.NPC{
			"victim":  {ID: "victim", Name: "Old Tom", IsAlive: true, Attitude: 0},
			"witness": {ID: "witness", Name: "Nell", IsAlive: true, Attitude: 10},
			"grump":   {ID: "grump", Name: "Grump", IsAlive: true, Attitude: -80},
			"loyal":   {ID: "loyal", Name: "Sworn Guard", IsAlive: true, Attitude: 50, FactionIDs: []string{"watch"}},
			"neutral": {ID: "neutral", Name: "Passerby", IsAlive: true, Attitude: 0},
			"friend":  {ID: "friend", Name: "Friend", IsAlive: true, Attitude: 60},
		},
		Factions: map[string]*world.Faction{
			"watch": {ID: "watch", Name: "The Watch", PlayerReputation: -70},
		},
		ActionCounter: 100,
	}
}

func TestWantedAggregation(t *testing.T) {
	ws := Wanted(ledgerFixture())

	if !ws.IsWanted {
		t.Fatal("expected wanted")
	}
	if ws.TotalBountyAmount != 150 {
		t.Fatalf("total = %d, inactive bounties must not count", ws.TotalBountyAmount)
	}
	if len(ws.ActiveBounties) != 1 {
		t.Fatalf("active = %v", ws.ActiveBounties)
	}
	// c3 is undetected, c4 is outside the 50-action window.
	if len(ws.RecentCrimes) != 2 {
		t.Fatalf("recent = %v", ws.RecentCrimes)
	}
	if ws.MostSevereRecent != world.SeveritySevere {
		t.Fatalf("most severe = %q", ws.MostSevereRecent)
	}
}

// A severe crime pins the most-severe rank but must not stop the collection
// of later crimes in the window.
func TestWantedCollectsCrimesAfterSevere(t *testing.T) {
	s := &world.State{
		Player: &world.Player{
			Crimes: []world.Crime{
				{ID: "c1", Type: world.CrimeMurder, Severity: world.SeveritySevere, WasDetected: true, ActionIndex: 90},
				{ID: "c2", Type: world.CrimeTheft, Severity: world.SeverityMinor, WasDetected: true, ActionIndex: 95},
			},
		},
		ActionCounter: 100,
	}
	ws := Wanted(s)

	if len(ws.RecentCrimes) != 2 {
		t.Fatalf("recent = %v, want both crimes in the window", ws.RecentCrimes)
	}
	if ws.RecentCrimes[1].ID != "c2" {
		t.Fatalf("recent = %v, want c2 collected after the severe c1", ws.RecentCrimes)
	}
	if ws.MostSevereRecent != world.SeveritySevere {
		t.Fatalf("most severe = %q", ws.MostSevereRecent)
	}
}

func TestWantedCleanRecord(t *testing.T) {
	s := &world.State{Player: &world.Player{}, ActionCounter: 100}
	ws := Wanted(s)
	if ws.IsWanted || ws.TotalBountyAmount != 0 || ws.MostSevereRecent != "" {
		t.Fatalf("ws = %+v", ws)
	}
}

func TestRecognitionChance(t *testing.T) {
	cases := []struct {
		amount int
		want   float64
	}{
		{0, 0.2},
		{100, 0.4},
		{250, 0.7},
		{300, 0.8},
		{10000, 0.8},
	}
	for _, tc := range cases {
		if got := RecognitionChance(tc.amount); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("RecognitionChance(%d) = %v, want %v", tc.amount, got, tc.want)
		}
	}
}

func TestRefusalPriorityChain(t *testing.T) {
	s := ledgerFixture()

	cases := []struct {
		npcID   string
		chance  bool
		refused bool
		mention string
	}{
		{"grump", false, true, "nothing to do"},    // attitude < -50
		{"victim", false, true, "remembers"},       // detected victim
		{"witness", false, true, "witnessed"},      // witnessed severe detected crime
		{"loyal", false, true, "on behalf of"},     // faction reputation < -50
		{"neutral", true, true, "bounty postings"}, // recognition roll hits, attitude < 30
		{"neutral", false, false, ""},              // recognition roll misses
		{"friend", true, false, ""},                // attitude 60 >= 30 blocks recognition
	}
	for _, tc := range cases {
		got := Refusal(s, tc.npcID, fixedChance(tc.chance))
		if (got != "") != tc.refused {
			t.Errorf("Refusal(%s) = %q, refused want %v", tc.npcID, got, tc.refused)
			continue
		}
		if tc.mention != "" && !strings.Contains(got, tc.mention) {
			t.Errorf("Refusal(%s) = %q, want mention of %q", tc.npcID, got, tc.mention)
		}
	}
}

func TestRefusalRecognitionUsesTotalActiveBounty(t *testing.T) {
	s := ledgerFixture()
	roll := &recordingChance{result: false}
	Refusal(s, "neutral", roll)

	// 150 active: 0.2 + 150/500 = 0.5
	if math.Abs(roll.p-0.5) > 1e-9 {
		t.Fatalf("rolled p = %v, want 0.5", roll.p)
	}
}

func TestRefusalSkipsRecognitionBelowMinimumBounty(t *testing.T) {
	s := ledgerFixture()
	p := s.Player
	p.Bounties = []world.Bounty{{ID: "b1", IssuerFactionID: "watch", Amount: 99, IsActive: true}}
	p.Crimes = nil

	got := Refusal(s, "neutral", fixedChance(true))
	if got != "" {
		t.Fatalf("Refusal = %q, bounty under 100 should never trigger recognition", got)
	}
}

func TestRefusalUnknownOrDeadNPC(t *testing.T) {
	s := ledgerFixture()
	if got := Refusal(s, "ghost", fixedChance(true)); got != "" {
		t.Fatalf("unknown npc refused: %q", got)
	}
	s.NPCs["grump"].IsAlive = false
	if got := Refusal(s, "grump", fixedChance(true)); got != "" {
		t.Fatalf("dead npc refused: %q", got)
	}
}
