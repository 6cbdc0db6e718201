// Package ledger derives reputation consequences from the player's crime and
// bounty records: an aggregate wanted status, and the service-refusal
// predicate NPCs consult before trading with the player.
package ledger

import (
	"fmt"

	"github.com/mythforge/server/internal/world"
)

// RecentCrimeWindow is how many trailing actions a detected crime stays
// "recent" for wanted-status purposes.
const RecentCrimeWindow = 50

const (
	refusalAttitudeFloor = -50
	refusalFactionFloor  = -50
	recognitionMinBounty = 100
	recognitionAttitude  = 30
)

// Chancer supplies the probabilistic recognition roll. The engine's Roller
// satisfies it; tests pass a fixed outcome.
type Chancer interface {
	Chance(p float64) bool
}

// WantedStatus is the aggregate view of the player's standing with the law.
type WantedStatus struct {
	IsWanted          bool                `json:"isWanted"`
	TotalBountyAmount int                 `json:"totalBountyAmount"`
	ActiveBounties    []world.Bounty      `json:"activeBounties,omitempty"`
	RecentCrimes      []world.Crime       `json:"recentCrimes,omitempty"`
	MostSevereRecent  world.CrimeSeverity `json:"mostSevereRecent,omitempty"`
}

// Wanted aggregates active bounties and detected crimes within the trailing
// action window. Severity ranking is severe > moderate > minor; the first
// severe crime pins the rank, but every detected crime in the window is
// still collected.
func Wanted(s *world.State) WantedStatus {
	var ws WantedStatus
	for _, b := range s.Player.Bounties {
		if !b.IsActive {
			continue
		}
		ws.ActiveBounties = append(ws.ActiveBounties, b)
		ws.TotalBountyAmount += b.Amount
	}

	cutoff := s.ActionCounter - RecentCrimeWindow
	sawSevere := false
	for _, c := range s.Player.Crimes {
		if !c.WasDetected || c.ActionIndex < cutoff {
			continue
		}
		ws.RecentCrimes = append(ws.RecentCrimes, c)
		if sawSevere {
			continue
		}
		if c.Severity == world.SeveritySevere {
			ws.MostSevereRecent = world.SeveritySevere
			sawSevere = true
		} else if severityRank(c.Severity) > severityRank(ws.MostSevereRecent) {
			ws.MostSevereRecent = c.Severity
		}
	}

	ws.IsWanted = len(ws.ActiveBounties) > 0 || len(ws.RecentCrimes) > 0
	return ws
}

func severityRank(sev world.CrimeSeverity) int {
	switch sev {
	case world.SeveritySevere:
		return 3
	case world.SeverityModerate:
		return 2
	case world.SeverityMinor:
		return 1
	default:
		return 0
	}
}

// RecognitionChance is the probability an NPC recognizes the player from
// bounty postings: 0.2 + totalBounty/500, capped at 0.8. The formula is a
// tuned content value; do not adjust it without a balance pass.
func RecognitionChance(totalBounty int) float64 {
	p := 0.2 + float64(totalBounty)/500.0
	if p > 0.8 {
		p = 0.8
	}
	return p
}

// Refusal decides whether the NPC refuses the player service, returning a
// human-readable reason or "" when service proceeds. Checks run in priority
// order; only the final bounty-recognition check is probabilistic.
func Refusal(s *world.State, npcID string, roll Chancer) string {
	npc := s.NPC(npcID)
	if npc == nil || !npc.IsAlive {
		return ""
	}

	if npc.Attitude < refusalAttitudeFloor {
		return fmt.Sprintf("%s wants nothing to do with you", npc.Name)
	}

	for _, c := range s.Player.Crimes {
		if c.WasDetected && c.VictimNpcID == npcID {
			return fmt.Sprintf("%s remembers what you did to them", npc.Name)
		}
	}

	for _, c := range s.Player.Crimes {
		if !c.WasDetected || c.Severity != world.SeveritySevere {
			continue
		}
		if world.ContainsString(c.WitnessNpcIDs, npcID) {
			return fmt.Sprintf("%s witnessed your crime and backs away", npc.Name)
		}
	}

	for _, fid := range npc.FactionIDs {
		f := s.Faction(fid)
		if f != nil && f.PlayerReputation < refusalFactionFloor {
			return fmt.Sprintf("%s refuses on behalf of %s", npc.Name, f.Name)
		}
	}

	total := 0
	for _, b := range s.Player.Bounties {
		if b.IsActive {
			total += b.Amount
		}
	}
	if total >= recognitionMinBounty && npc.Attitude < recognitionAttitude {
		if roll != nil && roll.Chance(RecognitionChance(total)) {
			return fmt.Sprintf("%s recognizes you from the bounty postings", npc.Name)
		}
	}

	return ""
}
