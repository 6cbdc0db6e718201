package engine

import (
	"fmt"

	"github.com/mythforge/server/internal/world"
)

// applyRecordCrime appends a crime to the player's record. Only detected
// crimes propagate attitude and reputation consequences; the event is marked
// significant when the crime was detected or severe, which is the signal
// downstream rumor spreading keys on.
func (e *Engine) applyRecordCrime(s *world.State, d payload, res *Result) *world.State {
	rawType, ok := d.str("type")
	if !ok {
		res.warn(KindRecordCrime, "type", "required")
		return s
	}
	crimeType := world.CrimeType(rawType)
	if !world.ValidCrimeType(crimeType) {
		res.warnf(KindRecordCrime, "type", "invalid crime type %q", rawType)
		return s
	}
	rawSev, ok := d.str("severity")
	if !ok {
		res.warn(KindRecordCrime, "severity", "required")
		return s
	}
	severity := world.CrimeSeverity(rawSev)
	if !world.ValidCrimeSeverity(severity) {
		res.warnf(KindRecordCrime, "severity", "invalid severity %q", rawSev)
		return s
	}

	detected, _ := d.boolean("wasDetected")
	crime := world.Crime{
		ID:          world.SlugID("crime", rawType, s.ActionCounter),
		Type:        crimeType,
		Severity:    severity,
		WasDetected: detected,
		LocationID:  s.Player.CurrentLocationID,
		ActionIndex: s.ActionCounter,
	}
	if id, ok := d.str("id"); ok {
		crime.ID = id
	}
	if desc, ok := d.str("description"); ok {
		crime.Description = desc
	}
	if victim, ok := d.str("victimNpcId"); ok {
		if s.NPC(victim) == nil {
			res.warnf(KindRecordCrime, "victimNpcId", "unknown npc %q", victim)
		} else {
			crime.VictimNpcID = victim
		}
	}
	for _, w := range d.strs("witnessNpcIds") {
		if s.NPC(w) == nil {
			res.warnf(KindRecordCrime, "witnessNpcIds", "unknown npc %q", w)
			continue
		}
		crime.WitnessNpcIDs = append(crime.WitnessNpcIDs, w)
	}

	p := s.Player.Clone()
	p.Crimes = append(world.Capped(p.Crimes), crime)
	out := s.WithPlayer(p)

	if detected {
		for npcID, delta := range d.numMap("npcAttitudeDeltas") {
			npc := out.NPC(npcID)
			if npc == nil {
				res.warnf(KindRecordCrime, "npcAttitudeDeltas", "unknown npc %q", npcID)
				continue
			}
			n := npc.Clone()
			n.Attitude = world.Clamp(n.Attitude+delta, -100, 100)
			out = out.WithNPC(n)
		}
		for factionID, delta := range d.numMap("factionReputationDeltas") {
			f := out.Faction(factionID)
			if f == nil {
				res.warnf(KindRecordCrime, "factionReputationDeltas", "unknown faction %q", factionID)
				continue
			}
			fc := f.Clone()
			fc.PlayerReputation = world.Clamp(fc.PlayerReputation+delta, -100, 100)
			out = out.WithFaction(fc)
		}
	}

	desc := crime.Description
	if desc == "" {
		desc = fmt.Sprintf("A %s was committed", rawType)
	}
	significant := detected || severity == world.SeveritySevere
	return out.WithEvent(e.event(s, world.EventCrime, desc, significant))
}

// applyAddBounty issues a bounty against the player. Exactly one issuer
// reference is required: a faction or an NPC, never both, never neither.
func (e *Engine) applyAddBounty(s *world.State, d payload, res *Result) *world.State {
	amount, ok := d.integer("amount")
	if !ok || amount <= 0 {
		res.warn(KindAddBounty, "amount", "required positive integer")
		return s
	}
	reason, ok := d.str("reason")
	if !ok {
		res.warn(KindAddBounty, "reason", "required")
		return s
	}

	factionID, hasFaction := d.str("issuerFactionId")
	npcID, hasNPC := d.str("issuerNpcId")
	if hasFaction == hasNPC {
		res.warn(KindAddBounty, "issuer", "exactly one of issuerFactionId or issuerNpcId required")
		return s
	}
	issuerName := ""
	if hasFaction {
		f := s.Faction(factionID)
		if f == nil {
			res.warnf(KindAddBounty, "issuerFactionId", "unknown faction %q", factionID)
			return s
		}
		issuerName = f.Name
	} else {
		n := s.NPC(npcID)
		if n == nil {
			res.warnf(KindAddBounty, "issuerNpcId", "unknown npc %q", npcID)
			return s
		}
		issuerName = n.Name
	}

	bounty := world.Bounty{
		ID:              world.SlugID("bounty", reason, s.ActionCounter),
		IssuerFactionID: factionID,
		IssuerNpcID:     npcID,
		Amount:          amount,
		Reason:          reason,
		CrimeIDs:        d.strs("crimeIds"),
		IsActive:        true,
	}
	if id, ok := d.str("id"); ok {
		bounty.ID = id
	}

	p := s.Player.Clone()
	p.Bounties = append(world.Capped(p.Bounties), bounty)
	return s.WithPlayer(p).
		WithEvent(e.event(s, world.EventCrime,
			fmt.Sprintf("%s posted a bounty of %d gold: %s", issuerName, amount, reason), true))
}

// applyUpdateBounty supports incremental amount increases, linking further
// crimes, toggling activity, and replacing the reason. Amount increases emit
// a narrative event; a bare reactivation does not.
func (e *Engine) applyUpdateBounty(s *world.State, d payload, res *Result) *world.State {
	bountyID, ok := d.str("bountyId")
	if !ok {
		res.warn(KindUpdateBounty, "bountyId", "required")
		return s
	}
	i := s.Player.FindBounty(bountyID)
	if i < 0 {
		res.warnf(KindUpdateBounty, "bountyId", "unknown bounty %q", bountyID)
		return s
	}

	p := s.Player.Clone()
	bounties := make([]world.Bounty, len(p.Bounties))
	copy(bounties, p.Bounties)
	b := &bounties[i]

	changed := false
	increased := 0
	if inc, ok := d.integer("increaseAmount"); ok {
		if inc <= 0 {
			res.warn(KindUpdateBounty, "increaseAmount", "must be positive")
		} else {
			b.Amount += inc
			increased = inc
			changed = true
		}
	}
	for _, cid := range d.strs("addCrimeIds") {
		if world.ContainsString(b.CrimeIDs, cid) {
			continue
		}
		b.CrimeIDs = append(world.Capped(b.CrimeIDs), cid)
		changed = true
	}
	if active, ok := d.boolean("isActive"); ok && active != b.IsActive {
		b.IsActive = active
		changed = true
	}
	if reason, ok := d.str("reason"); ok && reason != b.Reason {
		b.Reason = reason
		changed = true
	}
	if !changed {
		return s
	}

	p.Bounties = bounties
	out := s.WithPlayer(p)
	if increased > 0 {
		out = out.WithEvent(e.event(s, world.EventCrime,
			fmt.Sprintf("The bounty on the player rose by %d gold to %d", increased, b.Amount), true))
	}
	return out
}

// applyRemoveBounty deletes the bounty entry outright and logs a resolution
// event. Deactivation is update_bounty's job; removal means the claim is
// settled and gone.
func (e *Engine) applyRemoveBounty(s *world.State, d payload, res *Result) *world.State {
	bountyID, ok := d.str("bountyId")
	if !ok {
		res.warn(KindRemoveBounty, "bountyId", "required")
		return s
	}
	i := s.Player.FindBounty(bountyID)
	if i < 0 {
		res.warnf(KindRemoveBounty, "bountyId", "unknown bounty %q", bountyID)
		return s
	}

	removed := s.Player.Bounties[i]
	p := s.Player.Clone()
	bounties := make([]world.Bounty, 0, len(p.Bounties)-1)
	bounties = append(bounties, p.Bounties[:i]...)
	p.Bounties = append(bounties, p.Bounties[i+1:]...)

	return s.WithPlayer(p).
		WithEvent(e.event(s, world.EventCrime,
			fmt.Sprintf("The bounty of %d gold (%s) was resolved", removed.Amount, removed.Reason), false))
}
