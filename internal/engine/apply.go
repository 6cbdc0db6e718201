package engine

import (
	"go.uber.org/zap"

	"github.com/mythforge/server/internal/world"
)

// Apply threads an ordered batch of changes through the reducer. Each change
// sees only the output of the previous one. A malformed change never aborts
// the batch: it is dropped with a Warning and the chain continues. An empty
// batch returns the input snapshot untouched.
func (e *Engine) Apply(s *world.State, changes []Change) *Result {
	res := &Result{State: s}
	if len(changes) == 0 {
		return res
	}

	next := s.Clone()
	next.ActionCounter++
	res.State = next

	for _, ch := range changes {
		res.State = e.applyOne(res.State, ch, res)
	}

	// Warnings on the Result are the contract; the log only mirrors them.
	for _, w := range res.Warnings {
		e.Log.Debug("change dropped",
			zap.String("kind", string(w.Kind)),
			zap.String("field", w.Field),
			zap.String("reason", w.Reason))
	}
	return res
}

// applyOne dispatches a single change. The switch is the closed set of
// kinds; anything else is a forward-compatibility no-op.
func (e *Engine) applyOne(s *world.State, ch Change, res *Result) *world.State {
	d := payload(ch.Data)
	switch ch.Kind {
	case KindMovePlayer:
		return e.applyMovePlayer(s, d, res)
	case KindDamagePlayer:
		return e.applyDamagePlayer(s, d, res)
	case KindHealPlayer:
		return e.applyHealPlayer(s, d, res)
	case KindUpdateGold:
		return e.applyUpdateGold(s, d, res)
	case KindAddKnowledge:
		return e.applyAddKnowledge(s, d, res)
	case KindAddItem:
		return e.applyAddItem(s, d, res)
	case KindRemoveItem:
		return e.applyRemoveItem(s, d, res)
	case KindCreateNPC:
		return e.applyCreateNPC(s, d, res)
	case KindMoveNPC:
		return e.applyMoveNPC(s, d, res)
	case KindUpdateNPCAttitude:
		return e.applyUpdateNPCAttitude(s, d, res)
	case KindNPCDeath:
		return e.applyNPCDeath(s, d, res)
	case KindAddCompanion:
		return e.applyAddCompanion(s, d, res)
	case KindRemoveCompanion:
		return e.applyRemoveCompanion(s, d, res)
	case KindCompanionWaitHome:
		return e.applyCompanionWaitHome(s, d, res)
	case KindCompanionRejoin:
		return e.applyCompanionRejoin(s, d, res)
	case KindCreateLocation:
		return e.applyCreateLocation(s, d, res)
	case KindCreateStructure:
		return e.applyCreateStructure(s, d, res)
	case KindDestroyStructure:
		return e.applyDestroyStructure(s, d, res)
	case KindUpdateLocation:
		return e.applyUpdateLocation(s, d, res)
	case KindAddQuest:
		return e.applyAddQuest(s, d, res)
	case KindUpdateQuest:
		return e.applyUpdateQuest(s, d, res)
	case KindUpdateFactionReputation:
		return e.applyUpdateFactionReputation(s, d, res)
	case KindClaimHome:
		return e.applyClaimHome(s, d, res)
	case KindStoreItemHome:
		return e.applyStoreItemHome(s, d, res)
	case KindRetrieveItemHome:
		return e.applyRetrieveItemHome(s, d, res)
	case KindUpdateRelationship:
		return e.applyUpdateRelationship(s, d, res)
	case KindAddTransformation:
		return e.applyAddTransformation(s, d, res)
	case KindRemoveTransformation:
		return e.applyRemoveTransformation(s, d, res)
	case KindAddCurse:
		return e.applyAddAffliction(s, d, res, KindAddCurse)
	case KindRemoveCurse:
		return e.applyRemoveAffliction(s, d, res, KindRemoveCurse)
	case KindAddBlessing:
		return e.applyAddAffliction(s, d, res, KindAddBlessing)
	case KindRemoveBlessing:
		return e.applyRemoveAffliction(s, d, res, KindRemoveBlessing)
	case KindPracticeSkill:
		return e.applyPracticeSkill(s, d, res)
	case KindRevealBackstory:
		return e.applyRevealBackstory(s, d, res)
	case KindRecordCrime:
		return e.applyRecordCrime(s, d, res)
	case KindAddBounty:
		return e.applyAddBounty(s, d, res)
	case KindUpdateBounty:
		return e.applyUpdateBounty(s, d, res)
	case KindRemoveBounty:
		return e.applyRemoveBounty(s, d, res)
	case KindStartCombat:
		return e.applyStartCombat(s, d, res)
	case KindPlayerDeath:
		return e.applyPlayerDeath(s, d, res)
	}
	res.warnf(ch.Kind, "", "unknown change kind")
	return s
}
