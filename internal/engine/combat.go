package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/mythforge/server/internal/world"
)

// CombatAction is one player decision within a round.
type CombatAction string

const (
	ActionAttack    CombatAction = "attack"
	ActionDefend    CombatAction = "defend"
	ActionFlee      CombatAction = "flee"
	ActionUsePotion CombatAction = "use_potion"
)

// RoundResult reports everything a single resolved round produced.
type RoundResult struct {
	State            *world.State
	Messages         []string
	CombatEnded      bool
	PlayerVictory    bool
	PlayerDefeated   bool
	Fled             bool
	ExperienceGained int
	GoldGained       int
	LeveledUp        bool
}

var (
	// ErrNoCombat is returned when a round is requested outside an encounter.
	ErrNoCombat = errors.New("no active combat")
	// ErrUnknownAction is returned for an unrecognized combat action.
	ErrUnknownAction = errors.New("unknown combat action")
)

// applyStartCombat binds a living NPC as the encounter enemy and snapshots
// which companions are physically present.
func (e *Engine) applyStartCombat(s *world.State, d payload, res *Result) *world.State {
	npcID, ok := d.str("npcId")
	if !ok {
		res.warn(KindStartCombat, "npcId", "required")
		return s
	}
	if s.Combat != nil {
		res.warn(KindStartCombat, "npcId", "combat is already active")
		return s
	}
	npc := s.NPC(npcID)
	if npc == nil {
		res.warnf(KindStartCombat, "npcId", "unknown npc %q", npcID)
		return s
	}
	if !npc.IsAlive {
		res.warnf(KindStartCombat, "npcId", "npc %q is dead", npcID)
		return s
	}

	var present []string
	if here := s.Location(s.Player.CurrentLocationID); here != nil {
		for _, id := range s.Player.CompanionIDs {
			if world.ContainsString(here.PresentNpcIDs, id) {
				present = append(present, id)
			}
		}
	}

	cs := &world.CombatState{
		EnemyNpcID:   npcID,
		PlayerTurn:   true,
		Round:        1,
		CompanionIDs: present,
	}
	return s.WithCombat(cs).
		WithEvent(e.event(s, world.EventCombat,
			fmt.Sprintf("Combat began against %s", npc.Name), false))
}

// damageRoll implements the shared damage formula:
// max(1, floor(str - 0.5*def + noise)), noise uniform in [-3, +3].
func (e *Engine) damageRoll(attackerStrength, defenderDefense int) int {
	raw := float64(attackerStrength) - 0.5*float64(defenderDefense) + float64(e.Roll.Noise())
	dmg := int(math.Floor(raw))
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// ResolveRound advances combat by one full round: the player's action, then
// (unless the fight ended or the player fled) the enemy's counter-attack.
func (e *Engine) ResolveRound(s *world.State, action CombatAction) (*RoundResult, error) {
	if s.Combat == nil {
		return nil, ErrNoCombat
	}
	enemy := s.NPC(s.Combat.EnemyNpcID)
	if enemy == nil || !enemy.IsAlive {
		// Should be unreachable: combat is cleared whenever the enemy dies.
		return &RoundResult{State: s.WithCombat(nil), CombatEnded: true}, nil
	}

	rr := &RoundResult{State: s}
	defended := false

	switch action {
	case ActionFlee:
		if e.Roll.Chance(0.5) {
			out := s.WithCombat(nil).
				WithEvent(e.event(s, world.EventCombat,
					fmt.Sprintf("Fled from %s", enemy.Name), false))
			rr.State = out
			rr.CombatEnded = true
			rr.Fled = true
			rr.say("You slip away from the fight.")
			return rr, nil
		}
		rr.say(fmt.Sprintf("You fail to escape, and %s closes in.", enemy.Name))
		// Round continues as if no action were taken.

	case ActionAttack:
		dmg := e.damageRoll(s.Player.Strength, enemy.Stats.Defense)
		en := enemy.Clone()
		en.Stats.Health = world.Clamp(en.Stats.Health-dmg, 0, en.Stats.MaxHealth)
		rr.State = rr.State.WithNPC(en)
		enemy = en
		rr.say(fmt.Sprintf("You hit %s for %d damage.", enemy.Name, dmg))

	case ActionDefend:
		defended = true
		rr.say("You brace behind your guard.")

	case ActionUsePotion:
		p := rr.State.Player
		if i := p.FindItemByKind("potion"); i >= 0 {
			potion := p.Inventory[i]
			healed := potion.Effect
			np := p.Clone()
			np.Inventory = world.RemoveItemAt(np.Inventory, i)
			np.Health = world.Clamp(np.Health+healed, 0, np.MaxHealth)
			rr.State = rr.State.WithPlayer(np)
			rr.say(fmt.Sprintf("You drink %s and recover %d health.", potion.Name, healed))
		} else {
			rr.say("You fumble for a potion you do not have.")
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	if enemy.Stats.Health <= 0 {
		return e.resolveVictory(rr, s, enemy)
	}

	// Enemy counter-attack.
	dmg := e.damageRoll(enemy.Stats.Strength, rr.State.Player.Defense)
	if defended {
		dmg /= 2
	}
	p := rr.State.Player.Clone()
	p.Health = world.Clamp(p.Health-dmg, 0, p.MaxHealth)
	rr.State = rr.State.WithPlayer(p)
	rr.say(fmt.Sprintf("%s strikes you for %d damage.", enemy.Name, dmg))

	if p.Health <= 0 {
		rr.State = rr.State.WithCombat(nil).
			WithEvent(e.event(s, world.EventCombat,
				fmt.Sprintf("Defeated by %s", enemy.Name), true))
		rr.CombatEnded = true
		rr.PlayerDefeated = true
		rr.say("You collapse, beaten.")
		return rr, nil
	}

	cs := *rr.State.Combat
	cs.Round++
	rr.State = rr.State.WithCombat(&cs)
	return rr, nil
}

// resolveVictory ends the encounter: rewards, level-up accounting, the
// combat behavior counter, and the enemy's death bookkeeping.
func (e *Engine) resolveVictory(rr *RoundResult, before *world.State, enemy *world.NPC) (*RoundResult, error) {
	exp, gold := e.killReward(enemy.Stats.MaxHealth, enemy.Stats.Strength)
	rr.ExperienceGained = exp
	rr.GoldGained = gold

	p := rr.State.Player.Clone()
	p.Experience += exp
	p.Gold += gold
	bp := p.BehaviorPatterns
	bp.Combat++
	p.BehaviorPatterns = bp

	for p.Experience >= e.nextLevelExp(p.Level) {
		p.Experience -= e.nextLevelExp(p.Level)
		p.Level++
		p.MaxHealth += 10
		p.Health = p.MaxHealth
		p.Strength += 2
		p.Defense++
		rr.LeveledUp = true
	}

	rr.State = rr.State.WithPlayer(p)
	// killNPC also clears the combat state bound to this enemy.
	rr.State = killNPC(e, rr.State, rr.State.NPC(enemy.ID), "slain in combat")
	rr.State = rr.State.WithEvent(e.event(before, world.EventCombat,
		fmt.Sprintf("Victory over %s (+%d exp, +%d gold)", enemy.Name, exp, gold), true))

	rr.CombatEnded = true
	rr.PlayerVictory = true
	rr.say(fmt.Sprintf("%s falls. You gain %d experience and %d gold.", enemy.Name, exp, gold))
	if rr.LeveledUp {
		rr.say(fmt.Sprintf("You reach level %d.", rr.State.Player.Level))
	}
	return rr, nil
}

// killReward computes victory payouts from the enemy's max health and
// strength, preferring the lua hook when loaded, scaled by configured rates.
func (e *Engine) killReward(maxHealth, strength int) (exp, gold int) {
	if e.Scripts != nil {
		if sx, sg, ok := e.Scripts.KillReward(maxHealth, strength); ok {
			exp, gold = sx, sg
		}
	}
	if exp == 0 && gold == 0 {
		exp = maxHealth/2 + strength*2
		gold = maxHealth/3 + strength
	}
	exp = int(float64(exp) * e.expRate())
	gold = int(float64(gold) * e.goldRate())
	if exp < 1 {
		exp = 1
	}
	if gold < 1 {
		gold = 1
	}
	return exp, gold
}

// nextLevelExp is the experience required to leave the given level.
func (e *Engine) nextLevelExp(level int) int {
	if e.Scripts != nil {
		if n, ok := e.Scripts.NextLevelExp(level); ok && n > 0 {
			return n
		}
	}
	return level * 50
}

func (rr *RoundResult) say(msg string) {
	rr.Messages = append(rr.Messages, msg)
	rr.State = rr.State.WithMessage(msg)
}
