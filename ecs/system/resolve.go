package system

import (
	"strings"

	"github.com/milk9111/backwardroyal/ecs"
	"github.com/milk9111/backwardroyal/ecs/component"
	"github.com/milk9111/backwardroyal/roster"
)

const maxParentDepth = 8

// parentOf follows Attachment first, then Owner.
func parentOf(w *ecs.World, e ecs.Entity) (ecs.Entity, bool) {
	if a, ok := ecs.Get(w, e, component.AttachmentComponent.Kind()); ok && a.Parent != 0 {
		p := ecs.Entity(a.Parent)
		return p, w.IsAlive(p)
	}
	if o, ok := ecs.Get(w, e, component.OwnerComponent.Kind()); ok && o.Entity != 0 {
		p := ecs.Entity(o.Entity)
		return p, w.IsAlive(p)
	}
	return 0, false
}

// rootOf is the top of e's attachment chain.
func rootOf(w *ecs.World, e ecs.Entity) ecs.Entity {
	for range maxParentDepth {
		p, ok := parentOf(w, e)
		if !ok {
			return e
		}
		e = p
	}
	return e
}

// owningPawn resolves e, or whatever it is attached to, to a pawn.
func owningPawn(w *ecs.World, e ecs.Entity) (ecs.Entity, bool) {
	for range maxParentDepth {
		if !w.IsAlive(e) {
			return 0, false
		}
		if ecs.Has(w, e, component.PawnComponent.Kind()) {
			return e, true
		}
		p, ok := parentOf(w, e)
		if !ok {
			return 0, false
		}
		e = p
	}
	return 0, false
}

// resolveTarget classifies e. Upper-body pawns resolve to the character they
// sit on, which is where damage and death impulses land.
func resolveTarget(w *ecs.World, e ecs.Entity) (ecs.Entity, component.Target) {
	t, ok := ecs.Get(w, e, component.TargetComponent.Kind())
	if !ok {
		return e, component.Target{Kind: component.TargetOther}
	}
	if t.Kind == component.TargetUpperBodyPawn {
		if p, ok := parentOf(w, e); ok {
			if pt, ok := ecs.Get(w, p, component.TargetComponent.Kind()); ok && pt.Kind == component.TargetCharacter {
				return p, *pt
			}
		}
	}
	return e, *t
}

func controllerOf(w *ecs.World, pawn ecs.Entity) (ecs.Entity, *component.Controller, bool) {
	p, ok := ecs.Get(w, pawn, component.PawnComponent.Kind())
	if !ok || p.Controller == 0 {
		return 0, nil, false
	}
	ce := ecs.Entity(p.Controller)
	c, ok := ecs.Get(w, ce, component.ControllerComponent.Kind())
	if !ok {
		return 0, nil, false
	}
	return ce, c, true
}

// ControllerFor finds the controller entity of a player.
func ControllerFor(w *ecs.World, id roster.PlayerID) (ecs.Entity, bool) {
	for _, e := range w.Query(component.ControllerComponent.Kind()) {
		c, ok := ecs.Get(w, e, component.ControllerComponent.Kind())
		if ok && c.Player == id {
			return e, true
		}
	}
	return 0, false
}

// CharacterFor returns the character a player's pawn belongs to. Upper-body
// players resolve to the character they ride.
func CharacterFor(w *ecs.World, id roster.PlayerID) (ecs.Entity, bool) {
	ctrl, ok := ControllerFor(w, id)
	if !ok {
		return 0, false
	}
	c, _ := ecs.Get(w, ctrl, component.ControllerComponent.Kind())
	pawn := ecs.Entity(c.Pawn)
	if !w.IsAlive(pawn) {
		return 0, false
	}
	character := rootOf(w, pawn)
	return character, ecs.Has(w, character, component.CharacterTagComponent.Kind())
}

// attachedTo lists entities whose Attachment parent is e.
func attachedTo(w *ecs.World, e ecs.Entity) []ecs.Entity {
	var out []ecs.Entity
	for _, c := range w.Query(component.AttachmentComponent.Kind()) {
		a, _ := ecs.Get(w, c, component.AttachmentComponent.Kind())
		if a != nil && ecs.Entity(a.Parent) == e {
			out = append(out, c)
		}
	}
	return out
}

func isStrikingBone(bone string) bool {
	bone = strings.ToLower(bone)
	return strings.Contains(bone, "hand") || strings.Contains(bone, "lowerarm")
}

// punchingBone reports whether bone can land an unarmed hit for attacker.
// While a punch is thrown only that arm counts; detection opened outside a
// punch accepts either arm.
func punchingBone(w *ecs.World, attacker ecs.Entity, bone string) bool {
	if !isStrikingBone(bone) {
		return false
	}
	attack, ok := ecs.Get(w, attacker, component.AttackComponent.Kind())
	if !ok || !attack.Attacking {
		return true
	}
	hand, sided := boneSide(bone)
	return !sided || hand == attack.LastHand
}

func boneSide(bone string) (component.Hand, bool) {
	bone = strings.ToLower(bone)
	switch {
	case strings.HasSuffix(bone, "_l"):
		return component.HandLeft, true
	case strings.HasSuffix(bone, "_r"):
		return component.HandRight, true
	}
	return component.HandRight, false
}

func isHeadBone(bone string) bool {
	return strings.Contains(strings.ToLower(bone), "head")
}
