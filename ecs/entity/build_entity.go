package entity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/backwardroyal/combat"
	"github.com/milk9111/backwardroyal/ecs"
	"github.com/milk9111/backwardroyal/ecs/component"
	"github.com/milk9111/backwardroyal/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"character_tag":         addCharacterTag,
	"upper_body_tag":        addUpperBodyTag,
	"transform":             addTransform,
	"physics_body":          addPhysicsBody,
	"mount_points":          addMountPoints,
	"target":                addTarget,
	"health":                addHealth,
	"stamina":               addStamina,
	"weapon":                addWeapon,
	"weapon_trace":          addWeaponTrace,
	"attack":                addAttack,
	"attack_detection":      addAttackDetection,
	"pending_death_impulse": addPendingDeathImpulse,
	"pawn":                  addPawn,
	"switch_orb":            addSwitchOrb,
}

var componentBuildOrder = []string{
	"character_tag",
	"upper_body_tag",
	"transform",
	"physics_body",
	"mount_points",
	"target",
	"health",
	"stamina",
	"weapon",
	"weapon_trace",
	"attack",
	"attack_detection",
	"pending_death_impulse",
	"pawn",
	"switch_orb",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addCharacterTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CharacterTagComponent.Kind(), &component.CharacterTag{})
}

func addUpperBodyTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.UpperBodyTagComponent.Kind(), &component.UpperBodyTag{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		Rotation: spec.Rotation,
	})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return err
	}
	layer, err := parseLayer(spec.Layer)
	if err != nil {
		return err
	}
	limbs := make([]component.Limb, 0, len(spec.Limbs))
	for _, l := range spec.Limbs {
		if l.Radius <= 0 {
			return fmt.Errorf("limb %q: radius must be positive", l.Bone)
		}
		limbs = append(limbs, component.Limb{Bone: l.Bone, OffsetX: l.OffsetX, OffsetY: l.OffsetY, Radius: l.Radius})
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:      spec.Width,
		Height:     spec.Height,
		Radius:     spec.Radius,
		Mass:       spec.Mass,
		Friction:   spec.Friction,
		Elasticity: spec.Elasticity,
		Static:     spec.Static,
		Kinematic:  spec.Kinematic,
		FixedAngle: spec.FixedAngle,
		Layer:      layer,
		Limbs:      limbs,
	})
}

func addMountPoints(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.MountPointsComponentSpec](raw)
	if err != nil {
		return err
	}
	sockets := make(map[string]cp.Vector, len(spec.Sockets))
	for name, p := range spec.Sockets {
		sockets[name] = cp.Vector{X: p.X, Y: p.Y}
	}
	return ecs.Add(w, e, component.MountPointsComponent.Kind(), &component.MountPoints{Sockets: sockets})
}

func addTarget(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TargetComponentSpec](raw)
	if err != nil {
		return err
	}
	kind, err := parseTargetKind(spec.Kind)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.TargetComponent.Kind(), &component.Target{Kind: kind, Armored: spec.Armored})
}

func addHealth(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.HealthComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.HealthComponent.Kind(), component.NewHealth(spec.Max))
}

func addStamina(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.StaminaComponentSpec](raw)
	if err != nil {
		return err
	}
	limit := orDefault(spec.Max, 100)
	return ecs.Add(w, e, component.StaminaComponent.Kind(), &component.Stamina{Current: limit, Max: limit})
}

func addWeapon(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.WeaponComponentSpec](raw)
	if err != nil {
		return err
	}
	wt, err := parseWeaponType(spec.Type)
	if err != nil {
		return err
	}
	category, err := parseCategory(spec.Category)
	if err != nil {
		return err
	}
	detection, err := parseDetection(spec.Detection)
	if err != nil {
		return err
	}

	weapon := &component.Weapon{
		Name:                   spec.Name,
		Type:                   wt,
		MassKg:                 orDefault(spec.MassKg, 10),
		BaseDamage:             spec.BaseDamage,
		DamageCoefficient:      orDefault(spec.DamageCoefficient, 1),
		ImpulseCoefficient:     orDefault(spec.ImpulseCoefficient, 1),
		AttackSpeedCoefficient: orDefault(spec.AttackSpeedCoefficient, 1),
		Category:               category,
		Durability:             orDefault(spec.Durability, 100),
		Detection:              detection,
		SwingSpeed:             orDefault(spec.SwingSpeed, 10),
	}
	weapon.MaxDurability = weapon.Durability
	return ecs.Add(w, e, component.WeaponComponent.Kind(), weapon)
}

func addWeaponTrace(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.WeaponTraceComponentSpec](raw)
	if err != nil {
		return err
	}
	if len(spec.Sockets) == 0 {
		return fmt.Errorf("weapon trace needs at least one socket")
	}
	sockets := make([]cp.Vector, 0, len(spec.Sockets))
	for _, s := range spec.Sockets {
		sockets = append(sockets, cp.Vector{X: s.X, Y: s.Y})
	}
	return ecs.Add(w, e, component.WeaponTraceComponent.Kind(), &component.WeaponTrace{
		Sockets: sockets,
		Prev:    make([]cp.Vector, len(sockets)),
	})
}

func addAttack(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.AttackComponent.Kind(), &component.Attack{LastHand: component.HandLeft})
}

func addAttackDetection(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.AttackDetectionComponent.Kind(), &component.AttackDetection{})
}

func addPendingDeathImpulse(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PendingDeathImpulseComponent.Kind(), &component.PendingDeathImpulse{})
}

func addPawn(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PawnComponentSpec](raw)
	if err != nil {
		return err
	}
	role, err := parsePawnRole(spec.Role)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.PawnComponent.Kind(), &component.Pawn{Role: role})
}

func addSwitchOrb(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.SwitchOrbComponent.Kind(), &component.SwitchOrb{})
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func parseLayer(s string) (component.BodyLayer, error) {
	switch strings.ToLower(s) {
	case "", "body":
		return component.LayerBody, nil
	case "weapon":
		return component.LayerWeapon, nil
	case "prop":
		return component.LayerProp, nil
	case "sensor":
		return component.LayerSensor, nil
	}
	return 0, fmt.Errorf("unknown layer %q", s)
}

func parseTargetKind(s string) (component.TargetKind, error) {
	switch strings.ToLower(s) {
	case "", "other":
		return component.TargetOther, nil
	case "character":
		return component.TargetCharacter, nil
	case "upper_body":
		return component.TargetUpperBodyPawn, nil
	case "prop":
		return component.TargetPhysicsProp, nil
	}
	return 0, fmt.Errorf("unknown target kind %q", s)
}

func parseWeaponType(s string) (component.WeaponType, error) {
	switch strings.ToLower(s) {
	case "", "one_handed":
		return component.WeaponOneHanded, nil
	case "two_handed":
		return component.WeaponTwoHanded, nil
	case "none":
		return component.WeaponNone, nil
	}
	return 0, fmt.Errorf("unknown weapon type %q", s)
}

func parseCategory(s string) (combat.DamageCategory, error) {
	switch strings.ToLower(s) {
	case "", "slash_pierce", "slash", "pierce":
		return combat.SlashPierce, nil
	case "blunt":
		return combat.Blunt, nil
	}
	return 0, fmt.Errorf("unknown damage category %q", s)
}

func parseDetection(s string) (component.DetectionMode, error) {
	switch strings.ToLower(s) {
	case "", "contact":
		return component.DetectContact, nil
	case "trace":
		return component.DetectTrace, nil
	}
	return 0, fmt.Errorf("unknown detection mode %q", s)
}

func parsePawnRole(s string) (component.PawnRole, error) {
	switch strings.ToLower(s) {
	case "", "lower":
		return component.RoleLowerBody, nil
	case "upper":
		return component.RoleUpperBody, nil
	}
	return 0, fmt.Errorf("unknown pawn role %q", s)
}
