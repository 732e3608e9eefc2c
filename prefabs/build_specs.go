package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

type LimbSpec struct {
	Bone    string  `yaml:"bone"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Radius  float64 `yaml:"radius"`
}

type PhysicsBodyComponentSpec struct {
	Width      float64    `yaml:"width"`
	Height     float64    `yaml:"height"`
	Radius     float64    `yaml:"radius"`
	Mass       float64    `yaml:"mass"`
	Friction   float64    `yaml:"friction"`
	Elasticity float64    `yaml:"elasticity"`
	Static     bool       `yaml:"static"`
	Kinematic  bool       `yaml:"kinematic"`
	FixedAngle bool       `yaml:"fixed_angle"`
	Layer      string     `yaml:"layer"`
	Limbs      []LimbSpec `yaml:"limbs"`
}

type HealthComponentSpec struct {
	Max float64 `yaml:"max"`
}

type TargetComponentSpec struct {
	Kind    string `yaml:"kind"`
	Armored bool   `yaml:"armored"`
}

type WeaponComponentSpec struct {
	Name                   string  `yaml:"name"`
	Type                   string  `yaml:"type"`
	MassKg                 float64 `yaml:"mass_kg"`
	BaseDamage             float64 `yaml:"base_damage"`
	DamageCoefficient      float64 `yaml:"damage_coefficient"`
	ImpulseCoefficient     float64 `yaml:"impulse_coefficient"`
	AttackSpeedCoefficient float64 `yaml:"attack_speed_coefficient"`
	Category               string  `yaml:"category"`
	Durability             float64 `yaml:"durability"`
	Detection              string  `yaml:"detection"`
	SwingSpeed             float64 `yaml:"swing_speed"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type WeaponTraceComponentSpec struct {
	Sockets []PointSpec `yaml:"sockets"`
}

type MountPointsComponentSpec struct {
	Sockets map[string]PointSpec `yaml:"sockets"`
}

type StaminaComponentSpec struct {
	Max float64 `yaml:"max"`
}

type PawnComponentSpec struct {
	Role string `yaml:"role"`
}
