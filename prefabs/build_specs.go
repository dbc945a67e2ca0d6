package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

// DecodeComponentSpec re-decodes one loosely typed component block into T.
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

type PlayerComponentSpec struct {
	MoveSpeed float64 `yaml:"move_speed"`
	JumpSpeed float64 `yaml:"jump_speed"`
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Image              string  `yaml:"image"`
	UseSource          bool    `yaml:"use_source"`
	OriginX            float64 `yaml:"origin_x"`
	OriginY            float64 `yaml:"origin_y"`
	CenterOriginIfZero bool    `yaml:"center_origin_if_zero"`
	// Anchor places the origin as a fraction of the image size, like (0.5, 0)
	// for top-center. It is ignored when origin_x or origin_y is set.
	Anchor     *[2]float64 `yaml:"anchor"`
	FacingLeft bool        `yaml:"facing_left"`
	Hidden     bool        `yaml:"hidden"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type AnimationDefComponentSpec struct {
	Row        int     `yaml:"row"`
	ColStart   int     `yaml:"col_start"`
	FrameCount int     `yaml:"frame_count"`
	FrameW     int     `yaml:"frame_w"`
	FrameH     int     `yaml:"frame_h"`
	FPS        float64 `yaml:"fps"`
	Loop       bool    `yaml:"loop"`
}

type AnimationComponentSpec struct {
	Sheet      string                               `yaml:"sheet"`
	Defs       map[string]AnimationDefComponentSpec `yaml:"defs"`
	Current    string                               `yaml:"current"`
	Frame      int                                  `yaml:"frame"`
	FrameTimer int                                  `yaml:"frame_timer"`
	Playing    bool                                 `yaml:"playing"`
}

type PhysicsBodyComponentSpec struct {
	Width              float64 `yaml:"width"`
	Height             float64 `yaml:"height"`
	Mass               float64 `yaml:"mass"`
	Friction           float64 `yaml:"friction"`
	Elasticity         float64 `yaml:"elasticity"`
	Static             bool    `yaml:"static"`
	FixedRotation      bool    `yaml:"fixed_rotation"`
	ScaleWithTransform bool    `yaml:"scale_with_transform"`
	DefaultWidth       float64 `yaml:"default_width"`
	DefaultHeight      float64 `yaml:"default_height"`
}

type CollisionLayerComponentSpec struct {
	Category uint32 `yaml:"category"`
	Mask     uint32 `yaml:"mask"`
}

type StarComponentSpec struct {
	Points   int     `yaml:"points"`
	Bounce   float64 `yaml:"bounce"`
	RespawnY float64 `yaml:"respawn_y"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
}

type CompassComponentSpec struct {
	Radius       float64 `yaml:"radius"`
	HideWhenIdle bool    `yaml:"hide_when_idle"`
}

type ScoreComponentSpec struct {
	Value  int        `yaml:"value"`
	Format string     `yaml:"format"`
	Color  *YAMLColor `yaml:"color"`
	Scale  float64    `yaml:"scale"`
}

// StarFieldSpec is star_field.yaml: which script lays the batch out and which
// prefab each star is built from.
type StarFieldSpec struct {
	Script string `yaml:"script"`
	Prefab string `yaml:"prefab"`
}
