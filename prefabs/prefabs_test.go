package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedPrefabsDecode(t *testing.T) {
	cases := []struct {
		file       string
		components []string
	}{
		{"player.yaml", []string{"player_tag", "player", "input", "player_collision", "transform", "sprite", "animation", "physics_body", "collision_layer"}},
		{"star.yaml", []string{"star", "transform", "sprite", "physics_body", "collision_layer"}},
		{"compass.yaml", []string{"compass", "transform", "sprite", "render_layer"}},
		{"platform.yaml", []string{"platform_tag", "physics_body", "sprite"}},
		{"background.yaml", []string{"background_tag", "sprite"}},
		{"prefabs/score.yaml", []string{"score", "screen_space", "sprite"}},
	}
	for _, c := range cases {
		t.Run(c.file, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(c.file)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			for _, name := range c.components {
				if _, ok := spec.Components[name]; !ok {
					t.Fatalf("expected component %q in %s", name, c.file)
				}
			}
		})
	}
}

func TestDecodePlayerComponents(t *testing.T) {
	spec, err := LoadEntityBuildSpec("player.yaml")
	if err != nil {
		t.Fatal(err)
	}

	player, err := DecodeComponentSpec[PlayerComponentSpec](spec.Components["player"])
	if err != nil {
		t.Fatal(err)
	}
	if player.MoveSpeed != 160 || player.JumpSpeed != 330 {
		t.Fatalf("unexpected player spec %+v", player)
	}

	anim, err := DecodeComponentSpec[AnimationComponentSpec](spec.Components["animation"])
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]AnimationDefComponentSpec{
		"left":  {ColStart: 0, FrameCount: 4, FrameW: 32, FrameH: 48, FPS: 10, Loop: true},
		"turn":  {ColStart: 4, FrameCount: 1, FrameW: 32, FrameH: 48, FPS: 20},
		"right": {ColStart: 5, FrameCount: 4, FrameW: 32, FrameH: 48, FPS: 10, Loop: true},
	}
	for name, def := range want {
		if anim.Defs[name] != def {
			t.Fatalf("clip %q: expected %+v, got %+v", name, def, anim.Defs[name])
		}
	}

	layer, err := DecodeComponentSpec[CollisionLayerComponentSpec](spec.Components["collision_layer"])
	if err != nil {
		t.Fatal(err)
	}
	if layer.Category != 2 || layer.Mask != 1 {
		t.Fatalf("unexpected collision layer %+v", layer)
	}
}

func TestDecodeCompassAndScore(t *testing.T) {
	compassSpec, err := LoadEntityBuildSpec("compass.yaml")
	if err != nil {
		t.Fatal(err)
	}
	c, err := DecodeComponentSpec[CompassComponentSpec](compassSpec.Components["compass"])
	if err != nil {
		t.Fatal(err)
	}
	if c.Radius != 50 || c.HideWhenIdle {
		t.Fatalf("unexpected compass spec %+v", c)
	}
	sprite, err := DecodeComponentSpec[SpriteComponentSpec](compassSpec.Components["sprite"])
	if err != nil {
		t.Fatal(err)
	}
	if sprite.Anchor == nil || sprite.Anchor[0] != 0.5 || sprite.Anchor[1] != 0 {
		t.Fatalf("expected top-center anchor, got %v", sprite.Anchor)
	}

	scoreSpec, err := LoadEntityBuildSpec("score.yaml")
	if err != nil {
		t.Fatal(err)
	}
	s, err := DecodeComponentSpec[ScoreComponentSpec](scoreSpec.Components["score"])
	if err != nil {
		t.Fatal(err)
	}
	if s.Format != "Score: %d" || s.Scale != 2 || s.Color == nil {
		t.Fatalf("unexpected score spec %+v", s)
	}
	if got := color.NRGBAModel.Convert(s.Color.Color).(color.NRGBA); got != (color.NRGBA{A: 255}) {
		t.Fatalf("expected opaque black, got %v", got)
	}
}

func TestDecodeComponentSpecNil(t *testing.T) {
	got, err := DecodeComponentSpec[PlayerComponentSpec](nil)
	if err != nil || got != (PlayerComponentSpec{}) {
		t.Fatalf("expected zero spec, got %+v err=%v", got, err)
	}
}

func TestStarFieldSpecAndScript(t *testing.T) {
	spec, err := LoadSpec[StarFieldSpec]("star_field.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if spec.Script != "star_field.tengo" || spec.Prefab != "star.yaml" {
		t.Fatalf("unexpected star field spec %+v", spec)
	}
	for _, name := range []string{spec.Script, "scripts/star_field.tengo", "prefabs/scripts/star_field.tengo"} {
		if _, err := LoadScript(name); err != nil {
			t.Fatalf("LoadScript(%q): %v", name, err)
		}
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: `"#ff8000"`, want: color.NRGBA{R: 255, G: 128, A: 255}},
		{in: `"00ff0080"`, want: color.NRGBA{G: 255, A: 128}},
		{in: `"#fff"`, wantErr: true},
		{in: `"#gg0000"`, wantErr: true},
		{in: `[1, 2]`, wantErr: true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			var got YAMLColor
			err := yaml.Unmarshal([]byte(c.in), &got)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got.Color != c.want {
				t.Fatalf("expected %v, got %v", c.want, got.Color)
			}
		})
	}
}

func TestDiskPrefabWins(t *testing.T) {
	dir := t.TempDir()
	old := Dir
	Dir = dir
	t.Cleanup(func() { Dir = old })

	override := "name: compass\ncomponents:\n  compass:\n    radius: 75\n"
	if err := os.WriteFile(filepath.Join(dir, "compass.yaml"), []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}

	spec, err := LoadEntityBuildSpec("compass.yaml")
	if err != nil {
		t.Fatal(err)
	}
	c, err := DecodeComponentSpec[CompassComponentSpec](spec.Components["compass"])
	if err != nil {
		t.Fatal(err)
	}
	if c.Radius != 75 {
		t.Fatalf("expected disk override radius 75, got %v", c.Radius)
	}
}

func TestRelevantDebounces(t *testing.T) {
	last := make(map[string]time.Time)
	now := time.Unix(1000, 0)
	cases := []struct {
		name  string
		event fsnotify.Event
		at    time.Time
		want  bool
	}{
		{"write_yaml", fsnotify.Event{Name: "a.yaml", Op: fsnotify.Write}, now, true},
		{"repeat_inside_window", fsnotify.Event{Name: "a.yaml", Op: fsnotify.Write}, now.Add(50 * time.Millisecond), false},
		{"repeat_after_window", fsnotify.Event{Name: "a.yaml", Op: fsnotify.Write}, now.Add(200 * time.Millisecond), true},
		{"script", fsnotify.Event{Name: "scripts/s.tengo", Op: fsnotify.Create}, now, true},
		{"other_file", fsnotify.Event{Name: "notes.txt", Op: fsnotify.Write}, now, false},
		{"chmod_only", fsnotify.Event{Name: "b.yml", Op: fsnotify.Chmod}, now, false},
	}
	for _, c := range cases {
		if got := relevant(c.event, last, c.at); got != c.want {
			t.Fatalf("%s: expected %v, got %v", c.name, c.want, got)
		}
	}
}

func TestWatcherReportsEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	target := filepath.Join(dir, "star.yaml")
	if err := os.WriteFile(target, []byte("name: star\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if filepath.Base(name) != "star.yaml" {
			t.Fatalf("unexpected event for %q", name)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for a watcher event")
	}
}
