package effect

import (
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"heroesfx/parallel"
	"heroesfx/raster"
)

// writePNG stores a width x height gradient with a transparent first pixel.
func writePNG(t *testing.T, dir string, width, height int) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 40), G: uint8(y * 40), B: 0x80, A: 0xFF})
		}
	}
	img.SetNRGBA(0, 0, color.NRGBA{})

	path := filepath.Join(dir, "unit.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultPreset(t *testing.T) {
	p := DefaultPreset()
	if p.DeathWave.Width <= 0 || p.DeathWave.Frames <= 0 || p.DeathWave.Easing == "" {
		t.Errorf("default death wave preset incomplete: %+v", p.DeathWave)
	}
	if p.Ripple.Frequency <= 0 || p.Ripple.Frames <= 0 {
		t.Errorf("default ripple preset incomplete: %+v", p.Ripple)
	}
}

func TestLoadPresetOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	if err := os.WriteFile(path, []byte("ripple:\n  frequency: 4.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPreset(path)
	if err != nil {
		t.Fatalf("LoadPreset: %v", err)
	}
	if p.Ripple.Frequency != 4.5 {
		t.Errorf("Ripple.Frequency = %g, want 4.5", p.Ripple.Frequency)
	}

	def := DefaultPreset()
	if p.Ripple.Frames != def.Ripple.Frames || p.DeathWave != def.DeathWave {
		t.Errorf("values missing from the file should keep their defaults, got %+v", p)
	}
}

func TestLoadPresetErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadPreset(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadPreset of a missing file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("ripple: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPreset(bad); err == nil {
		t.Error("LoadPreset of invalid YAML should fail")
	}
}

func ptr[T any](v T) *T {
	return &v
}

func TestPick(t *testing.T) {
	if got := *pick(nil, 7); got != 7 {
		t.Errorf("pick(nil, 7) = %d, want 7", got)
	}
	if got := *pick(ptr(3), 7); got != 3 {
		t.Errorf("pick(3, 7) = %d, want 3", got)
	}
	if got := *pick(ptr(0), 7); got != 0 {
		t.Errorf("pick(0, 7) = %d, a given zero should win", got)
	}
	if got := *pick(nil, "linear"); got != "linear" {
		t.Errorf(`pick(nil, "linear") = %q, want "linear"`, got)
	}
}

func TestValidateKeepsExplicitZero(t *testing.T) {
	src := writePNG(t, t.TempDir(), 4, 4)

	wave := DeathWaveCmd{Source: src, Width: ptr(4), Height: ptr(0), Output: Output{Palette: "web", Scale: 1}}
	if err := wave.Validate(nil); err != nil {
		t.Fatalf("DeathWaveCmd.Validate: %v", err)
	}
	if *wave.Height != 0 {
		t.Errorf("Height = %d, want the given 0", *wave.Height)
	}
	if *wave.Frames != DefaultPreset().DeathWave.Frames {
		t.Errorf("Frames = %d, want preset value", *wave.Frames)
	}

	ripple := RippleCmd{Source: src, ScaleX: ptr(0.0), Frequency: ptr(1.0), Frames: ptr(1), Output: Output{Palette: "web", Scale: 1}}
	if err := ripple.Validate(nil); err != nil {
		t.Fatalf("RippleCmd.Validate: %v", err)
	}
	if *ripple.ScaleX != 0 {
		t.Errorf("ScaleX = %g, want the given 0", *ripple.ScaleX)
	}
}

func TestNames(t *testing.T) {
	if got := frameName("/tmp/art/knight.webp", "wave", 7, "png"); got != "knight_wave_007.png" {
		t.Errorf("frameName = %q, want knight_wave_007.png", got)
	}
	if got := animationName("knight.png", "ripple"); got != "knight_ripple.gif" {
		t.Errorf("animationName = %q, want knight_ripple.gif", got)
	}
}

func TestUpscale(t *testing.T) {
	m := raster.NewImage(2, 1)
	m.Reset()
	m.SetPixel(1, 0, 1, raster.Opaque)
	pal := color.Palette{color.Black, color.White}

	img := upscale(m.ToNRGBA(pal), 3)
	if img.Bounds() != image.Rect(0, 0, 6, 3) {
		t.Fatalf("bounds = %v, want 6x3", img.Bounds())
	}
	if _, _, _, a := img.At(1, 1).RGBA(); a != 0 {
		t.Errorf("upscaled transparent pixel alpha = %d, want 0", a)
	}
	if r, _, _, _ := img.At(4, 2).RGBA(); r != 0xFFFF {
		t.Errorf("upscaled white pixel red = %#x, want 0xffff", r)
	}

	if _, ok := upscale(m.ToPaletted(pal), 2).(*image.Paletted); !ok {
		t.Error("upscaling a paletted image should keep it paletted")
	}
}

func TestSaveRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))

	for _, format := range []string{"png", "gif", "bmp", "tiff"} {
		name := "frame." + format
		var src image.Image = img
		if format == "gif" {
			src = raster.NewImage(2, 2).ToPaletted(color.Palette{color.Black})
		}

		if err := save(src, format, dir, name, false); err != nil {
			t.Fatalf("save %s: %v", format, err)
		}
		if err := save(src, format, dir, name, false); err == nil {
			t.Errorf("second save of %s without overwrite should fail", format)
		}
		if err := save(src, format, dir, name, true); err != nil {
			t.Errorf("save %s with overwrite: %v", format, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 4 {
		t.Errorf("%d files in destination, want 4 (temporary files left behind?)", len(entries))
	}

	if err := save(img, "jpeg2000", dir, "x.jp2", false); err == nil {
		t.Error("save with an unknown format should fail")
	}
}

func TestSaveAnimationLeavesNothingOnFailure(t *testing.T) {
	dir := t.TempDir()

	good := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black})
	bad := image.NewPaletted(image.Rect(0, 0, 2, 2), nil)
	if err := saveAnimation([]*image.Paletted{good, bad}, 5, dir, "anim.gif", false); err == nil {
		t.Fatal("saveAnimation with an empty palette frame should fail")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("%d files left after a failed animation, want none", len(entries))
	}

	if err := saveAnimation([]*image.Paletted{good}, 5, dir, "anim.gif", false); err != nil {
		t.Fatalf("saveAnimation: %v", err)
	}
	if err := saveAnimation([]*image.Paletted{good}, 5, dir, "anim.gif", false); err == nil {
		t.Error("second saveAnimation without overwrite should fail")
	}
}

func TestOutputPrepare(t *testing.T) {
	o := Output{Dest: "frames", Palette: "vga16", Scale: 1}
	if err := o.Prepare("/data/art"); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if o.Dest != filepath.Join("/data/art", "frames") {
		t.Errorf("Dest = %q, want /data/art/frames", o.Dest)
	}
	if len(o.Colors) != 16 {
		t.Errorf("Colors has %d entries, want 16", len(o.Colors))
	}

	bad := Output{Dest: "/tmp", Palette: "vga16", Scale: 0}
	if err := bad.Prepare("/"); err == nil {
		t.Error("Prepare should reject a zero scale")
	}
	bad = Output{Dest: "/tmp", Palette: "no-such-palette", Scale: 1}
	if err := bad.Prepare("/"); err == nil {
		t.Error("Prepare should reject an unknown palette")
	}
}

func TestRippleCmd(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, 6, 5)

	cmd := RippleCmd{
		Source: src,
		Frames: ptr(3),
		Start:  9,
		Output: Output{Dest: "out", Palette: "web", Format: "png", Scale: 2, Animate: true, Delay: 5},
	}
	if err := cmd.Validate(nil); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if *cmd.Frequency != DefaultPreset().Ripple.Frequency {
		t.Errorf("Frequency = %g, want preset value", *cmd.Frequency)
	}

	pool := parallel.Start(2)
	defer pool.Close()

	if err := cmd.Run(pool); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for frame := range 3 {
		name := filepath.Join(dir, "out", frameName(src, "ripple", frame, "png"))
		f, err := os.Open(name)
		if err != nil {
			t.Fatalf("frame %d missing: %v", frame, err)
		}
		cfg, err := png.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Fatalf("frame %d: %v", frame, err)
		}
		if cfg.Height != 10 || cfg.Width < 12 || cfg.Width%2 != 0 {
			t.Errorf("frame %d size = %dx%d, want height 10 and an even width of at least 12", frame, cfg.Width, cfg.Height)
		}
	}

	f, err := os.Open(filepath.Join(dir, "out", animationName(src, "ripple")))
	if err != nil {
		t.Fatalf("animation missing: %v", err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode animation: %v", err)
	}
	if len(anim.Image) != 3 {
		t.Errorf("animation has %d frames, want 3", len(anim.Image))
	}
}

func TestDeathWaveCmdSweep(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, 8, 6)

	cmd := DeathWaveCmd{
		Source: src,
		Sweep:  true,
		Frames: ptr(4),
		Height: ptr(2),
		Output: Output{Dest: "out", Palette: "plan9", Format: "gif", Scale: 1},
	}
	if err := cmd.Validate(nil); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if *cmd.Width != DefaultPreset().DeathWave.Width {
		t.Errorf("Width = %d, want preset value", *cmd.Width)
	}

	pool := parallel.Start(3)
	defer pool.Close()

	if err := cmd.Run(pool); err != nil {
		t.Fatalf("Run: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "out"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 4 {
		t.Errorf("%d files written, want 4", len(entries))
	}

	// a second run must not clobber the frames
	again := cmd
	if err := again.Run(pool); err == nil {
		t.Error("rerun without --force should fail")
	}
}

func TestDeathWaveCmdValidate(t *testing.T) {
	src := writePNG(t, t.TempDir(), 4, 4)

	cmd := DeathWaveCmd{Source: src, Easing: ptr("wobble"), Output: Output{Palette: "web", Scale: 1}}
	if err := cmd.Validate(nil); err == nil {
		t.Error("Validate should reject an unknown easing")
	}

	cmd = DeathWaveCmd{Source: src, Width: ptr(-3), Output: Output{Palette: "web", Scale: 1}}
	if err := cmd.Validate(nil); err == nil {
		t.Error("Validate should reject a negative width")
	}
}
