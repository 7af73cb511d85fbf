// Package palette provides the color tables raster images are indexed
// against, either built in or loaded from RIFF PAL files.
package palette

import (
	"fmt"
	"image/color"
	stdpalette "image/color/palette"
	"os"
	"slices"
	"sort"
)

var builtins = map[string]func() color.Palette{
	"bw": func() color.Palette {
		return color.Palette{color.Black, color.White}
	},
	"gray": gray,
	"web": func() color.Palette {
		return slices.Clone(stdpalette.WebSafe)
	},
	"plan9": func() color.Palette {
		return slices.Clone(stdpalette.Plan9)
	},
	"vga16": func() color.Palette {
		pal := make(color.Palette, 0, 16)
		for _, rgb := range vga16 {
			pal = append(pal, color.RGBA{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), A: 0xFF})
		}
		return pal
	},
}

var vga16 = [16]uint32{
	0x000000, 0x0000AA, 0x00AA00, 0x00AAAA, 0xAA0000, 0xAA00AA, 0xAA5500, 0xAAAAAA,
	0x555555, 0x5555FF, 0x55FF55, 0x55FFFF, 0xFF5555, 0xFF55FF, 0xFFFF55, 0xFFFFFF,
}

func gray() color.Palette {
	pal := make(color.Palette, 256)
	for i := range pal {
		pal[i] = color.Gray{Y: uint8(i)}
	}
	return pal
}

// Names lists the built-in palettes.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtin returns a copy of a built-in palette.
func Builtin(name string) (color.Palette, bool) {
	fn, ok := builtins[name]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// LoadPalette resolves name as a built-in palette or, failing that, as the
// path of a RIFF PAL file whose first palette is returned.
func LoadPalette(name string) (color.Palette, error) {
	if pal, ok := Builtin(name); ok {
		return pal, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("palette %q is neither built in (%v) nor a readable file: %w", name, Names(), err)
	}
	defer f.Close()

	pals, err := ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("could not load palette file %q: %w", name, err)
	} else if len(pals) == 0 || len(pals[0]) == 0 {
		return nil, fmt.Errorf("palette file %q holds no colors", name)
	}

	// raster planes hold 8-bit indices
	return pals[0][:min(len(pals[0]), 256)], nil
}
