package effect

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"heroesfx/palette"
	"heroesfx/raster"
)

// Output holds the flags shared by every command that writes frames.
type Output struct {
	Dest    string `help:"Destination folder for rendered frames. Relative to the source image folder if not absolute." default:"frames"`
	Palette string `help:"Palette name (bw, gray, plan9, vga16, web) or PAL file in RIFF format" default:"web" group:"palette"`
	Dither  bool   `help:"Apply dithering when mapping images to the palette" default:"false" group:"palette"`
	Format  string `help:"Frame file format" enum:"png,gif,bmp,tiff" default:"png" group:"output"`
	Scale   int    `help:"Integer upscale factor for saved frames" default:"1" group:"output"`
	Animate bool   `help:"Also write every frame into one animated GIF" default:"false" group:"output"`
	Delay   int    `help:"Animated GIF frame delay in 100ths of a second" default:"8" group:"output"`
	Force   bool   `help:"Overwrite existing files" default:"false" group:"output"`

	Colors color.Palette `kong:"-"`
}

// Prepare resolves Dest against baseDir and loads the palette.
func (o *Output) Prepare(baseDir string) error {
	if !filepath.IsAbs(o.Dest) {
		o.Dest = filepath.Join(baseDir, o.Dest)
	}

	switch {
	case o.Scale < 1:
		return fmt.Errorf("invalid scale: %d", o.Scale)
	case o.Delay < 0:
		return fmt.Errorf("invalid frame delay: %d", o.Delay)
	}

	pal, err := palette.LoadPalette(o.Palette)
	if err != nil {
		return err
	}
	o.Colors = pal

	return nil
}

// LoadImage decodes the image at path and maps it to the output palette.
func (o *Output) LoadImage(path string) (*raster.Image, error) {
	imgFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open image %q: %w", path, err)
	}
	defer imgFile.Close()

	img, _, err := image.Decode(imgFile)
	if err != nil {
		return nil, fmt.Errorf("could not decode image %q: %w", path, err)
	}

	return raster.FromImage(img, o.Colors, o.Dither), nil
}

func sourcePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid source path %q: %w", path, err)
	}
	return abs, nil
}
