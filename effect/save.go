package effect

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"heroesfx/raster"
)

// frameName builds "<source base>_<effect>_<frame>.<ext>".
func frameName(srcName, effect string, frame int, ext string) string {
	return fmt.Sprintf("%s_%s_%03d.%s", baseName(srcName), effect, frame, ext)
}

func animationName(srcName, effect string) string {
	return fmt.Sprintf("%s_%s.gif", baseName(srcName), effect)
}

func baseName(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

// render converts a raster frame to something the chosen format can
// encode, upscaled by scale.
func render(m *raster.Image, pal color.Palette, format string, scale int) image.Image {
	var img image.Image
	if format == "gif" {
		img = m.ToPaletted(pal)
	} else {
		img = m.ToNRGBA(pal)
	}
	return upscale(img, scale)
}

func upscale(img image.Image, scale int) image.Image {
	if scale <= 1 {
		return img
	}

	sr := img.Bounds()
	dr := image.Rect(0, 0, sr.Dx()*scale, sr.Dy()*scale)

	var dest draw.Image
	if p, ok := img.(*image.Paletted); ok {
		dest = image.NewPaletted(dr, p.Palette)
	} else {
		dest = image.NewNRGBA(dr)
	}
	draw.NearestNeighbor.Scale(dest, dr, img, sr, draw.Src, nil)

	return dest
}

func checkDest(dest string, overwrite bool) error {
	destFileInfo, err := os.Stat(dest)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot stat destination file %q: %w", dest, err)
		}
		return nil
	}

	if !destFileInfo.Mode().IsRegular() {
		return fmt.Errorf("destination is not a regular file %q: %s", dest, destFileInfo.Mode().String())
	} else if !overwrite {
		return fmt.Errorf("destination file already exists: %q", dest)
	}
	return nil
}

// writeFile runs encode against a temporary file in destDir that is renamed
// to destName once fully written. Nothing is left behind on failure.
func writeFile(destDir, destName string, overwrite bool, encode func(w io.Writer) error) (err error) {
	if err = checkDest(filepath.Join(destDir, destName), overwrite); err != nil {
		return err
	}

	outFile, err := os.CreateTemp(destDir, destName)
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", destName, defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", destName, defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), filepath.Join(destDir, destName)); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", destName, defErr)
			}
		} else {
			_ = os.Remove(outFile.Name())
		}
	}()

	if err = encode(outFile); err != nil {
		return err
	}

	canRename = true
	return nil
}

// save encodes img in format into destDir/destName.
func save(img image.Image, format, destDir, destName string, overwrite bool) error {
	var encode func(w io.Writer) error
	switch format {
	case "gif":
		encode = func(w io.Writer) error {
			if err := gif.Encode(w, img, nil); err != nil {
				return fmt.Errorf("could not encode GIF destination %q: %w", destName, err)
			}
			return nil
		}
	case "png":
		encode = func(w io.Writer) error {
			enc := png.Encoder{
				CompressionLevel: png.BestCompression,
				BufferPool:       pngPool,
			}
			if err := enc.Encode(w, img); err != nil {
				return fmt.Errorf("could not encode PNG destination %q: %w", destName, err)
			}
			return nil
		}
	case "bmp":
		encode = func(w io.Writer) error {
			if err := bmp.Encode(w, img); err != nil {
				return fmt.Errorf("could not encode BMP destination %q: %w", destName, err)
			}
			return nil
		}
	case "tiff":
		encode = func(w io.Writer) error {
			if err := tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
				return fmt.Errorf("could not encode TIFF destination %q: %w", destName, err)
			}
			return nil
		}
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}

	return writeFile(destDir, destName, overwrite, encode)
}

// saveAnimation writes frames as one looping GIF. Frames of different
// widths are centered on the widest one.
func saveAnimation(frames []*image.Paletted, delay int, destDir, destName string, overwrite bool) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to animate")
	}

	var size image.Point
	for _, f := range frames {
		size.X = max(size.X, f.Rect.Dx())
		size.Y = max(size.Y, f.Rect.Dy())
	}

	anim := &gif.GIF{
		Config: image.Config{
			ColorModel: frames[0].Palette,
			Width:      size.X,
			Height:     size.Y,
		},
	}
	for _, f := range frames {
		shifted := *f
		shifted.Rect = f.Rect.Add(image.Pt((size.X-f.Rect.Dx())/2, (size.Y-f.Rect.Dy())/2))
		anim.Image = append(anim.Image, &shifted)
		anim.Delay = append(anim.Delay, delay)
		anim.Disposal = append(anim.Disposal, gif.DisposalBackground)
	}

	return writeFile(destDir, destName, overwrite, func(w io.Writer) error {
		if err := gif.EncodeAll(w, anim); err != nil {
			return fmt.Errorf("could not encode animation %q: %w", destName, err)
		}
		return nil
	})
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
