package palette

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	List struct{} `cmd:"" help:"List built-in palettes"`
	Export struct {
		Name string `arg:"" help:"Built-in palette name"`
		Out  string `arg:"" help:"Destination PAL file" type:"path"`
	} `cmd:"" help:"Write a built-in palette as a RIFF PAL file"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if kctx.Selected() == nil || kctx.Selected().Name != "export" {
		return nil
	}

	if _, ok := Builtin(c.Export.Name); !ok {
		return fmt.Errorf("unknown palette %q, expected one of %v", c.Export.Name, Names())
	}

	out, err := filepath.Abs(c.Export.Out)
	if err != nil {
		return fmt.Errorf("invalid output path %q: %w", c.Export.Out, err)
	}
	c.Export.Out = out

	return nil
}

func (c *CLICmd) Run(kctx *kong.Context) error {
	if kctx.Selected().Name == "list" {
		for _, name := range Names() {
			pal, _ := Builtin(name)
			fmt.Fprintf(kctx.Stdout, "%-8s %3d colors\n", name, len(pal))
		}
		return nil
	}

	pal, _ := Builtin(c.Export.Name)
	outFile, err := os.Create(c.Export.Out)
	if err != nil {
		return fmt.Errorf("could not create palette file %q: %w", c.Export.Out, err)
	}
	defer func() {
		if closeErr := outFile.Close(); closeErr != nil {
			slog.Error("could not close palette file", "name", c.Export.Out, "error", closeErr)
		}
	}()

	n, err := WriteTo(outFile, []color.Palette{pal})
	if err != nil {
		return fmt.Errorf("could not write palette file %q: %w", c.Export.Out, err)
	}

	slog.Info("exported palette", "name", c.Export.Name, "colors", len(pal), "bytes", n, "file", c.Export.Out)
	return nil
}
