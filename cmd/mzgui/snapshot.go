package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/1broseidon/mzgui/internal/cell"
	"github.com/1broseidon/mzgui/internal/geom"
	"github.com/1broseidon/mzgui/internal/platform"
	"github.com/1broseidon/mzgui/internal/window"
)

func runSnapshot(args []string) int {
	fs := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/mzgui/config.yaml)")
	out := fs.String("out", "", "Output image (.png, .bmp, .tif or .tiff)")
	scene := fs.String("scene", "", "Scene to render (default: config scene)")
	width := fs.Uint("width", 0, "Width in pixels (default: config window width)")
	height := fs.Uint("height", 0, "Height in pixels (default: config window height)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: mzgui snapshot --out FILE [--config PATH] [--scene NAME] [--width N --height N]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Render the scene off-screen and write it as an image.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if *out == "" {
		fmt.Fprintln(os.Stderr, "snapshot requires --out")
		return 2
	}
	encode, err := encoderFor(*out)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config
	if err := setupLogging(cfg.Logging, ""); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if *scene != "" {
		cfg.Scene = *scene
	}
	root, err := buildScene(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	size := cfg.Window.Size()
	if *width > 0 {
		size.Width = *width
	}
	if *height > 0 {
		size.Height = *height
	}

	img, err := renderOffscreen(cfg.Window.Name, size, root)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := encode(f, img); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "encode %s: %v\n", *out, err)
		return 1
	}
	if err := f.Close(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("wrote %s (%s)\n", *out, size)
	return 0
}

// renderOffscreen opens a headless window, draws root once and returns
// the presented frame.
func renderOffscreen(name string, size geom.Size, root cell.Drawable) (*image.NRGBA, error) {
	backend := platform.NewHeadless()
	sys, err := window.Init(backend)
	if err != nil {
		return nil, err
	}
	defer sys.Shutdown()

	w, err := window.New(sys, name, size, root, nil)
	if err != nil {
		return nil, err
	}
	if w.Size() != size {
		return nil, fmt.Errorf("could not allocate a %s buffer", size)
	}
	w.Draw()
	return w.Snapshot(), nil
}

type encoder func(io.Writer, image.Image) error

func encoderFor(path string) (encoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Encode, nil
	case ".bmp":
		return bmp.Encode, nil
	case ".tif", ".tiff":
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	}
	return nil, fmt.Errorf("unsupported image format %q (want .png, .bmp, .tif or .tiff)", filepath.Ext(path))
}
