// Command svgcompose renders the drawings of a scene file
// (see package scene) as SVG, PNG, TIFF, BMP or PDF files.
//
//	svgcompose -scene icons.yaml -format png -size 256 -out build
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/svgcompose/scene"
	"github.com/benoitkugler/svgcompose/svgdraw"
	"github.com/benoitkugler/svgcompose/svgpdf"
	"github.com/benoitkugler/svgcompose/svgraster"
)

type config struct {
	scene   string
	format  string
	outDir  string
	size    int
	seedIDs bool
}

func main() {
	var (
		cfg     config
		verbose = flag.Bool("v", false, "log warnings and debug messages to stderr")
	)
	flag.StringVar(&cfg.scene, "scene", "", "scene file (.yaml, .yml or .toml)")
	flag.StringVar(&cfg.format, "format", "svg", "output format: svg, png, tiff, bmp or pdf")
	flag.StringVar(&cfg.outDir, "out", ".", "output directory")
	flag.IntVar(&cfg.size, "size", 256, "width and height of raster images, in pixels (PDF pages use points)")
	flag.BoolVar(&cfg.seedIDs, "seed-ids", false, "use sequential drawing ids, for reproducible outputs")
	flag.Parse()

	if *verbose {
		svgdraw.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if cfg.scene == "" {
		flag.Usage()
		os.Exit(2)
	}

	files, err := run(cfg)
	if err != nil {
		log.Fatal(err)
	}
	for _, file := range files {
		log.Println("written", file)
	}
}

// run renders the scene and returns the written files.
func run(cfg config) ([]string, error) {
	format := strings.ToLower(cfg.format)
	switch format {
	case "svg", "pdf", string(svgraster.PNG), string(svgraster.TIFF), string(svgraster.BMP):
	default:
		return nil, fmt.Errorf("unsupported output format %q", cfg.format)
	}
	if cfg.size <= 0 {
		return nil, fmt.Errorf("invalid size %d", cfg.size)
	}

	sc, err := scene.Load(cfg.scene)
	if err != nil {
		return nil, err
	}
	var ids svgdraw.IDGenerator = svgdraw.DefaultIDs
	if cfg.seedIDs {
		ids = &svgdraw.Sequence{}
	}
	drawings, err := sc.Build(ids)
	if err != nil {
		return nil, err
	}

	if err = os.MkdirAll(cfg.outDir, os.ModePerm); err != nil {
		return nil, err
	}

	var files []string
	for _, dr := range drawings {
		markup, err := dr.Markup()
		if err != nil {
			return nil, err
		}
		content, err := convert(markup, format, cfg.size)
		if err != nil {
			return nil, fmt.Errorf("drawing %s: %w", dr.Name, err)
		}
		file := filepath.Join(cfg.outDir, dr.Name+"."+format)
		if err = os.WriteFile(file, content, 0o644); err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

func convert(markup, format string, size int) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case "svg":
		buf.WriteString(markup)
	case "pdf":
		opts := svgpdf.Options{Width: float64(size), Height: float64(size)}
		if err := svgpdf.RenderSVG(strings.NewReader(markup), &buf, opts); err != nil {
			return nil, err
		}
	default:
		img, err := svgraster.RasterSVG(strings.NewReader(markup), size, size, svgraster.Options{Supersampling: 2})
		if err != nil {
			return nil, err
		}
		if err = svgraster.Encode(&buf, img, svgraster.Format(format)); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
