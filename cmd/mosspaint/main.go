package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"time"

	"moss-painter/internal/config"
	"moss-painter/internal/job"
	"moss-painter/internal/logging"
	"moss-painter/internal/mathutil"
	"moss-painter/internal/painter"
	"moss-painter/internal/postprocess"
	"moss-painter/internal/preview"
	"moss-painter/internal/raster"
	"moss-painter/internal/scene"
	"moss-painter/internal/texture"
)

var up = mathutil.Vec3{0, 1, 0}

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	size := flag.Float64("size", 0, "Brush radius in world units (default: 2)")
	angle := flag.Float64("angle", 0, "Brush angle tolerance in degrees (default: 2)")
	distance := flag.Float64("distance", 0, "Moss inflation distance (default: 0.01)")
	mode := flag.String("mode", "", "Stroke mode: immediate or swept (default: immediate)")
	erase := flag.Bool("erase", false, "Erase a patch in the middle of the stroke afterwards")
	output := flag.String("output", "", "Output WebP path (default: out/moss.webp)")
	verbose := flag.Bool("v", false, "Log painter activity to stderr")

	flag.Parse()

	if *verbose {
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		BrushSize:    *size,
		BrushAngle:   *angle,
		MossDistance: *distance,
		StrokeMode:   *mode,
		Workers:      *workers,
		OutputPath:   *output,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tint, err := texture.LoadTint(cfg.MossTexture)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using default tint)\n", err)
		tint = texture.DefaultTint
	}

	loop := job.NewLoop()
	commits := 0
	opts, err := painter.OptionsFromConfig(cfg, loop, painter.SinkFunc(func(r painter.Renderable) {
		commits++
		fmt.Printf("  mesh #%d: %d triangles\n", commits, r.Triangles())
	}))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	p := painter.New(opts)
	defer p.Close()

	objects, self := demoScene()
	n := p.ConfigureSources(objects, self)

	params, strokeMode, err := painter.BrushFromConfig(cfg, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	params.Direction = up

	fmt.Println("Moss painter demo")
	fmt.Printf("Sources: %d, Workers: %d, Stroke: %s\n", n, cfg.Workers, strokeMode)
	fmt.Printf("Brush: radius %.2f, tolerance %.1f°, distance %.3f (%s normals)\n",
		params.Radius, params.AngleTolerance, cfg.MossDistance, cfg.NormalMode)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Diagonal stroke over the ground, then a dab on top of the rock.
	p.BeginStroke(params, strokeMode)
	for t := 1.0; t <= 7.0; t += 0.5 {
		p.ExtendStroke(mathutil.Vec3{t, 0, t}, up)
	}
	p.EndStroke()

	rock := objects[1]
	p.PaintAt(rock.Transform.MulPoint(mathutil.Vec3{1, 1.5, 1}), params)
	p.Apply()

	if *erase {
		e := params
		e.Add = false
		e.Radius = params.Radius * 0.75
		p.PaintAt(mathutil.Vec3{4, 0, 4}, e)
		p.Apply()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := loop.Run(ctx, cfg.PollInterval(), func() bool { return !p.Busy() }); err != nil {
		fmt.Fprintf(os.Stderr, "Error: painter did not settle: %v\n", err)
		os.Exit(1)
	}

	elapsed := time.Since(start)
	st := p.Stats()
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fms\n", float64(elapsed.Microseconds())/1000)
	fmt.Printf("Soup: %d triangles (added %d, erased %d)\n", p.Triangles(), st.Added, st.Erased)
	fmt.Printf("Jobs: %d launched, %d retired, %d probes, %d discarded\n",
		st.Launches, st.Retired, st.Probes, st.Discarded)

	img := renderPreview(p.Sources(), p.Renderable(), tint, cfg.RenderSize, cfg.Supersample)
	if err := preview.WriteWebP(cfg.WebPOutput, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Preview: %s\n", cfg.WebPOutput)
}

var stone = color.NRGBA{R: 150, G: 146, B: 140, A: 255}

// renderPreview draws every scanned source in stone grey with the moss on top.
func renderPreview(sources *scene.Cache, moss painter.Renderable, tint color.NRGBA, size, supersample int) *image.NRGBA {
	var layers []raster.Layer
	for i := 0; i < sources.Len(); i++ {
		b, ok := sources.EnsureScanned(i)
		if !ok {
			continue
		}
		layers = append(layers, raster.Layer{Vertices: b.Vertices, Indices: b.Triangles, Color: stone})
	}
	layers = append(layers, raster.Layer{
		Vertices: moss.Vertices,
		Indices:  moss.Indices,
		Color:    tint,
		Lift:     0.005,
	})
	img := raster.RenderMesh(layers, raster.DefaultCamera(), size, supersample)
	return postprocess.Downsample(img, supersample)
}
