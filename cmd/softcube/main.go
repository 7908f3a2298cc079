// softcube - Software 3D Renderer in the Terminal
// Spins a flat-shaded (optionally textured) cube, or a GLTF model, drawn by
// a scanline rasterizer into half-block terminal cells.
//
// Controls:
//
//	Arrows/WASD - Nudge rotation
//	Q/E         - Nudge roll
//	Space       - Apply random impulse
//	R           - Reset rotation
//	T           - Toggle texture on/off
//	X           - Toggle wireframe mode
//	F           - Toggle filled wireframe
//	C           - Cycle culling (back, front, none)
//	P           - Toggle projection (matrix, raw)
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/softcube/pkg/math3d"
	"github.com/taigrr/softcube/pkg/render"
	"github.com/taigrr/softcube/pkg/scene"
)

var (
	texturePath  = flag.String("texture", "", "Path to texture image (PNG/JPG/BMP/TIFF/WebP)")
	modelPath    = flag.String("model", "", "Path to a .gltf/.glb model (default: built-in cube)")
	checker      = flag.Bool("checker", false, "Use a checkerboard texture when none is loaded")
	targetFPS    = flag.Int("fps", 30, "Target FPS")
	bgColor      = flag.String("bg", "0,0,0", "Background color (R,G,B)")
	modeFlag     = flag.String("mode", "flat", "Render mode: flat, textured, wireframe, filled-wireframe")
	projFlag     = flag.String("projection", "matrix", "Projection: matrix or raw")
	cullFlag     = flag.String("cull", "back", "Culling: back, front or none")
	noClamp      = flag.Bool("noclamp", false, "Do not clamp light intensity to [0,1]")
	snapshotPath = flag.String("snapshot", "", "Render a single frame to this PNG file and exit")
	snapSize     = flag.String("size", "320x240", "Snapshot framebuffer size (WxH)")
	snapAngles   = flag.String("angles", "0,0,0", "Snapshot rotation angles in radians (X,Y,Z)")
	snapScale    = flag.Int("scale", 1, "Snapshot upscale factor")
	verbose      = flag.Bool("v", false, "Log renderer activity to stderr")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "softcube - Software 3D Renderer in the Terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: softcube [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Arrows/WASD - Nudge rotation\n")
		fmt.Fprintf(os.Stderr, "  Q/E         - Nudge roll\n")
		fmt.Fprintf(os.Stderr, "  Space       - Random spin\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset rotation\n")
		fmt.Fprintf(os.Stderr, "  T           - Toggle texture\n")
		fmt.Fprintf(os.Stderr, "  X           - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  F           - Toggle filled wireframe\n")
		fmt.Fprintf(os.Stderr, "  C           - Cycle culling\n")
		fmt.Fprintf(os.Stderr, "  P           - Toggle projection\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if *verbose {
		render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var err error
	if *snapshotPath != "" {
		err = snapshot()
	} else {
		err = run()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// baseConfig builds a renderer config for a width x height buffer from the
// command line flags.
func baseConfig(width, height int) (render.Config, error) {
	cfg := render.DefaultConfig(width, height)

	var bgR, bgG, bgB uint8
	if _, err := fmt.Sscanf(*bgColor, "%d,%d,%d", &bgR, &bgG, &bgB); err != nil {
		return cfg, fmt.Errorf("parse -bg %q: %w", *bgColor, err)
	}
	cfg.Background = render.RGB(bgR, bgG, bgB)

	mode, err := render.ParseRenderMode(*modeFlag)
	if err != nil {
		return cfg, err
	}
	proj, err := render.ParseProjectionMode(*projFlag)
	if err != nil {
		return cfg, err
	}
	cull, err := render.ParseCullMode(*cullFlag)
	if err != nil {
		return cfg, err
	}
	cfg.Mode, cfg.Projection, cfg.Cull = mode, proj, cull
	cfg.ClampLight = !*noClamp

	// The default raw factor suits a 640 pixel window. Scale it to the
	// buffer so the cube stays in view.
	if cfg.Projection == render.ProjectRawDivide {
		cfg.Camera.FOVFactor = float64(min(width, height))
	}
	return cfg, nil
}

func loadScene() (*scene.Scene, error) {
	return scene.Load(scene.Options{
		ModelPath:   *modelPath,
		TexturePath: *texturePath,
		Checker:     *checker,
		FPS:         *targetFPS,
	})
}

// snapshot renders one frame to a PNG file.
func snapshot() error {
	var width, height int
	if _, err := fmt.Sscanf(*snapSize, "%dx%d", &width, &height); err != nil {
		return fmt.Errorf("parse -size %q: %w", *snapSize, err)
	}
	var angles math3d.Vec3
	if _, err := fmt.Sscanf(*snapAngles, "%g,%g,%g", &angles.X, &angles.Y, &angles.Z); err != nil {
		return fmt.Errorf("parse -angles %q: %w", *snapAngles, err)
	}

	cfg, err := baseConfig(width, height)
	if err != nil {
		return err
	}
	sc, err := loadScene()
	if err != nil {
		return err
	}
	r, err := render.NewRenderer(cfg, nil)
	if err != nil {
		return err
	}

	sc.Rotation.Angles = angles
	stats := sc.Render(r)
	if err := r.Framebuffer().SavePNG(*snapshotPath, *snapScale); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d of %d faces drawn)\n", *snapshotPath, stats.Drawn, stats.Faces)
	return nil
}

// viewer is the interactive terminal state. It is only touched from the
// main loop.
type viewer struct {
	renderer *render.Renderer
	scene    *scene.Scene
	textured bool
}

// resize rebuilds the renderer for a terminal of cols x rows cells.
func (v *viewer) resize(cols, rows int) error {
	w, h := render.TerminalSize(cols, rows)
	if w <= 0 || h <= 0 {
		return nil
	}
	cfg, err := baseConfig(w, h)
	if err != nil {
		return err
	}
	cur := v.renderer.Config()
	cfg.Mode, cfg.Cull, cfg.Projection = cur.Mode, cur.Cull, cur.Projection
	if cfg.Projection == render.ProjectRawDivide {
		cfg.Camera.FOVFactor = float64(min(w, h))
	}
	return v.rebuild(cfg)
}

func (v *viewer) rebuild(cfg render.Config) error {
	r, err := render.NewRenderer(cfg, nil)
	if err != nil {
		return err
	}
	v.renderer = r
	return nil
}

// setMode switches render mode, keeping the texture toggle in mind.
func (v *viewer) setMode(m render.RenderMode) error {
	if m == render.ModeFlat && v.textured {
		m = render.ModeTextured
	}
	return v.renderer.SetMode(m)
}

func run() error {
	sc, err := loadScene()
	if err != nil {
		return err
	}

	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	cfg, err := baseConfig(render.TerminalSize(width, height))
	if err != nil {
		return err
	}
	v := &viewer{scene: sc, textured: cfg.Mode == render.ModeTextured}
	if err := v.rebuild(cfg); err != nil {
		return err
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	// Context for clean shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fps := max(*targetFPS, 1)
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	lastFrame := time.Now()

	const nudge = 0.9 // rad/s added per key press

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-term.Events():
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				if err := v.resize(width, height); err != nil {
					return err
				}

			case uv.KeyPressEvent:
				mode := v.renderer.Config().Mode
				var err error
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					return nil
				case ev.MatchString("w", "up"):
					sc.Rotation.ApplyImpulse(math3d.V3(-nudge, 0, 0))
				case ev.MatchString("s", "down"):
					sc.Rotation.ApplyImpulse(math3d.V3(nudge, 0, 0))
				case ev.MatchString("a", "left"):
					sc.Rotation.ApplyImpulse(math3d.V3(0, -nudge, 0))
				case ev.MatchString("d", "right"):
					sc.Rotation.ApplyImpulse(math3d.V3(0, nudge, 0))
				case ev.MatchString("q"):
					sc.Rotation.ApplyImpulse(math3d.V3(0, 0, -nudge))
				case ev.MatchString("e"):
					sc.Rotation.ApplyImpulse(math3d.V3(0, 0, nudge))
				case ev.MatchString("space"):
					sc.Rotation.ApplyImpulse(math3d.V3(
						(rand.Float64()-0.5)*3,
						(rand.Float64()-0.5)*3,
						(rand.Float64()-0.5)*3,
					))
				case ev.MatchString("r"):
					sc.Rotation.Reset()
				case ev.MatchString("t"):
					v.textured = !v.textured
					if mode == render.ModeFlat || mode == render.ModeTextured {
						err = v.setMode(render.ModeFlat)
					}
				case ev.MatchString("x"):
					if mode == render.ModeWireframe {
						err = v.setMode(render.ModeFlat)
					} else {
						err = v.setMode(render.ModeWireframe)
					}
				case ev.MatchString("f"):
					if mode == render.ModeFilledWireframe {
						err = v.setMode(render.ModeFlat)
					} else {
						err = v.setMode(render.ModeFilledWireframe)
					}
				case ev.MatchString("c"):
					next := v.renderer.Config()
					next.Cull = (next.Cull + 1) % (render.CullNone + 1)
					err = v.rebuild(next)
				case ev.MatchString("p"):
					next := v.renderer.Config()
					if next.Projection == render.ProjectMatrix {
						next.Projection = render.ProjectRawDivide
						next.Camera.FOVFactor = float64(min(next.Width, next.Height))
					} else {
						next.Projection = render.ProjectMatrix
					}
					err = v.rebuild(next)
				}
				if err != nil {
					return err
				}
			}

		case now := <-ticker.C:
			dt := now.Sub(lastFrame).Seconds()
			lastFrame = now
			if dt > 0.1 {
				dt = 0.1
			}

			sc.Step(dt)
			sc.Render(v.renderer)

			term.Draw(v.renderer.Framebuffer())
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}
