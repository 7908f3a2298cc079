// softcube-window - Software 3D Renderer in a desktop window
// The same pipeline as softcube, presented through ebiten: every frame the
// framebuffer is copied into a texture and scaled to the window.
//
// Controls:
//
//	Arrows      - Nudge rotation
//	Space       - Apply random impulse
//	R           - Reset rotation
//	T           - Toggle texture on/off
//	X           - Toggle wireframe mode
//	C           - Cycle culling (back, front, none)
//	Esc         - Quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/taigrr/softcube/pkg/math3d"
	"github.com/taigrr/softcube/pkg/render"
	"github.com/taigrr/softcube/pkg/scene"
)

var (
	texturePath = flag.String("texture", "", "Path to texture image (PNG/JPG/BMP/TIFF/WebP)")
	modelPath   = flag.String("model", "", "Path to a .gltf/.glb model (default: built-in cube)")
	checker     = flag.Bool("checker", true, "Use a checkerboard texture when none is loaded")
	targetFPS   = flag.Int("fps", 60, "Target FPS")
	width       = flag.Int("width", 640, "Framebuffer width")
	height      = flag.Int("height", 480, "Framebuffer height")
	zoom        = flag.Int("zoom", 2, "Window scale factor")
	modeFlag    = flag.String("mode", "textured", "Render mode: flat, textured, wireframe, filled-wireframe")
	projFlag    = flag.String("projection", "matrix", "Projection: matrix or raw")
	cullFlag    = flag.String("cull", "back", "Culling: back, front or none")
	noClamp     = flag.Bool("noclamp", false, "Do not clamp light intensity to [0,1]")
	verbose     = flag.Bool("v", false, "Log renderer activity to stderr")
)

// errQuit ends the game loop without reporting an error.
var errQuit = errors.New("quit")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "softcube-window - Software 3D Renderer in a desktop window\n\n")
		fmt.Fprintf(os.Stderr, "Usage: softcube-window [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *verbose {
		render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := render.DefaultConfig(*width, *height)
	var err error
	if cfg.Mode, err = render.ParseRenderMode(*modeFlag); err != nil {
		return err
	}
	if cfg.Projection, err = render.ParseProjectionMode(*projFlag); err != nil {
		return err
	}
	if cfg.Cull, err = render.ParseCullMode(*cullFlag); err != nil {
		return err
	}
	cfg.ClampLight = !*noClamp

	sc, err := scene.Load(scene.Options{
		ModelPath:   *modelPath,
		TexturePath: *texturePath,
		Checker:     *checker,
		FPS:         *targetFPS,
	})
	if err != nil {
		return err
	}

	g := &game{scene: sc, fps: max(*targetFPS, 1)}
	if err := g.rebuild(cfg); err != nil {
		return err
	}

	ebiten.SetWindowTitle("softcube (" + sc.Name + ")")
	ebiten.SetWindowSize(cfg.Width*max(*zoom, 1), cfg.Height*max(*zoom, 1))
	ebiten.SetTPS(g.fps)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

// game adapts the renderer to ebiten.Game.
type game struct {
	renderer *render.Renderer
	scene    *scene.Scene
	fps      int

	fbImg   *ebiten.Image
	scratch []byte
}

func (g *game) rebuild(cfg render.Config) error {
	r, err := render.NewRenderer(cfg, nil)
	if err != nil {
		return err
	}
	g.renderer = r
	return nil
}

func (g *game) Update() error {
	const nudge = 0.9

	mode := g.renderer.Config().Mode
	var err error
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return errQuit
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		g.scene.Rotation.ApplyImpulse(math3d.V3(-nudge, 0, 0))
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		g.scene.Rotation.ApplyImpulse(math3d.V3(nudge, 0, 0))
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		g.scene.Rotation.ApplyImpulse(math3d.V3(0, -nudge, 0))
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		g.scene.Rotation.ApplyImpulse(math3d.V3(0, nudge, 0))
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.scene.Rotation.ApplyImpulse(math3d.V3(
			(rand.Float64()-0.5)*3,
			(rand.Float64()-0.5)*3,
			(rand.Float64()-0.5)*3,
		))
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.scene.Rotation.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		switch mode {
		case render.ModeTextured:
			err = g.renderer.SetMode(render.ModeFlat)
		case render.ModeFlat:
			err = g.renderer.SetMode(render.ModeTextured)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		if mode == render.ModeWireframe {
			err = g.renderer.SetMode(render.ModeFlat)
		} else {
			err = g.renderer.SetMode(render.ModeWireframe)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		next := g.renderer.Config()
		next.Cull = (next.Cull + 1) % (render.CullNone + 1)
		err = g.rebuild(next)
	}
	if err != nil {
		return err
	}

	g.scene.Step(1 / float64(g.fps))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Render(g.renderer)

	fb := g.renderer.Framebuffer()
	if g.fbImg == nil || len(g.scratch) != len(fb.Pixels)*4 {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.Width, fb.Height)
		g.scratch = make([]byte, len(fb.Pixels)*4)
	}

	if err := fb.RGBABytes(g.scratch); err != nil {
		render.Logger().Error("copy framebuffer", slog.Any("err", err))
		return
	}
	g.fbImg.WritePixels(g.scratch)
	screen.DrawImage(g.fbImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := g.renderer.Config()
	return cfg.Width, cfg.Height
}
