// mapview is an SDL2 debug viewer for chunked tile maps. It draws tiles as
// colored rectangles and chunk boundaries as outlines so culling and object
// deduplication can be inspected visually.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/tilemap/internal/config"
	"github.com/Faultbox/tilemap/internal/logger"
	"github.com/Faultbox/tilemap/pkg/geom"
	"github.com/Faultbox/tilemap/pkg/spatial"
	"github.com/Faultbox/tilemap/pkg/tilemap"
)

func init() {
	// SDL calls must be made from the main thread.
	runtime.LockOSThread()
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Map.Path == "" {
		fmt.Fprintln(os.Stderr, "Usage: mapview -map <map.tmj> [-width W] [-height H] [-margin N]")
		os.Exit(1)
	}

	log := logger.New(logger.Default(cfg.Logging.Level, cfg.Logging.LogFile))
	defer log.Sync()

	load := tilemap.Load
	if cfg.Map.Strict {
		load = tilemap.LoadStrict
	}
	m, err := load(cfg.Map.Path, log)
	if err != nil {
		log.Error("failed to load map", zap.String("path", cfg.Map.Path), zap.Error(err))
		os.Exit(1)
	}

	v, err := newViewer(cfg, m, log)
	if err != nil {
		log.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		log.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	log.Info("viewer closed normally")
}

// tileset fill colors, cycled by tileset index.
var palette = [][3]uint8{
	{102, 178, 255},
	{255, 178, 102},
	{153, 255, 153},
	{255, 153, 204},
	{204, 153, 255},
	{255, 255, 153},
}

type viewer struct {
	cfg *config.Config
	m   *tilemap.Map
	log *zap.Logger

	window   *sdl.Window
	renderer *sdl.Renderer

	cam      tilemap.Camera
	margin   int32
	showGrid bool
}

func newViewer(cfg *config.Config, m *tilemap.Map, log *zap.Logger) (*viewer, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	window, err := sdl.CreateWindow(
		"mapview - "+cfg.Map.Path,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Viewer.Width),
		int32(cfg.Viewer.Height),
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	flags := uint32(sdl.RENDERER_ACCELERATED)
	if cfg.Viewer.VSync {
		flags |= sdl.RENDERER_PRESENTVSYNC
	}
	renderer, err := sdl.CreateRenderer(window, -1, flags)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateRenderer failed: %w", err)
	}

	log.Info("viewer created",
		zap.Int("width", cfg.Viewer.Width),
		zap.Int("height", cfg.Viewer.Height),
		zap.Bool("vsync", cfg.Viewer.VSync),
	)

	return &viewer{
		cfg:      cfg,
		m:        m,
		log:      log,
		window:   window,
		renderer: renderer,
		cam: tilemap.Camera{
			Target:    geom.V(0, 0),
			Zoom:      geom.V(1, 1),
			ViewportW: int32(cfg.Viewer.Width),
			ViewportH: int32(cfg.Viewer.Height),
		},
		margin:   int32(cfg.Map.CullMargin),
		showGrid: cfg.Viewer.ShowGrid,
	}, nil
}

func (v *viewer) Close() {
	if v.renderer != nil {
		v.renderer.Destroy()
	}
	if v.window != nil {
		v.window.Destroy()
	}
	sdl.Quit()
}

// Run drives the event and draw loop until the window is closed.
func (v *viewer) Run() error {
	last := sdl.GetTicks64()

	for {
		now := sdl.GetTicks64()
		dt := float32(now-last) / 1000
		last = now

		if v.handleEvents() {
			return nil
		}
		v.pan(dt)

		if err := v.draw(); err != nil {
			return err
		}
		v.renderer.Present()

		if !v.cfg.Viewer.VSync {
			sdl.Delay(16)
		}
	}
}

// handleEvents drains the SDL event queue. Returns true on quit.
func (v *viewer) handleEvents() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				v.cam.ViewportW = e.Data1
				v.cam.ViewportH = e.Data2
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN {
				continue
			}
			switch e.Keysym.Scancode {
			case sdl.SCANCODE_ESCAPE, sdl.SCANCODE_Q:
				return true
			case sdl.SCANCODE_G:
				v.showGrid = !v.showGrid
			case sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS:
				v.zoomBy(1.25)
			case sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS:
				v.zoomBy(0.8)
			case sdl.SCANCODE_0:
				v.cam.Zoom = geom.V(1, 1)
			}
		}
	}
	return false
}

func (v *viewer) zoomBy(f float32) {
	z := v.cam.Zoom.Scale(f)
	if z.X < 0.1 || z.X > 16 {
		return
	}
	v.cam.Zoom = z
}

// pan moves the camera with the arrow keys, scaled so on-screen speed is
// independent of zoom.
func (v *viewer) pan(dt float32) {
	keys := sdl.GetKeyboardState()
	step := v.cfg.Viewer.PanSpeed * dt / v.cam.Zoom.X

	var d geom.Vec2
	if keys[sdl.SCANCODE_LEFT] != 0 {
		d.X -= step
	}
	if keys[sdl.SCANCODE_RIGHT] != 0 {
		d.X += step
	}
	if keys[sdl.SCANCODE_UP] != 0 {
		d.Y -= step
	}
	if keys[sdl.SCANCODE_DOWN] != 0 {
		d.Y += step
	}
	v.cam.Target = v.cam.Target.Add(d)
}

func (v *viewer) draw() error {
	if err := v.renderer.SetDrawColor(24, 24, 32, 255); err != nil {
		return err
	}
	if err := v.renderer.Clear(); err != nil {
		return err
	}

	viewMin, viewMax := v.cam.WorldRect()
	stamp := v.m.BeginFrame()
	chunks := v.m.VisibleChunks(viewMin, viewMax, v.margin)

	v.drawTiles(chunks, viewMin)
	v.drawObjects(chunks, stamp, viewMin)
	if v.showGrid {
		v.drawGrid(chunks, viewMin)
	}
	return nil
}

func (v *viewer) drawTiles(chunks []spatial.ChunkView, viewMin geom.Vec2) {
	tw := float32(v.m.TileW) * v.cam.Zoom.X
	th := float32(v.m.TileH) * v.cam.Zoom.Y

	v.m.EachVisibleTile(chunks, func(t tilemap.VisibleTile) {
		ts, _, ok := v.m.Resolve(t.Rec.ID)
		if !ok {
			return
		}
		tsIndex := 0
		for i, cand := range v.m.Tilesets {
			if cand == ts {
				tsIndex = i
				break
			}
		}
		c := palette[tsIndex%len(palette)]

		s := v.toScreen(t.World, viewMin)
		_ = v.renderer.SetDrawColor(c[0], c[1], c[2], 255)
		_ = v.renderer.FillRectF(&sdl.FRect{X: s.X, Y: s.Y, W: tw, H: th})
	})
}

func (v *viewer) drawObjects(chunks []spatial.ChunkView, stamp uint32, viewMin geom.Vec2) {
	_ = v.renderer.SetDrawColor(255, 64, 64, 255)

	v.m.EachVisibleObject(chunks, stamp, func(o tilemap.VisibleObject) {
		aabb := o.Object.AABB()
		s := v.toScreen(geom.V(aabb.X, aabb.Y).Add(o.World.Sub(geom.V(o.Object.X, o.Object.Y))), viewMin)
		w := aabb.W * v.cam.Zoom.X
		h := aabb.H * v.cam.Zoom.Y
		if w < 2 {
			w = 2
		}
		if h < 2 {
			h = 2
		}
		_ = v.renderer.DrawRectF(&sdl.FRect{X: s.X, Y: s.Y, W: w, H: h})
	})
}

func (v *viewer) drawGrid(chunks []spatial.ChunkView, viewMin geom.Vec2) {
	_ = v.renderer.SetDrawColor(90, 90, 110, 255)
	side := float32(spatial.ChunkSize)

	for _, cv := range chunks {
		origin := spatial.Origin(cv.Coord)
		s := v.toScreen(origin, viewMin)
		_ = v.renderer.DrawRectF(&sdl.FRect{
			X: s.X,
			Y: s.Y,
			W: side * v.cam.Zoom.X,
			H: side * v.cam.Zoom.Y,
		})
	}
}

func (v *viewer) toScreen(world, viewMin geom.Vec2) geom.Vec2 {
	return geom.V(
		(world.X-viewMin.X)*v.cam.Zoom.X,
		(world.Y-viewMin.Y)*v.cam.Zoom.Y,
	)
}
