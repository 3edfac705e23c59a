// Package viewer runs the interactive wireframe view: input, background
// regeneration and the frame loop.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"heightgen/internal/config"
	"heightgen/internal/export"
	"heightgen/internal/graphics/renderer"
	"heightgen/internal/input"
	"heightgen/internal/mesh"
	"heightgen/internal/profiling"
	"heightgen/internal/terrain"
	"heightgen/internal/timing"
)

const slowFrame = 16 * time.Millisecond

type App struct {
	window   *glfw.Window
	input    *input.InputManager
	renderer *renderer.Renderer
	regen    *Regenerator
	exports  export.Store

	run   config.RunConfig // next run to request
	shown config.RunConfig // run that produced scene.Field
	scene renderer.Scene

	fpsLimiter   *FPSLimiter
	lastTime     time.Time
	frames       int
	lastFPSCheck time.Time
}

// NewApp wires a window to a renderer. Finished generations are recorded to
// rec and snapshots are written to exports.
func NewApp(window *glfw.Window, im *input.InputManager, r *renderer.Renderer, rec timing.Recorder, exports export.Store, run config.RunConfig) *App {
	return &App{
		window:       window,
		input:        im,
		renderer:     r,
		regen:        NewRegenerator(rec),
		exports:      exports,
		run:          run,
		fpsLimiter:   NewFPSLimiter(),
		lastTime:     time.Now(),
		lastFPSCheck: time.Now(),
	}
}

// Run requests the first field and loops until the window closes.
func (a *App) Run() {
	defer a.regen.Close()

	config.SetSmoothing(a.run.Options().Smooth != nil)
	a.regen.Request(a.run)
	for !a.window.ShouldClose() {
		a.tick()
	}
}

func (a *App) tick() {
	startTick := time.Now()
	dt := startTick.Sub(a.lastTime).Seconds()
	a.lastTime = startTick

	glfw.PollEvents()

	c := HandleInput(a.input, a.renderer.GetCamera(), &a.run, dt)
	if c.Regenerate {
		a.regen.Request(a.run)
	}
	if res, ok := a.regen.Poll(); ok {
		a.apply(res)
		c.ResetView = c.ResetView || a.scene.Version == 1
	}
	if c.ResetView {
		a.frame()
	}
	if c.PrintProfile {
		fmt.Println(profiling.TopN(8))
	}
	if c.Export {
		a.export()
	}
	if c.Quit {
		a.window.SetShouldClose(true)
	}

	a.scene.HeightColour = config.GetHeightColour()
	a.renderer.Render(a.scene, dt)
	a.window.SwapBuffers()

	if d := time.Since(startTick); d > slowFrame {
		render := profiling.Snapshot()["renderer.Render"].Last
		log.Printf("Slow frame: %v (render %v)", d, render)
	}

	a.frames++
	if time.Since(a.lastFPSCheck) >= time.Second {
		fmt.Println("FPS:", a.frames)
		a.frames = 0
		a.lastFPSCheck = time.Now()
	}

	a.input.PostUpdate()
	a.fpsLimiter.Wait(a.window.GetAttrib(glfw.Iconified) == glfw.True)
}

// apply swaps in a finished field, or logs why the run failed.
func (a *App) apply(res Result) {
	if res.Err != nil {
		if !errors.Is(res.Err, context.Canceled) {
			log.Printf("generate %s: %v", res.Config.Algorithm, res.Err)
		}
		return
	}
	if err := terrain.CheckDegenerate(res.Field.Size()); err != nil {
		log.Printf("warning: %v", err)
	}
	a.shown = res.Config
	a.scene.Field = res.Field
	a.scene.Version++
	log.Printf("%s size=%d seed=%d in %v", res.Sample.Algorithm, res.Sample.Size, res.Sample.Seed, res.Sample.Elapsed)
}

// frame points the camera at the current field.
func (a *App) frame() {
	if a.scene.Field == nil {
		return
	}
	b := mesh.Extent(a.scene.Field)
	centre := b.Centre()
	halfWidth := (b.Max[0] - b.Min[0]) / 2
	a.renderer.GetCamera().Frame(mgl32.Vec3{centre[0], centre[1], centre[2]}, halfWidth)
}

func (a *App) export() {
	if a.scene.Field == nil || a.exports == nil {
		return
	}
	cfg := a.shown.Export
	formats := export.Formats{JSON: cfg.JSON, PNG: cfg.PNG, TIFF: cfg.TIFF}
	if !formats.Any() {
		formats = export.Formats{JSON: true, PNG: true}
	}
	base := fmt.Sprintf("%s-%d-%d", a.shown.Algorithm, a.scene.Field.Size(), a.shown.Seed)
	names, err := export.Snapshot(context.Background(), a.exports, base, a.scene.Field, formats)
	if err != nil {
		log.Printf("export: %v", err)
		return
	}
	log.Printf("exported %v", names)
}

// RefreshRender redraws during a window resize, when the loop is blocked.
func (a *App) RefreshRender() {
	a.renderer.Render(a.scene, 0.016)
	a.window.SwapBuffers()
}
