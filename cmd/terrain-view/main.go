// Command terrain-view generates a heightfield and shows it as a rotating
// wireframe. Press R for a new seed, Tab for the next algorithm.
package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"heightgen/internal/config"
	"heightgen/internal/export"
	"heightgen/internal/input"
	"heightgen/internal/timing"
	"heightgen/internal/viewer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	log.SetFlags(log.Ltime)
	log.SetPrefix("terrain-view: ")

	set := flag.CommandLine
	runFlags := config.BindRunFlags(set)
	width := flag.Int("width", 500, "window width")
	height := flag.Int("height", 500, "window height")
	fps := flag.Int("fps", config.GetFPSLimit(), "frame cap, 0 for uncapped")
	flag.Parse()

	run, err := runFlags.Resolve(set, nil)
	if err != nil {
		log.Fatal(err)
	}
	config.SetFPSLimit(*fps)

	logFS, logName, err := config.HostFile(run.TimingLog)
	if err != nil {
		log.Fatal(err)
	}
	exportFS, err := config.HostDir(run.Export.Dir)
	if err != nil {
		log.Fatal(err)
	}

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(*width, *height)
	if err != nil {
		panic(err)
	}

	r, err := setupRenderer(window)
	if err != nil {
		panic(err)
	}
	defer r.Dispose()

	im := input.NewInputManager()
	im.Attach(window)
	log.Printf("keys:\n%s", viewer.Help(im))

	app := viewer.NewApp(window, im, r, timing.NewFileLog(logFS, logName), export.NewFSStore(exportFS, ""), run)

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		r.UpdateViewport(width, height)
		app.RefreshRender()
	})

	app.Run()
}
