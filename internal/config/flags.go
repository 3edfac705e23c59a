package config

import (
	"flag"
	"fmt"
	"path/filepath"

	billy "gopkg.in/src-d/go-billy.v4"
	"gopkg.in/src-d/go-billy.v4/osfs"

	"heightgen/internal/terrain"
)

// RunFlags are the command-line overrides shared by the terrain commands.
type RunFlags struct {
	Config    string
	algorithm string
	size      int
	step      float64
	seed      int64
	smooth    bool
	erosion   string
	timing    string
}

// BindRunFlags registers the run flags on fs.
func BindRunFlags(fs *flag.FlagSet) *RunFlags {
	f := &RunFlags{}
	def := DefaultRunConfig()
	fs.StringVar(&f.Config, "config", "", "JSON run config; flags given explicitly override it")
	fs.StringVar(&f.algorithm, "algorithm", def.Algorithm, fmt.Sprintf("generator, one of %v", terrain.Algorithms()))
	fs.IntVar(&f.size, "size", 0, "grid size (0 picks 50, or 33 for diamond-square)")
	fs.Float64Var(&f.step, "step", def.Step, "grid spacing")
	fs.Int64Var(&f.seed, "seed", def.Seed, "random seed")
	fs.BoolVar(&f.smooth, "smooth", false, "force the smoothing pass on or off")
	fs.StringVar(&f.erosion, "erosion", "", fmt.Sprintf("erosion preset, one of %v", terrain.ErosionPresetNames()))
	fs.StringVar(&f.timing, "timing", def.TimingLog, "timing log file")
	return f
}

// Resolve loads the -config file if one was named, then applies only the
// flags that were set on the command line. An -erosion preset replaces the
// file's erosion parameters but keeps its neighbour lookup. A nil fsys reads
// the file from the host.
func (f *RunFlags) Resolve(fs *flag.FlagSet, fsys billy.Filesystem) (RunConfig, error) {
	cfg := DefaultRunConfig()
	if f.Config != "" {
		path := f.Config
		var err error
		if fsys == nil {
			if fsys, path, err = HostFile(f.Config); err != nil {
				return cfg, err
			}
		}
		if cfg, err = LoadRunConfig(fsys, path); err != nil {
			return cfg, err
		}
	}

	var presetErr error
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "algorithm":
			cfg.Algorithm = f.algorithm
		case "size":
			cfg.Size = f.size
		case "step":
			cfg.Step = f.step
		case "seed":
			cfg.Seed = f.seed
		case "smooth":
			smooth := f.smooth
			cfg.Smooth = &smooth
		case "erosion":
			preset, err := terrain.ErosionPreset(f.erosion)
			if err != nil {
				presetErr = err
				return
			}
			preset.DiagonalWaterLookup = cfg.Erosion.DiagonalWaterLookup
			cfg.Erosion = preset
		case "timing":
			cfg.TimingLog = f.timing
		}
	})
	if presetErr != nil {
		return cfg, presetErr
	}
	return cfg, cfg.Validate()
}

// HostDir returns an OS filesystem rooted at dir, made absolute first.
func HostDir(dir string) (billy.Filesystem, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}
	return osfs.New(abs), nil
}

// HostFile splits path into an OS filesystem on its directory and the base
// name within it.
func HostFile(path string) (billy.Filesystem, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return osfs.New(filepath.Dir(abs)), filepath.Base(abs), nil
}
