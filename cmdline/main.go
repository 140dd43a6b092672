package main

import "flag"
import "io"
import "log"
import "os"
import "path/filepath"
import "runtime/pprof"

import "github.com/golang/geo/r2"
import "github.com/golang/geo/s2"
import "github.com/pwiecz/viewport_patterns/configuration"
import "github.com/pwiecz/viewport_patterns/lib"

// commandEnv is shared by all the subcommands.
type commandEnv struct {
	width        float64
	height       float64
	numWorkers   int
	progressFunc func(int, int)
	conf         *configuration.Configuration
	cache        *lib.ViewportCache
	output       io.Writer
}

// padding returns the padding given on the command line or the configured one.
func (e *commandEnv) padding(value paddingValue) lib.Padding {
	if value.IsSet {
		return value.Padding
	}
	return lib.UniformPadding(e.conf.Viewport.Padding)
}

// unwrappedLngLat shifts the longitude by a full turn if it lies west of
// west, so that it falls into a bounding box crossing the antimeridian.
func unwrappedLngLat(latLng s2.LatLng, west float64) r2.Point {
	lng := latLng.Lng.Degrees()
	if lng < west {
		lng += 360
	}
	return r2.Point{X: lng, Y: latLng.Lat.Degrees()}
}

type command interface {
	Usage(fileBase string)
	Run(args []string, env *commandEnv) error
}

func main() {
	fileBase := filepath.Base(os.Args[0])
	cpuprofile := flag.String("cpuprofile", "", "write CPU profile to this file")
	numWorkers := flag.Int("num_workers", 0, "if applicable for given command use that many worker threads. If <= 0 use as many as there are CPUs on the machine")
	width := flag.Float64("width", 0, "width of the viewport in pixels (default from configuration)")
	height := flag.Float64("height", 0, "height of the viewport in pixels (default from configuration)")
	showProgress := flag.Bool("progress", true, "show progress bar")
	flag.BoolVar(showProgress, "P", true, "show progress bar")

	projectCmd := NewProjectCmd()
	unprojectCmd := NewUnprojectCmd()
	fitBoundsCmd := NewFitBoundsCmd()
	fitLocationsCmd := NewFitLocationsCmd()
	flyToCmd := NewFlyToCmd()
	normalizeCmd := NewNormalizeCmd()
	tilesCmd := NewTilesCmd()
	configCmd := NewConfigCmd()
	commands := map[string]command{
		"project":       &projectCmd,
		"unproject":     &unprojectCmd,
		"fit_bounds":    &fitBoundsCmd,
		"fit_locations": &fitLocationsCmd,
		"fly_to":        &flyToCmd,
		"normalize":     &normalizeCmd,
		"tiles":         &tilesCmd,
		"config":        &configCmd,
	}
	commandOrder := []string{"project", "unproject", "fit_bounds", "fit_locations", "fly_to", "normalize", "tiles", "config"}

	defaultUsage := flag.Usage
	flag.Usage = func() {
		defaultUsage()
		for _, name := range commandOrder {
			commands[name].Usage(fileBase)
		}
	}
	flag.Parse()
	if len(flag.Args()) < 1 {
		flag.Usage()
		os.Exit(0)
	}
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	conf, err := configuration.Load()
	if err != nil {
		log.Fatalf("Could not load configuration: %v\n", err)
	}
	env := &commandEnv{
		width:        conf.Viewport.Width,
		height:       conf.Viewport.Height,
		numWorkers:   *numWorkers,
		progressFunc: lib.PrintProgressBar,
		conf:         conf,
		cache:        lib.NewViewportCache(conf.Cache.Size),
		output:       os.Stdout,
	}
	if *width > 0 {
		env.width = *width
	}
	if *height > 0 {
		env.height = *height
	}
	if !*showProgress {
		env.progressFunc = func(int, int) {}
	}

	name := flag.Args()[0]
	cmd, ok := commands[name]
	if !ok {
		log.Fatalf("Unknown command: \"%s\"\n", name)
	}
	if err := cmd.Run(flag.Args()[1:], env); err != nil {
		log.Fatalf("%s: %v\n", name, err)
	}
}
