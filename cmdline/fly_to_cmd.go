package main

import "errors"
import "flag"
import "fmt"
import "runtime"

import "github.com/pwiecz/viewport_patterns/lib"

type flyToCmd struct {
	flags     *flag.FlagSet
	from      *viewportValue
	to        *viewportValue
	numFrames *int
	ease      *bool
}

func NewFlyToCmd() flyToCmd {
	flags := flag.NewFlagSet("fly_to", flag.ExitOnError)
	cmd := flyToCmd{
		flags:     flags,
		from:      &viewportValue{},
		to:        &viewportValue{},
		numFrames: flags.Int("frames", 0, "number of frames of the flight, including the first and the last one (default from configuration)"),
		ease:      flags.Bool("ease", false, "ease in and out of the flight instead of flying at constant pace"),
	}
	flags.Var(cmd.from, "from", "camera at the start of the flight: <lng>,<lat>,<zoom>[,<pitch>,<bearing>]")
	flags.Var(cmd.to, "to", "camera at the end of the flight: <lng>,<lat>,<zoom>[,<pitch>,<bearing>]")
	return cmd
}

func (f *flyToCmd) Usage(fileBase string) {
	fmt.Fprintf(flag.CommandLine.Output(), "%s fly_to --from=<lng>,<lat>,<zoom> --to=<lng>,<lat>,<zoom> [--frames=<n>] [--ease]\n", fileBase)
	f.flags.PrintDefaults()
}

func (f *flyToCmd) Run(args []string, env *commandEnv) error {
	f.flags.Parse(args)
	if !f.from.IsSet || !f.to.IsSet {
		return errors.New("fly_to command requires the --from and --to flags")
	}
	numFrames := *f.numFrames
	if numFrames <= 0 {
		numFrames = env.conf.Flight.Frames
	}
	numWorkers := runtime.GOMAXPROCS(0)
	if env.numWorkers > 0 {
		numWorkers = env.numWorkers
	}
	options := []lib.FlightOption{
		lib.FlightNumWorkers(numWorkers),
		lib.FlightProgressFunc(env.progressFunc),
	}
	if *f.ease {
		options = append(options, lib.FlightEasing(lib.EaseInOutCubic))
	}
	frames, err := lib.SampleFlight(f.from.Props(env.width, env.height), f.to.Props(env.width, env.height), numFrames, options...)
	if err != nil {
		return err
	}
	fmt.Fprintln(env.output, "")
	states := make([]lib.ViewState, 0, len(frames))
	for i, frame := range frames {
		fmt.Fprintf(env.output, "%d: %f,%f zoom %f pitch %f bearing %f\n",
			i, frame.Longitude, frame.Latitude, frame.Zoom, frame.Pitch, frame.Bearing)
		states = append(states, frame.ViewState())
	}
	fmt.Fprintf(env.output, "\n[%s]\n", lib.PolylineFromViewStates(states))
	return nil
}
