package main

import "errors"
import "flag"
import "fmt"

import "github.com/pwiecz/viewport_patterns/lib"

type fitLocationsCmd struct {
	flags   *flag.FlagSet
	padding *paddingValue
}

func NewFitLocationsCmd() fitLocationsCmd {
	flags := flag.NewFlagSet("fit_locations", flag.ExitOnError)
	cmd := fitLocationsCmd{
		flags:   flags,
		padding: &paddingValue{},
	}
	flags.Var(cmd.padding, "padding", "padding in pixels: <padding> or <top>,<bottom>,<left>,<right> (default from configuration)")
	return cmd
}

func (f *fitLocationsCmd) Usage(fileBase string) {
	fmt.Fprintf(flag.CommandLine.Output(), "%s fit_locations [--padding=<padding>] <locations_file>\n", fileBase)
	f.flags.PrintDefaults()
}

func (f *fitLocationsCmd) Run(args []string, env *commandEnv) error {
	f.flags.Parse(args)
	fileArgs := f.flags.Args()
	if len(fileArgs) != 1 {
		return errors.New("fit_locations command requires exactly one file argument")
	}
	locations, err := lib.ParseFile(fileArgs[0])
	if err != nil {
		return fmt.Errorf("Could not parse file %s : %w", fileArgs[0], err)
	}
	fmt.Fprintf(env.output, "Read %d locations\n", len(locations))
	bounds, err := lib.BoundsOfLocations(locations)
	if err != nil {
		return err
	}
	viewport, err := env.cache.Get(lib.ViewportProps{Width: env.width, Height: env.height})
	if err != nil {
		return err
	}
	fitted, err := viewport.FitBounds(bounds, lib.FitBoundsOptions{Padding: env.padding(*f.padding)})
	if err != nil {
		return err
	}
	printViewState(env, fitted.ViewState())
	for _, location := range locations {
		pixel, err := fitted.Project(unwrappedLngLat(location.LatLng, bounds.West))
		if err != nil {
			return err
		}
		fmt.Fprintf(env.output, "%s: %f,%f\n", location.Name, pixel.X, pixel.Y)
	}
	fmt.Fprintf(env.output, "\n[%s]\n", lib.MarkersFromLocations(locations))
	return nil
}
