package main

import "errors"
import "flag"
import "fmt"

import "github.com/pwiecz/viewport_patterns/lib"

type fitBoundsCmd struct {
	flags   *flag.FlagSet
	padding *paddingValue
	offset  *pointValue
}

func NewFitBoundsCmd() fitBoundsCmd {
	flags := flag.NewFlagSet("fit_bounds", flag.ExitOnError)
	cmd := fitBoundsCmd{
		flags:   flags,
		padding: &paddingValue{},
		offset:  &pointValue{},
	}
	flags.Var(cmd.padding, "padding", "padding in pixels: <padding> or <top>,<bottom>,<left>,<right> (default from configuration)")
	flags.Var(cmd.offset, "offset", "offset in pixels of the bounds center: <x>,<y>")
	return cmd
}

func (f *fitBoundsCmd) Usage(fileBase string) {
	fmt.Fprintf(flag.CommandLine.Output(), "%s fit_bounds [--padding=<padding>] [--offset=<x>,<y>] <west>,<south>,<east>,<north>\n", fileBase)
	f.flags.PrintDefaults()
}

func (f *fitBoundsCmd) Run(args []string, env *commandEnv) error {
	f.flags.Parse(args)
	boundsArgs := f.flags.Args()
	if len(boundsArgs) != 1 {
		return errors.New("fit_bounds command requires exactly one bounds argument")
	}
	bounds, err := parseBounds(boundsArgs[0])
	if err != nil {
		return err
	}
	state, err := lib.FitBounds(lib.FitBoundsParams{
		Width:  env.width,
		Height: env.height,
		Bounds: bounds,
		Options: lib.FitBoundsOptions{
			Padding: env.padding(*f.padding),
			Offset:  f.offset.Point,
		},
	})
	if err != nil {
		return err
	}
	printViewState(env, state)
	return nil
}

func printViewState(env *commandEnv, state lib.ViewState) {
	fmt.Fprintf(env.output, "Longitude: %f\nLatitude: %f\nZoom: %f\n", state.Longitude, state.Latitude, state.Zoom)
}
