package main

import "errors"
import "flag"
import "fmt"
import "math"

import "github.com/pwiecz/viewport_patterns/lib"

type unprojectCmd struct {
	flags    *flag.FlagSet
	viewport *viewportValue
	topLeft  *bool
	targetZ  *float64
}

func NewUnprojectCmd() unprojectCmd {
	flags := flag.NewFlagSet("unproject", flag.ExitOnError)
	cmd := unprojectCmd{
		flags:    flags,
		viewport: &viewportValue{},
		topLeft:  flags.Bool("top_left", true, "pixel y axis goes down from the top edge of the viewport"),
		targetZ:  flags.Float64("target_z", 0, "altitude in meters of the plane pixels without depth are unprojected onto"),
	}
	flags.Var(cmd.viewport, "viewport", "camera of the viewport: <lng>,<lat>,<zoom>[,<pitch>,<bearing>]")
	return cmd
}

func (u *unprojectCmd) Usage(fileBase string) {
	fmt.Fprintf(flag.CommandLine.Output(), "%s unproject --viewport=<lng>,<lat>,<zoom>[,<pitch>,<bearing>] [--target_z=<meters>] <x>,<y>[,<depth>]...\n", fileBase)
	u.flags.PrintDefaults()
}

func (u *unprojectCmd) Run(args []string, env *commandEnv) error {
	u.flags.Parse(args)
	if !u.viewport.IsSet {
		return errors.New("unproject command requires the --viewport flag")
	}
	pixelArgs := u.flags.Args()
	if len(pixelArgs) == 0 {
		return errors.New("unproject command requires at least one pixel argument")
	}
	viewport, err := env.cache.Get(u.viewport.Props(env.width, env.height))
	if err != nil {
		return err
	}
	for _, arg := range pixelArgs {
		pixel, err := parsePosition(arg)
		if err != nil {
			return err
		}
		lngLatZ, err := viewport.Unproject3(pixel, lib.TopLeft(*u.topLeft), lib.TargetZ(*u.targetZ))
		if err != nil {
			return fmt.Errorf("Cannot unproject %s: %w", arg, err)
		}
		if math.IsNaN(pixel.Z) && *u.targetZ == 0 {
			fmt.Fprintf(env.output, "%f,%f\n", lngLatZ.X, lngLatZ.Y)
		} else {
			fmt.Fprintf(env.output, "%f,%f,%f\n", lngLatZ.X, lngLatZ.Y, lngLatZ.Z)
		}
	}
	return nil
}
