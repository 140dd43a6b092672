package main

import "errors"
import "flag"
import "fmt"
import "math"

import "github.com/pwiecz/viewport_patterns/lib"

type projectCmd struct {
	flags    *flag.FlagSet
	viewport *viewportValue
	topLeft  *bool
}

func NewProjectCmd() projectCmd {
	flags := flag.NewFlagSet("project", flag.ExitOnError)
	cmd := projectCmd{
		flags:    flags,
		viewport: &viewportValue{},
		topLeft:  flags.Bool("top_left", true, "pixel y axis goes down from the top edge of the viewport"),
	}
	flags.Var(cmd.viewport, "viewport", "camera of the viewport: <lng>,<lat>,<zoom>[,<pitch>,<bearing>]")
	return cmd
}

func (p *projectCmd) Usage(fileBase string) {
	fmt.Fprintf(flag.CommandLine.Output(), "%s project --viewport=<lng>,<lat>,<zoom>[,<pitch>,<bearing>] <lng>,<lat>[,<altitude>]...\n", fileBase)
	p.flags.PrintDefaults()
}

func (p *projectCmd) Run(args []string, env *commandEnv) error {
	p.flags.Parse(args)
	if !p.viewport.IsSet {
		return errors.New("project command requires the --viewport flag")
	}
	positionArgs := p.flags.Args()
	if len(positionArgs) == 0 {
		return errors.New("project command requires at least one position argument")
	}
	viewport, err := env.cache.Get(p.viewport.Props(env.width, env.height))
	if err != nil {
		return err
	}
	for _, arg := range positionArgs {
		position, err := parsePosition(arg)
		if err != nil {
			return err
		}
		pixel, err := viewport.Project3(position, lib.TopLeft(*p.topLeft))
		if err != nil {
			return fmt.Errorf("Cannot project %s: %w", arg, err)
		}
		if math.IsNaN(position.Z) {
			fmt.Fprintf(env.output, "%f,%f\n", pixel.X, pixel.Y)
		} else {
			fmt.Fprintf(env.output, "%f,%f,%f\n", pixel.X, pixel.Y, pixel.Z)
		}
	}
	return nil
}
