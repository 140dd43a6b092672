package main

import "errors"
import "flag"
import "fmt"

import "github.com/pwiecz/viewport_patterns/lib"

type normalizeCmd struct {
	flags    *flag.FlagSet
	viewport *viewportValue
}

func NewNormalizeCmd() normalizeCmd {
	flags := flag.NewFlagSet("normalize", flag.ExitOnError)
	cmd := normalizeCmd{
		flags:    flags,
		viewport: &viewportValue{},
	}
	flags.Var(cmd.viewport, "viewport", "camera of the viewport: <lng>,<lat>,<zoom>[,<pitch>,<bearing>]")
	return cmd
}

func (n *normalizeCmd) Usage(fileBase string) {
	fmt.Fprintf(flag.CommandLine.Output(), "%s normalize --viewport=<lng>,<lat>,<zoom>[,<pitch>,<bearing>]\n", fileBase)
	n.flags.PrintDefaults()
}

func (n *normalizeCmd) Run(args []string, env *commandEnv) error {
	n.flags.Parse(args)
	if !n.viewport.IsSet {
		return errors.New("normalize command requires the --viewport flag")
	}
	props, err := lib.NormalizeViewportProps(n.viewport.Props(env.width, env.height))
	if err != nil {
		return err
	}
	printViewState(env, props.ViewState())
	fmt.Fprintf(env.output, "Pitch: %f\nBearing: %f\n", props.Pitch, props.Bearing)
	return nil
}
