package main

import "errors"
import "flag"
import "fmt"

type tilesCmd struct {
	flags    *flag.FlagSet
	viewport *viewportValue
}

func NewTilesCmd() tilesCmd {
	flags := flag.NewFlagSet("tiles", flag.ExitOnError)
	cmd := tilesCmd{
		flags:    flags,
		viewport: &viewportValue{},
	}
	flags.Var(cmd.viewport, "viewport", "camera of the viewport: <lng>,<lat>,<zoom>[,<pitch>,<bearing>]")
	return cmd
}

func (t *tilesCmd) Usage(fileBase string) {
	fmt.Fprintf(flag.CommandLine.Output(), "%s tiles --viewport=<lng>,<lat>,<zoom>[,<pitch>,<bearing>]\n", fileBase)
	t.flags.PrintDefaults()
}

func (t *tilesCmd) Run(args []string, env *commandEnv) error {
	t.flags.Parse(args)
	if !t.viewport.IsSet {
		return errors.New("tiles command requires the --viewport flag")
	}
	viewport, err := env.cache.Get(t.viewport.Props(env.width, env.height))
	if err != nil {
		return err
	}
	tiles, err := viewport.VisibleTiles()
	if err != nil {
		return err
	}
	for _, tile := range tiles {
		fmt.Fprintln(env.output, tile)
	}
	return nil
}
