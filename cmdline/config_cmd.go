package main

import "flag"
import "fmt"

import "github.com/pwiecz/viewport_patterns/configuration"

type configCmd struct {
	flags *flag.FlagSet
	save  *bool
}

func NewConfigCmd() configCmd {
	flags := flag.NewFlagSet("config", flag.ExitOnError)
	return configCmd{
		flags: flags,
		save:  flags.Bool("save", false, "save the effective configuration to the user config file"),
	}
}

func (c *configCmd) Usage(fileBase string) {
	fmt.Fprintf(flag.CommandLine.Output(), "%s config [--save]\n", fileBase)
	c.flags.PrintDefaults()
}

func (c *configCmd) Run(args []string, env *commandEnv) error {
	c.flags.Parse(args)
	conf := env.conf
	fmt.Fprintf(env.output, "viewport.width: %f\nviewport.height: %f\nviewport.padding: %f\n",
		conf.Viewport.Width, conf.Viewport.Height, conf.Viewport.Padding)
	fmt.Fprintf(env.output, "flight.frames: %d\ncache.size: %d\n", conf.Flight.Frames, conf.Cache.Size)
	if !*c.save {
		return nil
	}
	if err := configuration.Save(conf); err != nil {
		return err
	}
	configPath, _ := configuration.ConfigPath()
	fmt.Fprintf(env.output, "Saved to %s\n", configPath)
	return nil
}
