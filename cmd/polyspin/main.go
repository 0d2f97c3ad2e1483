package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/oliverbestmann/polyspin/orion"
)

func main() {
	configPath := flag.String("config", "", "yaml file with window, shader and polygon settings")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn or error")
	profileMode := flag.String("profile", "", "write a profile to the working directory: cpu, mem, block or trace")
	watch := flag.Bool("watch", false, "reload shaders when their source files change")
	strictLink := flag.Bool("strict-link", false, "do not link the program if a shader failed to compile")
	flag.Parse()

	level, err := parseLogLevel(*logLevel)
	orion.Handle(err, "parse -log-level")

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{AddSource: true, Level: level})
	slog.SetDefault(slog.New(handler))

	var opts orion.RunOptions

	if *configPath != "" {
		config, err := orion.LoadConfig(*configPath)
		orion.Handle(err, "load config")

		opts = config.Options()
	}

	// flags given on the command line take precedence over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "profile":
			opts.Profile = *profileMode
		case "watch":
			opts.WatchShaders = *watch
		case "strict-link":
			opts.StrictLink = *strictLink
		}
	})

	err = orion.Run(opts)
	orion.Handle(err, "run polyspin")
}

func parseLogLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q, expected debug, info, warn or error", name)
	}

	return level, nil
}
