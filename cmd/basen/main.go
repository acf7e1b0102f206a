package main

import (
	"fmt"
	"os"

	log "github.com/treeforest/logger"
	"github.com/urfave/cli/v2"

	"github.com/vdparikh/basen"
	"github.com/vdparikh/basen/config"
	"github.com/vdparikh/basen/tinkbasen"
)

var Version = "0.1.0"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:                   "basen",
		Usage:                  "Fixed-width radix-N encoding of unsigned integers and byte strings",
		Version:                Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (.yaml, .yml or .toml)",
			},
			&cli.StringFlag{
				Name:    "alphabet",
				Aliases: []string{"a"},
				Usage:   "Alphabet name (see the alphabets command)",
			},
			&cli.StringFlag{
				Name:    "keyset",
				Aliases: []string{"k"},
				Usage:   "Cleartext JSON keyset; fixed encodings are sealed with it",
			},
			&cli.StringFlag{
				Name:  "tweak",
				Usage: "Tweak for sealed encodings",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log debug output",
			},
		},
		Commands: []*cli.Command{
			encodeCommand(),
			decodeCommand(),
			widthCommand(),
			genCommand(),
			alphabetsCommand(),
			keygenCommand(),
		},
	}
}

// env is the state shared by all commands.
type env struct {
	conf     *config.Config
	registry *config.Registry
	alphabet *basen.Alphabet
	sealed   *basen.Sealed
	verbose  bool
}

func loadEnv(c *cli.Context) (*env, error) {
	e := &env{verbose: c.Bool("verbose")}

	e.conf = config.DefaultConfig()
	if path := c.String("config"); path != "" {
		conf, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
		e.conf = conf
		e.debug("loaded config", path)
	}

	registry, err := e.conf.Registry()
	if err != nil {
		return nil, err
	}
	e.registry = registry

	e.alphabet = registry.Default()
	if name := c.String("alphabet"); name != "" {
		if e.alphabet, err = registry.Lookup(name); err != nil {
			return nil, err
		}
	}
	e.debug("alphabet radix", e.alphabet.Radix())

	keysetPath, tweak := e.conf.Keyset, e.conf.Tweak
	if c.IsSet("keyset") {
		keysetPath = c.String("keyset")
	}
	if c.IsSet("tweak") {
		tweak = c.String("tweak")
	}
	if keysetPath != "" {
		if e.sealed, err = openSealed(keysetPath, e.alphabet, tweak); err != nil {
			return nil, err
		}
		e.debug("sealing with keyset", keysetPath)
	}
	return e, nil
}

func openSealed(path string, a *basen.Alphabet, tweak string) (*basen.Sealed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	handle, err := tinkbasen.ReadKeyset(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tinkbasen.New(handle, a, []byte(tweak))
}

func (e *env) debug(args ...interface{}) {
	if e.verbose {
		log.Debug(args...)
	}
}
