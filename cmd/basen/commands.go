package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"

	"github.com/bwmarrin/snowflake"
	log "github.com/treeforest/logger"
	"github.com/urfave/cli/v2"

	"github.com/vdparikh/basen"
	"github.com/vdparikh/basen/tinkbasen"
)

func sizeFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "size",
		Aliases: []string{"s"},
		Usage:   "Buffer size in bytes",
		Value:   8,
	}
}

func minimalFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "minimal",
		Aliases: []string{"m"},
		Usage:   "Use the minimal (unpadded) encoding",
	}
}

func encodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "encode",
		Aliases:   []string{"e"},
		Usage:     "Encode decimal values, or hex byte strings with --hex",
		ArgsUsage: "[--] VALUE...",
		Flags: []cli.Flag{
			sizeFlag(),
			minimalFlag(),
			&cli.BoolFlag{
				Name:  "hex",
				Usage: "Arguments are hex byte strings; their length sets the size",
			},
		},
		Action: func(c *cli.Context) error {
			e, err := loadEnv(c)
			if err != nil {
				return err
			}
			if c.NArg() == 0 {
				return errors.New("encode: missing VALUE")
			}

			for _, arg := range c.Args().Slice() {
				src, err := parseValue(arg, c.Int("size"), c.Bool("hex"))
				if err != nil {
					return err
				}
				out, err := e.encode(src, c.Bool("minimal"))
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, out)
			}
			return nil
		},
	}
}

func decodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Aliases:   []string{"d"},
		Usage:     "Decode strings to decimal values, or hex byte strings with --hex; put strings starting with '-' after --",
		ArgsUsage: "[--] STRING...",
		Flags: []cli.Flag{
			sizeFlag(),
			minimalFlag(),
			&cli.BoolFlag{
				Name:  "hex",
				Usage: "Print hex byte strings",
			},
		},
		Action: func(c *cli.Context) error {
			e, err := loadEnv(c)
			if err != nil {
				return err
			}
			if c.NArg() == 0 {
				return errors.New("decode: missing STRING")
			}

			for _, arg := range c.Args().Slice() {
				b, err := e.decode(arg, c.Int("size"), c.Bool("minimal"))
				if err != nil {
					return fmt.Errorf("decode %q: %w", arg, err)
				}
				if c.Bool("hex") {
					fmt.Fprintln(c.App.Writer, hex.EncodeToString(b))
				} else {
					fmt.Fprintln(c.App.Writer, new(big.Int).SetBytes(b).String())
				}
			}
			return nil
		},
	}
}

func widthCommand() *cli.Command {
	return &cli.Command{
		Name:      "width",
		Usage:     "Print the padded width for buffer sizes",
		ArgsUsage: "[SIZE...]",
		Action: func(c *cli.Context) error {
			e, err := loadEnv(c)
			if err != nil {
				return err
			}

			sizes := c.Args().Slice()
			if len(sizes) == 0 {
				sizes = []string{"1", "2", "4", "8", "16", "32"}
			}
			for _, arg := range sizes {
				size, err := strconv.Atoi(arg)
				if err != nil || size < 0 {
					return fmt.Errorf("invalid size %q", arg)
				}
				fmt.Fprintf(c.App.Writer, "%d\t%d\n", size, e.alphabet.PaddedWidth(size))
			}
			return nil
		},
	}
}

func genCommand() *cli.Command {
	return &cli.Command{
		Name:  "gen",
		Usage: "Generate snowflake IDs in the fixed-length encoding",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:  "node",
				Usage: "Snowflake node number (0-1023), overrides the config",
			},
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "Number of IDs",
				Value:   1,
			},
		},
		Action: func(c *cli.Context) error {
			e, err := loadEnv(c)
			if err != nil {
				return err
			}

			nodeID := e.conf.Node
			if c.IsSet("node") {
				nodeID = c.Int64("node")
			}
			node, err := snowflake.NewNode(nodeID)
			if err != nil {
				return fmt.Errorf("snowflake node %d: %w", nodeID, err)
			}
			e.debug("snowflake node", nodeID)

			for i := 0; i < c.Int("count"); i++ {
				id := node.Generate()
				var buf [8]byte
				big.NewInt(id.Int64()).FillBytes(buf[:])

				out, err := e.encode(buf[:], false)
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, out)
			}
			return nil
		},
	}
}

func alphabetsCommand() *cli.Command {
	return &cli.Command{
		Name:  "alphabets",
		Usage: "List the known alphabets",
		Action: func(c *cli.Context) error {
			e, err := loadEnv(c)
			if err != nil {
				return err
			}
			for _, name := range e.registry.Names() {
				a, err := e.registry.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "%s\t%d\t%s\n", name, a.Radix(), a)
			}
			return nil
		},
	}
}

func keygenCommand() *cli.Command {
	return &cli.Command{
		Name:  "keygen",
		Usage: "Generate a cleartext JSON keyset for sealed encodings",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "aes",
				Usage: "AES key size in bits (128, 192 or 256)",
				Value: 256,
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output file, stdout if empty",
			},
		},
		Action: func(c *cli.Context) error {
			template := tinkbasen.KeyTemplateAES256()
			switch bits := c.Int("aes"); bits {
			case 128:
				template = tinkbasen.KeyTemplateAES128()
			case 192:
				template = tinkbasen.KeyTemplateAES192()
			case 256:
			default:
				return fmt.Errorf("unsupported AES key size %d", bits)
			}

			handle, err := tinkbasen.GenerateKeyset(template)
			if err != nil {
				return err
			}

			var w io.Writer = c.App.Writer
			if path := c.String("out"); path != "" {
				f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
				log.Infof("writing keyset to %s", path)
			}
			return tinkbasen.WriteKeyset(handle, w)
		},
	}
}

// parseValue turns a command line argument into a big-endian buffer.
func parseValue(arg string, size int, isHex bool) ([]byte, error) {
	if isHex {
		b, err := hex.DecodeString(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid hex %q: %w", arg, err)
		}
		return b, nil
	}

	if size < 0 {
		return nil, fmt.Errorf("%w: %d", basen.ErrInvalidSize, size)
	}
	v, ok := new(big.Int).SetString(arg, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("invalid unsigned decimal %q", arg)
	}
	if v.BitLen() > size*8 {
		return nil, fmt.Errorf("%s does not fit in %d bytes", arg, size)
	}
	return v.FillBytes(make([]byte, size)), nil
}

func (e *env) encode(src []byte, minimal bool) (string, error) {
	switch {
	case minimal && e.sealed != nil:
		return "", errors.New("minimal encodings cannot be sealed")
	case minimal:
		return e.alphabet.EncodeMinimal(src), nil
	case e.sealed != nil:
		return e.sealed.EncodeFixed(src)
	default:
		return e.alphabet.EncodeFixed(src), nil
	}
}

func (e *env) decode(s string, size int, minimal bool) ([]byte, error) {
	switch {
	case minimal && e.sealed != nil:
		return nil, errors.New("minimal encodings cannot be sealed")
	case minimal:
		return e.alphabet.DecodeMinimal(s, size)
	case e.sealed != nil:
		return e.sealed.DecodeFixed(s, size)
	default:
		return e.alphabet.DecodeFixed(s, size)
	}
}
