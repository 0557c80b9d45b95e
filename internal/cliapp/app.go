// Package cliapp is the offline command line front end to the ciphers.
package cliapp

import (
	"CipherBot/internal/core/cipher"
	"CipherBot/internal/core/domain"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"
)

// NewApp builds the root command. Output goes to out; text is read from in when no argument is given.
func NewApp(out io.Writer, in io.Reader) *cli.Command {
	return &cli.Command{
		Name:      "cipher",
		Usage:     "Caesar and Vigenère ciphers",
		Writer:    out,
		Reader:    in,
		ErrWriter: out,
		Commands: []*cli.Command{
			transformCommand("encrypt", "encrypt text", domain.Forward),
			transformCommand("decrypt", "decrypt text", domain.Backward),
			demoCommand(),
		},
	}
}

func transformCommand(name, usage string, dir domain.Direction) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "[text...]  (reads stdin when omitted)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "kind",
				Aliases: []string{"c"},
				Value:   string(domain.KindCaesar),
				Usage:   "cipher to use: caesar or vigenere",
			},
			&cli.StringFlag{
				Name:     "key",
				Aliases:  []string{"k"},
				Usage:    "integer offset (caesar) or letter key (vigenere)",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			kind, err := domain.ParseKind(cmd.String("kind"))
			if err != nil {
				return fmt.Errorf("--kind %q: %w", cmd.String("kind"), err)
			}
			key, err := cipher.ParseKey(kind, cmd.String("key"))
			if err != nil {
				return err
			}

			text, err := inputText(cmd)
			if err != nil {
				return err
			}

			var result string
			if dir == domain.Forward {
				result, err = cipher.Encrypt(text, key, kind)
			} else {
				result, err = cipher.Decrypt(text, key, kind)
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.Root().Writer, result)
			return err
		},
	}
}

// inputText joins the positional arguments, or reads the whole of stdin.
func inputText(cmd *cli.Command) (string, error) {
	if cmd.Args().Present() {
		return strings.Join(cmd.Args().Slice(), " "), nil
	}
	raw, err := io.ReadAll(cmd.Root().Reader)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSuffix(string(raw), "\n"), nil
}

type demoCase struct {
	plain string
	key   domain.Key
}

var demoCases = []demoCase{
	{"Hello, World!", domain.CaesarOffset(3)},
	{"attackatdawn", domain.VigenereKey("lemon")},
	{"Hello Zaira!", domain.VigenereKey("python")},
}

func demoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "print the reference vectors and their round trips",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w := cmd.Root().Writer
			for _, c := range demoCases {
				enc, err := cipher.Encrypt(c.plain, c.key, c.key.Kind())
				if err != nil {
					return err
				}
				dec, err := cipher.Decrypt(enc, c.key, c.key.Kind())
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s (key %v)\n  plain text:     %s\n  encrypted text: %s\n  decrypted text: %s\n",
					c.key.Kind(), c.key, c.plain, enc, dec)
			}
			return nil
		},
	}
}
