package main

import (
	"CipherBot/internal/cliapp"
	"context"
	"fmt"
	"os"
)

func main() {
	app := cliapp.NewApp(os.Stdout, os.Stdin)
	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
