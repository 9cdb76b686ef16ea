package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jhoicas/contabilizador/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		if errors.Is(err, commands.ErrUnbalanced) {
			fmt.Fprintln(os.Stderr, err)
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
