package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/compozy/agent-s-wrapper/cli"
)

func main() {
	cmd := cli.RootCmd()
	if err := cmd.Execute(); err != nil {
		// The result has already been printed for a failed task.
		if !errors.Is(err, cli.ErrTaskFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
