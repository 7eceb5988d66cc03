package main

import (
	"fmt"
	"os"

	"speech2text/cmd/s2t/cmd"
	"speech2text/internal/config"
)

func main() {
	// Non-blocking: commands that need the key check it themselves
	if err := config.InitializeConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Configuration Warning: %v\n", err)
	}

	cmd.Execute()
}
