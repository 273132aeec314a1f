package main

import (
	"fmt"
	"os"

	"github.com/stamp-dev/stamp/cmd/stamp"
	"github.com/stamp-dev/stamp/pkg/ui"
)

func main() {
	rootCmd := stamp.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red
		errorStyle := ui.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
