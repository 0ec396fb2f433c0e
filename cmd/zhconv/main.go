// Command zhconv converts Chinese text between script variants, either as
// plain text streams or inside zipped Office/EPUB documents, and can
// regenerate the dictionary snapshot from plain-text dictionary files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "zhconv",
		Short:         "Convert between Chinese script variants",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newConvertCmd(), newDictgenCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
