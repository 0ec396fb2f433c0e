package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zhconvkit/zhconv"
)

type dictgenOptions struct {
	base    string
	output  string
	compact bool
}

func newDictgenCmd() *cobra.Command {
	opts := &dictgenOptions{}
	cmd := &cobra.Command{
		Use:   "dictgen",
		Short: "Build a dictionary snapshot from plain-text dictionary files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDictgen(opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.base, "dicts", "d", "dicts", "directory holding the dictionary .txt files")
	f.StringVarP(&opts.output, "output", "o", zhconv.SnapshotFile, "snapshot file to write")
	f.BoolVar(&opts.compact, "compact", false, "write compact JSON instead of the canonical pretty form")
	return cmd
}

func runDictgen(opts *dictgenOptions) error {
	d, err := zhconv.FromDicts(opts.base)
	if err != nil {
		return err
	}
	if err := d.SaveJSON(opts.output, !opts.compact); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "snapshot written to %s (%s)\n", opts.output, d)
	return nil
}
