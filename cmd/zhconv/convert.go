package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zhconvkit/zhconv"
	"github.com/zhconvkit/zhconv/office"
)

type convertOptions struct {
	input       string
	output      string
	config      string
	punct       bool
	officeMode  bool
	format      string
	autoExt     bool
	keepFont    bool
	listConfigs bool
	verbose     bool
}

func newConvertCmd() *cobra.Command {
	opts := &convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert text or Office files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", "input file (default: stdin)")
	f.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	f.StringVarP(&opts.config, "config", "c", "", "conversion configuration (e.g. s2t, tw2sp)")
	f.BoolVarP(&opts.punct, "punct", "p", false, "convert punctuation as well")
	f.BoolVar(&opts.officeMode, "office", false, "Office/EPUB document conversion mode")
	f.StringVar(&opts.format, "format", "", "Office format (docx, xlsx, pptx, odt, ods, odp, epub)")
	f.BoolVar(&opts.autoExt, "auto-ext", false, "append the format extension to an output file name that has none")
	f.BoolVar(&opts.keepFont, "keep-font", true, "preserve font-family attribute values")
	f.BoolVar(&opts.listConfigs, "list-configs", false, "list supported conversion configurations")
	f.BoolVar(&opts.verbose, "verbose", false, "informational diagnostics")
	return cmd
}

func runConvert(opts *convertOptions) error {
	if opts.listConfigs {
		fmt.Println("Available configurations:")
		for _, cfg := range zhconv.SupportedConfigs() {
			fmt.Println("  " + cfg)
		}
		return nil
	}
	if opts.config == "" {
		return fmt.Errorf("missing required option: --config")
	}
	if !zhconv.IsSupportedConfig(opts.config) {
		return fmt.Errorf("unknown config %q (try --list-configs)", opts.config)
	}
	zhconv.SetVerboseLogging(opts.verbose)
	conv := zhconv.New(opts.config)
	if opts.officeMode {
		return runOfficeConvert(opts, conv)
	}
	return runTextConvert(opts, conv)
}

func runTextConvert(opts *convertOptions, conv *zhconv.OpenCC) error {
	var text []byte
	var err error
	if opts.input != "" {
		text, err = os.ReadFile(opts.input)
	} else {
		text, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	out := conv.Convert(string(text), opts.punct)
	if opts.output != "" {
		return os.WriteFile(opts.output, []byte(out), 0o644)
	}
	_, err = io.WriteString(os.Stdout, out)
	return err
}

func runOfficeConvert(opts *convertOptions, conv *zhconv.OpenCC) error {
	if opts.input == "" {
		return fmt.Errorf("--input is required for Office conversion")
	}
	format := opts.format
	if format == "" {
		ext := strings.TrimPrefix(filepath.Ext(opts.input), ".")
		if ext == "" {
			return fmt.Errorf("cannot infer Office format from input file extension")
		}
		format = strings.ToLower(ext)
	}
	output := opts.output
	if output == "" {
		base := strings.TrimSuffix(opts.input, filepath.Ext(opts.input))
		output = base + "_converted." + format
		fmt.Fprintln(os.Stderr, "output file not specified, using:", output)
	}
	if opts.autoExt && filepath.Ext(output) == "" {
		output += "." + format
	}
	result := office.Convert(opts.input, output, format, conv, opts.punct, opts.keepFont)
	if !result.Success {
		return fmt.Errorf("%s", result.Message)
	}
	fmt.Fprintf(os.Stderr, "%s\noutput saved to: %s\n", result.Message, output)
	return nil
}
