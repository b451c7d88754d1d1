package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/jsonease/jsonease"
	"github.com/jsonease/jsonease/internal/config"
	"github.com/jsonease/jsonease/internal/errors"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Validate    bool   `help:"Only check that the input is well-formed JSON." short:"c"`
	Tier        string `help:"Codec tier used for validation: basic, advanced or custom." short:"t"`
	Indent      int    `help:"Indent width for pretty-printing." default:"-1"`
	Encoding    string `help:"IANA charset name of the input bytes." short:"e"`
	Interactive bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
	Version     bool   `help:"Show version information." short:"v"`
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("jsonease"),
		kong.Description("Format and validate JSON documents"),
		kong.UsageOnError(),
	)

	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	_, err := parser.Parse(os.Args[1:])
	if err != nil {
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("jsonease version %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonease --help\n")
		os.Exit(1)
	}
}

// run executes the main program logic
func run() error {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return err
	}

	text, err := readInput()
	if err != nil {
		return err
	}

	if CLI.Validate {
		tierName := CLI.Tier
		if tierName == "" {
			tierName = cfg.Tier
		}
		tier, err := jsonease.ParseTier(tierName)
		if err != nil {
			return err
		}
		opts := []jsonease.Option{jsonease.WithTier(tier)}
		if cfg.MaxDepth > 0 {
			opts = append(opts, jsonease.WithMaxDepth(cfg.MaxDepth))
		}
		if _, err := jsonease.Loads(text, opts...); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Input is valid JSON")
		return nil
	}

	indent := cfg.Format.Indent
	if CLI.Indent >= 0 {
		indent = CLI.Indent
	}
	formatted, err := jsonease.Format(text,
		jsonease.WithAlign(cfg.Format.Align),
		jsonease.WithIndentWidth(indent),
		jsonease.WithItemSeparator(cfg.Format.ItemSeparator),
		jsonease.WithKeySeparator(cfg.Format.KeySeparator),
		jsonease.WithLineEnding(cfg.Format.LineEnding),
	)
	if err != nil {
		return err
	}

	return writeOutput(formatted)
}

// readInput reads JSON text from file, stdin or the interactive prompt
func readInput() (string, error) {
	if CLI.Input != "" {
		data, err := os.ReadFile(CLI.Input)
		if err != nil {
			if os.IsNotExist(err) {
				return "", errors.NewInputError(
					fmt.Sprintf("file '%s' not found", CLI.Input),
					errors.ErrFileNotFound,
				)
			}
			return "", errors.NewInputError(
				fmt.Sprintf("failed to read file '%s'", CLI.Input), err)
		}
		return decodeBytes(data)
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		if CLI.Interactive {
			return readInteractiveInput()
		}
		return "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return decodeBytes(data)
}

// decodeBytes applies the --encoding flag to raw input bytes.
func decodeBytes(data []byte) (string, error) {
	return jsonease.Transcode(data, CLI.Encoding)
}

// writeOutput writes text to file or stdout
func writeOutput(text string) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(text), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Formatted JSON written to %s\n", CLI.Output)
		return nil
	}

	_, err := fmt.Println(text)
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to
// paste JSON and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (string, error) {
	fmt.Fprintln(os.Stderr, "jsonease Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	var sb strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			sb.WriteString(line)
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
		sb.WriteString(line)
	}

	text := sb.String()
	if len(text) == 0 {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}
	return text, nil
}
