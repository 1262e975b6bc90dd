package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/texfang/pkg/config"
	"github.com/Sumatoshi-tech/texfang/pkg/texify"
	"github.com/Sumatoshi-tech/texfang/pkg/textutil"
)

// RenderCommand holds the flags for the render command.
type RenderCommand struct {
	configPath      string
	style           string
	output          string
	identifiersPath string
	prefixes        []string
	expand          []string
	pinvSymbol      string
	mathSymbols     bool
	setSymbols      bool
	noMathrm        bool
	noSignature     bool
	reduce          bool
	noColor         bool
}

// NewRenderCommand creates and configures the render command.
func NewRenderCommand() *cobra.Command {
	cmd := &RenderCommand{}

	cobraCmd := &cobra.Command{
		Use:   "render <file>...",
		Short: "Render Python source files as LaTeX",
		Long: `Render Python functions or expressions as LaTeX.
Reads from the given files, or from stdin when a file is "-".
Each input renders to one output line.`,
		Args: cobra.MinimumNArgs(1),
		RunE: cmd.Run,
	}

	flags := cobraCmd.Flags()
	flags.StringVarP(&cmd.style, "style", "s", "", "render style: function, expression, algorithmic or notebook")
	flags.StringVarP(&cmd.output, "output", "o", "", "output file (default: stdout)")
	flags.StringVarP(&cmd.configPath, "config", "c", "", "path to the config file")
	flags.StringVar(&cmd.identifiersPath, "identifiers", "", "YAML file mapping identifier names to replacements")
	flags.StringSliceVar(&cmd.prefixes, "prefixes", nil, "module prefixes to trim (comma-separated)")
	flags.StringSliceVar(&cmd.expand, "expand", nil, "function names to expand (comma-separated)")
	flags.StringVar(&cmd.pinvSymbol, "pinv-symbol", "", "symbol for matrix pseudoinverses")
	flags.BoolVar(&cmd.mathSymbols, "math-symbols", false, "render math symbol names as LaTeX symbols")
	flags.BoolVar(&cmd.setSymbols, "set-symbols", false, "render bitwise operators as set operations")
	flags.BoolVar(&cmd.noMathrm, "no-mathrm", false, "do not wrap multi-character names in \\mathrm{}")
	flags.BoolVar(&cmd.noSignature, "no-signature", false, "omit the function signature")
	flags.BoolVar(&cmd.reduce, "reduce-assignments", false, "substitute assignments into the final expression")
	flags.BoolVar(&cmd.noColor, "no-color", false, "disable colored output")

	return cobraCmd
}

// Run executes the render command.
func (c *RenderCommand) Run(cobraCmd *cobra.Command, args []string) error {
	if c.noColor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	cfg, err := config.LoadConfig(c.configPath)
	if err != nil {
		return err
	}

	setupLogging(cfg.Logging)

	opts, err := c.buildOptions(cobraCmd, cfg)
	if err != nil {
		return err
	}

	rendered := make([]string, 0, len(args))

	for _, path := range args {
		source, err := readSource(path)
		if err != nil {
			return err
		}

		latex, err := texify.Generate(cobraCmd.Context(), source, opts...)
		if err != nil {
			color.New(color.FgRed).Fprintf(os.Stderr, "conversion failed for %s: %v\n", path, err)

			return err
		}

		slog.Debug("rendered input", "path", path, "bytes", len(source), "output_bytes", len(latex))

		rendered = append(rendered, latex)
	}

	return c.writeOutput(strings.Join(rendered, "\n"))
}

// buildOptions merges config file defaults with command line flags; a
// flag that was set explicitly wins.
func (c *RenderCommand) buildOptions(cobraCmd *cobra.Command, cfg *config.Config) ([]texify.Option, error) {
	render := cfg.Render

	flags := cobraCmd.Flags()
	if flags.Changed("math-symbols") {
		render.UseMathSymbols = c.mathSymbols
	}

	if flags.Changed("set-symbols") {
		render.UseSetSymbols = c.setSymbols
	}

	if flags.Changed("no-mathrm") {
		render.UseMathrm = !c.noMathrm
	}

	if flags.Changed("no-signature") {
		render.UseSignature = !c.noSignature
	}

	if flags.Changed("reduce-assignments") {
		render.ReduceAssignments = c.reduce
	}

	if c.style != "" {
		render.Style = c.style
	}

	if len(c.prefixes) > 0 {
		render.Prefixes = c.prefixes
	}

	if len(c.expand) > 0 {
		render.ExpandFunctions = c.expand
	}

	if c.pinvSymbol != "" {
		render.PinvSymbol = c.pinvSymbol
	}

	if c.identifiersPath != "" {
		identifiers, err := loadIdentifiers(c.identifiersPath)
		if err != nil {
			return nil, err
		}

		render.Identifiers = identifiers
	}

	style, err := texify.ParseStyle(render.Style)
	if err != nil {
		return nil, err
	}

	opts := []texify.Option{
		texify.WithStyle(style),
		texify.WithMathSymbols(render.UseMathSymbols),
		texify.WithSetSymbols(render.UseSetSymbols),
		texify.WithMathrm(render.UseMathrm),
		texify.WithSignature(render.UseSignature),
		texify.WithReduceAssignments(render.ReduceAssignments),
	}

	if len(render.Identifiers) > 0 {
		opts = append(opts, texify.WithIdentifiers(render.Identifiers))
	}

	if len(render.LatexOverrides) > 0 {
		opts = append(opts, texify.WithLatexOverrides(render.LatexOverrides))
	}

	if len(render.Prefixes) > 0 {
		opts = append(opts, texify.WithPrefixes(render.Prefixes...))
	}

	if len(render.ExpandFunctions) > 0 {
		opts = append(opts, texify.WithExpandFunctions(render.ExpandFunctions...))
	}

	if render.PinvSymbol != "" {
		opts = append(opts, texify.WithPinvSymbol(render.PinvSymbol))
	}

	return opts, nil
}

func (c *RenderCommand) writeOutput(latex string) error {
	if c.output == "" {
		fmt.Fprintln(os.Stdout, latex)

		return nil
	}

	err := os.WriteFile(c.output, []byte(latex+"\n"), 0o600)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

// readSource reads the input file, or stdin for "-". Binary input is
// rejected and a uniform leading indent is stripped so that snippets
// copied out of an indented context still parse.
func readSource(path string) (string, error) {
	var (
		data []byte
		err  error
	)

	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
	}

	if textutil.IsBinary(data) {
		return "", fmt.Errorf("read input: %s is not a text file", path)
	}

	slog.Debug("read source", "path", path, "lines", textutil.CountLines(data))

	return textutil.Dedent(string(data)), nil
}

// loadIdentifiers reads a YAML mapping of identifier replacements.
func loadIdentifiers(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read identifiers: %w", err)
	}

	var identifiers map[string]string

	err = yaml.Unmarshal(data, &identifiers)
	if err != nil {
		return nil, fmt.Errorf("parse identifiers: %w", err)
	}

	return identifiers, nil
}

func setupLogging(cfg config.LoggingConfig) {
	var level slog.Level

	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	out := os.Stderr
	if cfg.Output == "stdout" {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	slog.SetDefault(slog.New(handler))
}
