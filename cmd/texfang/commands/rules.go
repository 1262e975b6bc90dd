package commands

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/texfang/pkg/rewrite"
	"github.com/Sumatoshi-tech/texfang/pkg/texgen"
)

// RulesCommand holds the flags for the rules command.
type RulesCommand struct {
	section string
}

// NewRulesCommand creates and configures the rules command.
func NewRulesCommand() *cobra.Command {
	cmd := &RulesCommand{}

	cobraCmd := &cobra.Command{
		Use:   "rules",
		Short: "List built-in notations",
		Long:  "List the built-in function notations, expandable functions and math symbol names.",
		RunE:  cmd.Run,
	}

	cobraCmd.Flags().StringVar(&cmd.section, "section", "all", "section to print: functions, expansions, symbols or all")

	return cobraCmd
}

// Run executes the rules command.
func (c *RulesCommand) Run(_ *cobra.Command, _ []string) error {
	switch c.section {
	case "functions":
		printFunctionRules()
	case "expansions":
		printExpansions()
	case "symbols":
		printMathSymbols()
	case "all":
		printFunctionRules()
		printExpansions()
		printMathSymbols()
	default:
		return fmt.Errorf("unrecognized section: %s", c.section)
	}

	return nil
}

func printFunctionRules() {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle("Built-in function notations")
	tbl.AppendHeader(table.Row{"Function", "LaTeX", "Style"})

	for _, name := range texgen.BuiltinFunctionNames() {
		rule, ok := texgen.BuiltinFunctionRule(name)
		if !ok {
			continue
		}

		style := "call"

		switch {
		case rule.IsUnary:
			style = "unary"
		case rule.IsWrapped:
			style = "wrapped"
		}

		preview := rule.Left + "..." + rule.Right

		tbl.AppendRow(table.Row{name, preview, style})
	}

	fmt.Fprintln(os.Stdout, tbl.Render())
}

func printExpansions() {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle("Expandable functions")
	tbl.AppendHeader(table.Row{"Function"})

	for _, name := range rewrite.ExpandableFunctions() {
		tbl.AppendRow(table.Row{name})
	}

	fmt.Fprintln(os.Stdout, tbl.Render())
}

const symbolsPerRow = 6

func printMathSymbols() {
	names := texgen.MathSymbolNames()

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle("Math symbol names")

	for start := 0; start < len(names); start += symbolsPerRow {
		end := min(start+symbolsPerRow, len(names))

		row := make(table.Row, 0, symbolsPerRow)
		for _, name := range names[start:end] {
			row = append(row, name)
		}

		tbl.AppendRow(row)
	}

	fmt.Fprintln(os.Stdout, tbl.Render())
	fmt.Fprintln(os.Stdout, `Symbols render as \name, e.g. alpha becomes \alpha.`)
}
