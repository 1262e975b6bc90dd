package texify

import (
	"fmt"

	"github.com/Sumatoshi-tech/texfang/pkg/texgen"
)

// Style selects the statement renderer.
type Style string

// Supported styles.
const (
	// StyleFunction renders a function as a signature and formula.
	StyleFunction Style = "function"
	// StyleExpression renders a formula without the signature.
	StyleExpression Style = "expression"
	// StyleAlgorithmic renders pseudocode in the algorithmic environment.
	StyleAlgorithmic Style = "algorithmic"
	// StyleNotebook renders pseudocode with math commands only, suitable
	// for notebook display hooks.
	StyleNotebook Style = "notebook"
)

// ParseStyle converts a style name to a Style.
func ParseStyle(name string) (Style, error) {
	switch Style(name) {
	case StyleFunction, StyleExpression, StyleAlgorithmic, StyleNotebook:
		return Style(name), nil
	default:
		return "", fmt.Errorf("unrecognized style: %s", name)
	}
}

// Options bundles all rendering settings.
type Options struct {
	Style             Style
	UseMathSymbols    bool
	UseSetSymbols     bool
	UseMathrm         bool
	UseSignature      bool
	ReduceAssignments bool
	Identifiers       map[string]string
	LatexOverrides    map[string]string
	Prefixes          []string
	ExpandFunctions   []string
	PinvSymbol        string
	Plugins           []texgen.Plugin
}

// Option mutates Options.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		Style:        StyleFunction,
		UseMathrm:    true,
		UseSignature: true,
	}
}

// WithStyle selects the statement renderer.
func WithStyle(style Style) Option {
	return func(o *Options) { o.Style = style }
}

// WithMathSymbols converts identifiers with a math symbol surface
// (e.g. "alpha") to the LaTeX symbol.
func WithMathSymbols(enabled bool) Option {
	return func(o *Options) { o.UseMathSymbols = enabled }
}

// WithSetSymbols renders the bitwise operators as set operations.
func WithSetSymbols(enabled bool) Option {
	return func(o *Options) { o.UseSetSymbols = enabled }
}

// WithMathrm controls wrapping plain multi-character identifiers in
// \mathrm{}. Enabled by default.
func WithMathrm(enabled bool) Option {
	return func(o *Options) { o.UseMathrm = enabled }
}

// WithSignature controls the leading function signature. Enabled by
// default; the expression style ignores it.
func WithSignature(enabled bool) Option {
	return func(o *Options) { o.UseSignature = enabled }
}

// WithReduceAssignments substitutes intermediate assignments into the
// final expression.
func WithReduceAssignments(enabled bool) Option {
	return func(o *Options) { o.ReduceAssignments = enabled }
}

// WithIdentifiers replaces identifier names before rendering. Keys and
// values must be valid Python identifiers.
func WithIdentifiers(mapping map[string]string) Option {
	return func(o *Options) { o.Identifiers = mapping }
}

// WithLatexOverrides renders the given identifiers with fixed LaTeX,
// bypassing the usual conversion rules.
func WithLatexOverrides(mapping map[string]string) Option {
	return func(o *Options) { o.LatexOverrides = mapping }
}

// WithPrefixes trims the given module prefixes from attribute chains.
func WithPrefixes(prefixes ...string) Option {
	return func(o *Options) { o.Prefixes = append(o.Prefixes, prefixes...) }
}

// WithExpandFunctions expands the named math helpers into their defining
// expressions.
func WithExpandFunctions(names ...string) Option {
	return func(o *Options) { o.ExpandFunctions = append(o.ExpandFunctions, names...) }
}

// WithPinvSymbol overrides the symbol used for matrix pseudoinverses.
func WithPinvSymbol(symbol string) Option {
	return func(o *Options) { o.PinvSymbol = symbol }
}

// WithPlugins prepends custom plugins to the rendering chain. Earlier
// plugins take precedence.
func WithPlugins(plugins ...texgen.Plugin) Option {
	return func(o *Options) { o.Plugins = append(o.Plugins, plugins...) }
}
