// Package texify is the high level interface: it parses Python source,
// normalizes the tree and renders LaTeX in the requested style.
package texify

import (
	"context"
	"fmt"

	"github.com/Sumatoshi-tech/texfang/pkg/pyast"
	"github.com/Sumatoshi-tech/texfang/pkg/pyparse"
	"github.com/Sumatoshi-tech/texfang/pkg/rewrite"
	"github.com/Sumatoshi-tech/texfang/pkg/texgen"
)

var parser = pyparse.NewParser()

// Generate renders LaTeX from Python source according to the options.
func Generate(ctx context.Context, source string, opts ...Option) (string, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	module, err := parser.Parse(ctx, source)
	if err != nil {
		return "", err
	}

	node, err := applyRewriters(module, options)
	if err != nil {
		return "", err
	}

	chain, err := buildChain(options)
	if err != nil {
		return "", err
	}

	// A bare expression fragment skips the statement renderers.
	if m, ok := node.(*pyast.Module); ok && len(m.Body) == 1 {
		if stmt, ok := m.Body[0].(*pyast.ExprStmt); ok {
			return chain.Render(stmt.Value)
		}
	}

	return chain.Render(node)
}

// Function renders a function definition as a signature and formula.
func Function(ctx context.Context, source string, opts ...Option) (string, error) {
	return Generate(ctx, source, prepend(opts, WithStyle(StyleFunction))...)
}

// Expression renders source as a formula without the signature.
func Expression(ctx context.Context, source string, opts ...Option) (string, error) {
	return Generate(ctx, source, prepend(opts, WithStyle(StyleExpression), WithSignature(false))...)
}

// Algorithmic renders a function as pseudocode in the algorithmic
// environment.
func Algorithmic(ctx context.Context, source string, opts ...Option) (string, error) {
	return Generate(ctx, source, prepend(opts, WithStyle(StyleAlgorithmic))...)
}

// WithFallback renders like Generate but never fails: conversion errors
// are returned as a printable description instead.
func WithFallback(ctx context.Context, source string, opts ...Option) string {
	latex, err := Generate(ctx, source, opts...)
	if err != nil {
		return DescribeError(err)
	}

	return latex
}

// DescribeError formats a conversion error for display in rendered
// output.
func DescribeError(err error) string {
	return fmt.Sprintf("error: %v", err)
}

func prepend(opts []Option, first ...Option) []Option {
	return append(first, opts...)
}

func applyRewriters(module *pyast.Module, options Options) (pyast.Node, error) {
	rewriters := []rewrite.Rewriter{rewrite.AugAssignReplacer{}}

	if len(options.Prefixes) > 0 {
		trimmer, err := rewrite.NewPrefixTrimmer(options.Prefixes)
		if err != nil {
			return nil, err
		}

		rewriters = append(rewriters, trimmer)
	}

	if len(options.Identifiers) > 0 {
		replacer, err := rewrite.NewIdentifierReplacer(options.Identifiers)
		if err != nil {
			return nil, err
		}

		rewriters = append(rewriters, replacer)
	}

	if options.ReduceAssignments {
		rewriters = append(rewriters, rewrite.DocstringRemover{}, rewrite.AssignmentReducer{})
	}

	if len(options.ExpandFunctions) > 0 {
		rewriters = append(rewriters, rewrite.NewFunctionExpander(options.ExpandFunctions))
	}

	return rewrite.Apply(module, rewriters...)
}

// buildChain assembles the rendering chain: custom plugins first, then
// the built-in notations, the statement renderer of the selected style,
// and the generic expression compiler last.
func buildChain(options Options) (*texgen.Chain, error) {
	compiler := texgen.NewExpressionCompiler(texgen.CompilerConfig{
		UseMathSymbols: options.UseMathSymbols,
		UseSetSymbols:  options.UseSetSymbols,
		UseMathrm:      options.UseMathrm,
		Identifiers:    options.LatexOverrides,
	})

	ident := compiler.Identifiers()

	var statements texgen.Plugin

	switch options.Style {
	case StyleFunction:
		statements = texgen.NewFunctionCodegen(ident, options.UseSignature)
	case StyleExpression:
		statements = texgen.NewFunctionCodegen(ident, false)
	case StyleAlgorithmic:
		statements = texgen.NewAlgorithmicCodegen(ident, false)
	case StyleNotebook:
		statements = texgen.NewAlgorithmicCodegen(ident, true)
	default:
		return nil, fmt.Errorf("unrecognized style: %s", options.Style)
	}

	plugins := make([]texgen.Plugin, 0, len(options.Plugins)+5)
	plugins = append(plugins, options.Plugins...)
	plugins = append(plugins,
		texgen.TypeAnnotationPlugin{},
		texgen.SumProdPlugin{},
		texgen.NewMatrixPlugin(options.PinvSymbol),
		statements,
		compiler,
	)

	return texgen.NewChain(plugins...), nil
}
