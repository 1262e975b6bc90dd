package texgen

import (
	"errors"
	"strings"

	"github.com/Sumatoshi-tech/texfang/pkg/pyast"
)

// Plugin is one handler in a rendering chain. Render returns the LaTeX
// form of the node, or ErrSkip to defer to the next handler. A plugin may
// call back into the chain to render child nodes; it must not retain
// mutable state across calls beyond its construction-time configuration.
type Plugin interface {
	Render(chain *Chain, node pyast.Node) (string, error)
}

// Chain is an ordered list of plugins. The first plugin that does not
// decline a node wins. Chains are immutable after construction and safe
// for concurrent use.
type Chain struct {
	plugins []Plugin
}

// NewChain creates a chain over the given plugins, tried in order.
func NewChain(plugins ...Plugin) *Chain {
	return &Chain{plugins: plugins}
}

// Render renders a node by trying each plugin in order. If every plugin
// declines, an UnsupportedError naming the node kind is returned.
func (c *Chain) Render(node pyast.Node) (string, error) {
	for _, plugin := range c.plugins {
		out, err := plugin.Render(c, node)
		if errors.Is(err, ErrSkip) {
			continue
		}

		if err != nil {
			return "", err
		}

		return out, nil
	}

	return "", &UnsupportedError{Construct: string(node.Kind())}
}

// RenderAll renders each node and joins the results with sep.
func (c *Chain) RenderAll(nodes []pyast.Expr, sep string) (string, error) {
	parts := make([]string, len(nodes))

	for i, node := range nodes {
		out, err := c.Render(node)
		if err != nil {
			return "", err
		}

		parts[i] = out
	}

	return strings.Join(parts, sep), nil
}
