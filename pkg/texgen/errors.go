// Package texgen compiles pyast trees into LaTeX notation.
// The package is built around a plugin chain: an ordered list of handlers
// that cooperatively render a node, with the generic expression compiler as
// the terminal member.
package texgen

import "errors"

// ErrSkip is the decline signal of the plugin chain. A plugin returns it
// to pass the node to the next handler in the chain.
var ErrSkip = errors.New("node not handled by this plugin")

// UnsupportedError indicates that a construct has no rendering: either no
// plugin in the chain accepted the node, or the construct is disallowed by
// rendering policy. Rendering is all-or-nothing, so the error aborts the
// whole render call.
type UnsupportedError struct {
	Construct string
}

func (e *UnsupportedError) Error() string {
	return "unsupported syntax: " + e.Construct
}

// SyntaxError indicates that a construct is syntactically present but
// violates a structural rendering rule (e.g. an if chain without a final
// else branch).
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Msg
}
