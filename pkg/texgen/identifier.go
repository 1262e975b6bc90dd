package texgen

import (
	"sort"
	"strings"
)

// IdentifierConverter maps bare identifier names to their LaTeX form.
// Conversion is a pure function of the name and the construction-time
// configuration.
type IdentifierConverter struct {
	useMathSymbols bool
	useMathrm      bool
	overrides      map[string]string
}

// NewIdentifierConverter creates a converter.
// useMathSymbols enables math-symbol and subscript rendering; useMathrm
// wraps plain multi-character names in \mathrm{}; overrides is the
// highest-priority name-to-LaTeX map and may be nil.
func NewIdentifierConverter(useMathSymbols, useMathrm bool, overrides map[string]string) *IdentifierConverter {
	return &IdentifierConverter{
		useMathSymbols: useMathSymbols,
		useMathrm:      useMathrm,
		overrides:      overrides,
	}
}

// Override looks up the explicit override for a name. Overrides bypass all
// other conversion rules, including for fully qualified dotted names.
func (c *IdentifierConverter) Override(name string) (string, bool) {
	latex, ok := c.overrides[name]

	return latex, ok
}

// Convert returns the LaTeX form of the identifier and whether the result
// is atomic (symbol-like), which affects multiplication-operator elision.
func (c *IdentifierConverter) Convert(name string) (string, bool) {
	if latex, ok := c.overrides[name]; ok {
		return latex, false
	}

	if c.useMathSymbols && mathSymbols[name] {
		return `\` + name, true
	}

	if len(name) == 1 && name != "_" {
		return name, true
	}

	parts := strings.SplitN(name, "_", 2)
	if c.useMathSymbols && len(parts) == 2 && parts[1] != "" && !strings.Contains(parts[1], "_") &&
		(len(parts[0]) == 1 || mathSymbols[parts[0]]) {
		first := parts[0]
		if len(first) > 1 {
			first = `\` + first
		}

		// "hat" renders as an accent over the base rather than a subscript.
		if parts[1] == "hat" {
			return `\widehat{` + first + `}`, false
		}

		return first + `_{\mathrm{` + parts[1] + `}}`, false
	}

	escaped := strings.ReplaceAll(name, "_", `\_`)
	if c.useMathrm {
		return `\mathrm{` + escaped + `}`, false
	}

	return escaped, false
}

// MathSymbolNames lists the identifier names with a LaTeX symbol surface,
// sorted.
func MathSymbolNames() []string {
	names := make([]string, 0, len(mathSymbols))

	for name := range mathSymbols {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// mathSymbols is the set of identifier names with a LaTeX symbol surface.
var mathSymbols = map[string]bool{
	"aleph":      true,
	"alpha":      true,
	"beta":       true,
	"beth":       true,
	"chi":        true,
	"daleth":     true,
	"delta":      true,
	"digamma":    true,
	"epsilon":    true,
	"eta":        true,
	"gamma":      true,
	"gimel":      true,
	"hbar":       true,
	"infty":      true,
	"iota":       true,
	"kappa":      true,
	"lambda":     true,
	"mu":         true,
	"nabla":      true,
	"nu":         true,
	"omega":      true,
	"phi":        true,
	"pi":         true,
	"psi":        true,
	"rho":        true,
	"sigma":      true,
	"tau":        true,
	"theta":      true,
	"upsilon":    true,
	"varepsilon": true,
	"varkappa":   true,
	"varphi":     true,
	"varpi":      true,
	"varrho":     true,
	"varsigma":   true,
	"vartheta":   true,
	"xi":         true,
	"zeta":       true,
	"Delta":      true,
	"Gamma":      true,
	"Lambda":     true,
	"Omega":      true,
	"Phi":        true,
	"Pi":         true,
	"Psi":        true,
	"Sigma":      true,
	"Theta":      true,
	"Upsilon":    true,
	"Xi":         true,
}
