package texgen

import (
	"fmt"
	"strings"

	"github.com/Sumatoshi-tech/texfang/pkg/pyast"
)

// MatrixPlugin renders numpy style linear algebra calls: array literals
// as bmatrix environments, zeros and identity as bold constants, and the
// linalg helpers det, matrix_rank, matrix_power, inv, pinv, transpose and
// grad as their usual notations.
type MatrixPlugin struct {
	pinvSymbol string
}

// NewMatrixPlugin creates a MatrixPlugin with the given symbol for matrix
// pseudoinverses. An empty symbol selects \dagger.
func NewMatrixPlugin(pinvSymbol string) *MatrixPlugin {
	if pinvSymbol == "" {
		pinvSymbol = `\dagger`
	}

	return &MatrixPlugin{pinvSymbol: pinvSymbol}
}

func (p *MatrixPlugin) Render(chain *Chain, node pyast.Node) (string, error) {
	call, ok := node.(*pyast.Call)
	if !ok {
		return "", ErrSkip
	}

	name, ok := pyast.FunctionName(call)
	if !ok {
		return "", ErrSkip
	}

	var (
		latex string
		err   error
	)

	switch name {
	case "array", "ndarray":
		latex, err = renderMatrixLiteral(chain, call)
	case "zeros":
		latex = renderZeros(call)
	case "identity":
		latex = renderIdentity(call)
	case "transpose":
		latex = renderMatrixSuffix(call, `^\intercal`)
	case "det":
		latex, err = renderMatrixFunc(chain, call, `\det`)
	case "matrix_rank":
		latex, err = renderMatrixFunc(chain, call, `\mathrm{rank}`)
	case "matrix_power":
		latex, err = renderMatrixPower(chain, call)
	case "inv":
		latex, err = renderMatrixInverse(chain, call, "-1")
	case "pinv":
		latex, err = renderMatrixInverse(chain, call, p.pinvSymbol)
	case "grad":
		latex, err = renderGrad(chain, call)
	default:
		return "", ErrSkip
	}

	if err != nil {
		return "", err
	}

	if latex == "" {
		return "", ErrSkip
	}

	return latex, nil
}

// renderMatrixLiteral renders array([[...], ...]) as a bmatrix. A flat
// list becomes a single row; ragged rows disqualify the call.
func renderMatrixLiteral(chain *Chain, call *pyast.Call) (string, error) {
	if len(call.Args) == 0 {
		return "", nil
	}

	arg, ok := call.Args[0].(*pyast.List)
	if !ok || len(arg.Elts) == 0 {
		return "", nil
	}

	row0, ok := arg.Elts[0].(*pyast.List)
	if !ok {
		row, err := chain.RenderAll(arg.Elts, " & ")
		if err != nil {
			return "", err
		}

		return bmatrix([]string{row}), nil
	}

	if len(row0.Elts) == 0 {
		return "", nil
	}

	ncols := len(row0.Elts)
	rows := make([]string, 0, len(arg.Elts))

	for _, elt := range arg.Elts {
		row, ok := elt.(*pyast.List)
		if !ok || len(row.Elts) != ncols {
			return "", nil
		}

		rendered, err := chain.RenderAll(row.Elts, " & ")
		if err != nil {
			return "", err
		}

		rows = append(rows, rendered)
	}

	return bmatrix(rows), nil
}

func bmatrix(rows []string) string {
	return `\begin{bmatrix} ` + strings.Join(rows, ` \\ `) + ` \end{bmatrix}`
}

func renderZeros(call *pyast.Call) string {
	if len(call.Args) != 1 {
		return ""
	}

	if tuple, ok := call.Args[0].(*pyast.Tuple); ok {
		dims := make([]int64, 0, len(tuple.Elts))

		for _, elt := range tuple.Elts {
			dim, ok := pyast.IntValue(elt)
			if !ok {
				return ""
			}

			dims = append(dims, dim)
		}

		if len(dims) == 0 {
			return "0"
		}

		if len(dims) == 1 {
			dims = []int64{1, dims[0]}
		}

		parts := make([]string, len(dims))
		for i, d := range dims {
			parts[i] = fmt.Sprintf("%d", d)
		}

		return fmt.Sprintf(`\mathbf{0}^{%s}`, strings.Join(parts, ` \times `))
	}

	dim, ok := pyast.IntValue(call.Args[0])
	if !ok {
		return ""
	}

	return fmt.Sprintf(`\mathbf{0}^{1 \times %d}`, dim)
}

func renderIdentity(call *pyast.Call) string {
	if len(call.Args) != 1 {
		return ""
	}

	ndims, ok := pyast.IntValue(call.Args[0])
	if !ok {
		return ""
	}

	return fmt.Sprintf(`\mathbf{I}_{%d}`, ndims)
}

// renderMatrixSuffix renders a single Name argument in bold with the given
// suffix, e.g. transpose(A) as \mathbf{A}^\intercal.
func renderMatrixSuffix(call *pyast.Call, suffix string) string {
	if len(call.Args) != 1 {
		return ""
	}

	name, ok := call.Args[0].(*pyast.Name)
	if !ok {
		return ""
	}

	return fmt.Sprintf(`\mathbf{%s}%s`, name.Ident, suffix)
}

func renderMatrixFunc(chain *Chain, call *pyast.Call, command string) (string, error) {
	if len(call.Args) != 1 {
		return "", nil
	}

	arg, err := renderMatrixArg(chain, call)
	if err != nil || arg == "" {
		return "", err
	}

	return fmt.Sprintf(`%s \mathopen{}\left( %s \mathclose{}\right)`, command, arg), nil
}

func renderMatrixPower(chain *Chain, call *pyast.Call) (string, error) {
	if len(call.Args) != 2 {
		return "", nil
	}

	power, ok := pyast.IntValue(call.Args[1])
	if !ok {
		return "", nil
	}

	arg, err := renderMatrixArg(chain, call)
	if err != nil || arg == "" {
		return "", err
	}

	return fmt.Sprintf("%s^{%d}", arg, power), nil
}

func renderMatrixInverse(chain *Chain, call *pyast.Call, symbol string) (string, error) {
	if len(call.Args) != 1 {
		return "", nil
	}

	arg, err := renderMatrixArg(chain, call)
	if err != nil || arg == "" {
		return "", err
	}

	return fmt.Sprintf("%s^{%s}", arg, symbol), nil
}

// renderMatrixArg renders the sole argument of a linalg call: a Name in
// bold, or a list literal as a bmatrix. Other shapes yield "".
func renderMatrixArg(chain *Chain, call *pyast.Call) (string, error) {
	if len(call.Args) < 1 {
		return "", nil
	}

	switch arg := call.Args[0].(type) {
	case *pyast.Name:
		return fmt.Sprintf(`\mathbf{%s}`, arg.Ident), nil
	case *pyast.List:
		return renderMatrixLiteral(chain, call)
	default:
		return "", nil
	}
}

func renderGrad(chain *Chain, call *pyast.Call) (string, error) {
	if len(call.Args) == 0 {
		return "", nil
	}

	arg, err := chain.Render(call.Args[0])
	if err != nil {
		return "", err
	}

	return `\nabla \mathopen{}\left(` + arg + `\mathclose{}\right)`, nil
}
