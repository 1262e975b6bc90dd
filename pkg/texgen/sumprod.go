package texgen

import (
	"fmt"
	"strings"

	"github.com/Sumatoshi-tech/texfang/pkg/pyast"
)

// SumProdPlugin renders calls to sum, fsum and prod over a generator
// expression as bound operators.
type SumProdPlugin struct{}

var sumProdCommands = map[string]string{
	"fsum": `\sum`,
	"sum":  `\sum`,
	"prod": `\prod`,
}

// Render converts sum(... for ... in range(...)) style calls. Other nodes
// are declined.
func (SumProdPlugin) Render(chain *Chain, node pyast.Node) (string, error) {
	call, ok := node.(*pyast.Call)
	if !ok {
		return "", ErrSkip
	}

	name, ok := pyast.FunctionName(call)
	if !ok {
		return "", ErrSkip
	}

	command, ok := sumProdCommands[name]
	if !ok || len(call.Args) == 0 {
		return "", ErrSkip
	}

	gen, ok := call.Args[0].(*pyast.GeneratorExp)
	if !ok {
		return "", ErrSkip
	}

	elt, scripts, err := sumProdInfo(chain, gen)
	if err != nil {
		return "", err
	}

	parts := make([]string, len(scripts))
	for i, s := range scripts {
		parts[i] = fmt.Sprintf("%s_{%s}^{%s}", command, s.lower, s.upper)
	}

	return strings.Join(parts, " ") + fmt.Sprintf(` \mathopen{}\left({%s}\mathclose{}\right)`, elt), nil
}

type sumProdScript struct {
	lower string
	upper string
}

func sumProdInfo(chain *Chain, node *pyast.GeneratorExp) (string, []sumProdScript, error) {
	elt, err := chain.Render(node.Elt)
	if err != nil {
		return "", nil, err
	}

	scripts := make([]sumProdScript, 0, len(node.Generators))

	for _, comp := range node.Generators {
		lowerRHS, upper, ok, err := sumProdRange(chain, comp)
		if err != nil {
			return "", nil, err
		}

		if ok && len(comp.Ifs) == 0 {
			target, err := chain.Render(comp.Target)
			if err != nil {
				return "", nil, err
			}

			scripts = append(scripts, sumProdScript{lower: target + " = " + lowerRHS, upper: upper})

			continue
		}

		// Fall back to the usual comprehension form.
		lower, err := chain.Render(comp)
		if err != nil {
			return "", nil, err
		}

		scripts = append(scripts, sumProdScript{lower: lower})
	}

	return elt, scripts, nil
}

// sumProdRange extracts the bounds of a range iterator. Only ascending
// ranges with step size 1 qualify; anything else reports ok == false.
func sumProdRange(chain *Chain, comp *pyast.Comprehension) (lowerRHS, upper string, ok bool, err error) {
	call, isCall := comp.Iter.(*pyast.Call)
	if !isCall {
		return "", "", false, nil
	}

	if _, isName := call.Func.(*pyast.Name); !isName {
		return "", "", false, nil
	}

	info, rangeErr := pyast.AnalyzeRange(call)
	if rangeErr != nil {
		return "", "", false, nil
	}

	if info.StepInt == nil || *info.StepInt != 1 {
		return "", "", false, nil
	}

	if info.StartInt != nil && info.StopInt != nil && *info.StartInt >= *info.StopInt {
		return "", "", false, nil
	}

	if info.StartInt != nil {
		lowerRHS = fmt.Sprintf("%d", *info.StartInt)
	} else {
		lowerRHS, err = chain.Render(info.Start)
		if err != nil {
			return "", "", false, err
		}
	}

	if info.StopInt != nil {
		upper = fmt.Sprintf("%d", *info.StopInt-1)
	} else {
		upper, err = chain.Render(pyast.ReduceStopParameter(info.Stop))
		if err != nil {
			return "", "", false, err
		}
	}

	return lowerRHS, upper, true, nil
}
