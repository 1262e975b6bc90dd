// Package pyparse parses Python source fragments into the pyast tree.
// It wraps the tree-sitter Python grammar; parsers are pooled and safe
// for concurrent use.
package pyparse

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alexaandru/go-sitter-forest/python"
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/Sumatoshi-tech/texfang/pkg/pyast"
)

var (
	// ErrParse reports malformed or unsupported input source.
	ErrParse = errors.New("cannot parse input")

	errPoolType   = errors.New("unexpected type in parser pool")
	errNoRootNode = errors.New("no root node")
)

var (
	pyLanguage     *sitter.Language
	pyLanguageOnce sync.Once
)

func language() *sitter.Language {
	pyLanguageOnce.Do(func() {
		pyLanguage = sitter.NewLanguage(python.GetLanguage())
	})

	return pyLanguage
}

// Parser converts Python source into pyast trees.
type Parser struct {
	pool sync.Pool
}

// NewParser creates a Parser.
func NewParser() *Parser {
	lang := language()

	return &Parser{
		pool: sync.Pool{
			New: func() any {
				tsParser := sitter.NewParser()
				tsParser.SetLanguage(lang)

				return tsParser
			},
		},
	}
}

// Parse parses source into a Module. Malformed input reports an error
// wrapping ErrParse.
func (p *Parser) Parse(ctx context.Context, source string) (*pyast.Module, error) {
	tsParser, ok := p.pool.Get().(*sitter.Parser)
	if !ok {
		return nil, errPoolType
	}

	defer p.pool.Put(tsParser)

	content := []byte(source)

	tree, err := tsParser.ParseString(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return nil, fmt.Errorf("%w: %w", ErrParse, errNoRootNode)
	}

	if root.HasError() {
		return nil, fmt.Errorf("%w: syntax error", ErrParse)
	}

	conv := &converter{src: content}

	module, err := conv.module(root)
	if err != nil {
		return nil, err
	}

	if len(module.Body) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrParse)
	}

	return module, nil
}
