package graphql

import (
	"fmt"
	"strings"

	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
)

// DefaultMaxDepth bounds nesting of incoming queries
const DefaultMaxDepth = 6

// queryDepth returns the deepest selection nesting of any operation
func queryDepth(document *ast.Document) int {
	fragments := make(map[string]*ast.FragmentDefinition)
	for _, def := range document.Definitions {
		if frag, ok := def.(*ast.FragmentDefinition); ok {
			fragments[frag.Name.Value] = frag
		}
	}

	deepest := 0
	for _, def := range document.Definitions {
		if op, ok := def.(*ast.OperationDefinition); ok {
			deepest = max(deepest, selectionDepth(op.SelectionSet, 0, fragments, map[string]bool{}))
		}
	}
	return deepest
}

func selectionDepth(set *ast.SelectionSet, depth int, fragments map[string]*ast.FragmentDefinition, seen map[string]bool) int {
	if set == nil || len(set.Selections) == 0 {
		return depth
	}

	deepest := depth
	for _, selection := range set.Selections {
		switch sel := selection.(type) {
		case *ast.Field:
			if strings.HasPrefix(sel.Name.Value, "__") {
				continue
			}
			deepest = max(deepest, selectionDepth(sel.SelectionSet, depth+1, fragments, seen))
		case *ast.InlineFragment:
			deepest = max(deepest, selectionDepth(sel.SelectionSet, depth, fragments, seen))
		case *ast.FragmentSpread:
			name := sel.Name.Value
			frag, ok := fragments[name]
			if !ok || seen[name] {
				continue
			}
			seen[name] = true
			deepest = max(deepest, selectionDepth(frag.SelectionSet, depth, fragments, seen))
			delete(seen, name)
		}
	}
	return deepest
}

// ValidateQueryDepth rejects queries nested deeper than maxDepth
func ValidateQueryDepth(query string, maxDepth int) error {
	document, err := parser.Parse(parser.ParseParams{Source: query})
	if err != nil {
		return fmt.Errorf("failed to parse query: %w", err)
	}

	if depth := queryDepth(document); depth > maxDepth {
		return fmt.Errorf("query depth %d exceeds maximum allowed depth %d", depth, maxDepth)
	}
	return nil
}
