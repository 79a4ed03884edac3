package hcl_adapter

import (
	"context"
	"errors"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/modelexport/internal/config"
	"github.com/vk/modelexport/internal/ctxlog"
	"github.com/vk/modelexport/internal/dag"
)

// symbol is a parameter or variable awaiting its value.
type symbol struct {
	name string
	src  string
	// expr is the explicit value, or src parsed as HCL. It is nil when src
	// is not valid HCL; Resolve then reports the parse error.
	expr hcl.Expression
}

// resolveValues evaluates every parameter and variable after the symbols
// its expression refers to. Circular definitions are rejected.
func (l *Loader) resolveValues(ctx context.Context, roots []*fileRoot) (map[string]config.Value, error) {
	logger := ctxlog.FromContext(ctx)

	var symbols []*symbol
	for _, root := range roots {
		for _, p := range root.Parameters {
			symbols = append(symbols, newSymbol(ctx, p.Name, p.Value, p.Expression))
		}
		for _, v := range root.Variables {
			symbols = append(symbols, newSymbol(ctx, v.Name, v.Value, v.Expression))
		}
	}

	g := dag.New()
	byName := make(map[string]*symbol, len(symbols))
	for _, s := range symbols {
		g.AddNode(s.name)
		byName[s.name] = s
	}
	for _, s := range symbols {
		if s.expr == nil {
			continue
		}
		for _, traversal := range s.expr.Variables() {
			ref := traversal.RootName()
			if !g.Has(ref) {
				continue
			}
			if err := g.AddEdge(ref, s.name); err != nil {
				return nil, &config.ParamError{Symbol: s.name, Err: err}
			}
			logger.Debug("Linked value dependency.", "symbol", s.name, "depends_on", ref)
		}
	}

	order, err := g.Order()
	if err != nil {
		var ce *dag.CycleError
		if errors.As(err, &ce) {
			return nil, &config.ParamError{Symbol: ce.Node, Err: err}
		}
		return nil, err
	}

	r := NewResolver()
	values := make(map[string]config.Value, len(order))
	for _, name := range order {
		s := byName[name]
		v, err := r.Resolve(s.name, s.expr, s.src)
		if err != nil {
			return nil, err
		}
		logger.Debug("Resolved value.", "symbol", name, "kind", v.Kind.String())
		values[name] = v
	}
	return values, nil
}

func newSymbol(ctx context.Context, name string, value hcl.Expression, src string) *symbol {
	s := &symbol{name: name, src: src}
	if isExprDefined(ctx, value, "value") {
		s.expr = value
		return s
	}
	if expr, diags := hclsyntax.ParseExpression([]byte(src), name, hcl.InitialPos); !diags.HasErrors() {
		s.expr = expr
	}
	return s
}
