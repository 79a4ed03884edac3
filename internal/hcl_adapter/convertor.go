package hcl_adapter

import (
	"fmt"
	"math"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/modelexport/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Resolver evaluates parameter and variable values. Every resolved symbol is
// in scope for the ones resolved after it.
type Resolver struct {
	vars  map[string]cty.Value
	funcs map[string]function.Function
}

// NewResolver creates a resolver with an empty scope.
func NewResolver() *Resolver {
	return &Resolver{
		vars: make(map[string]cty.Value),
		funcs: map[string]function.Function{
			"abs":    stdlib.AbsoluteFunc,
			"ceil":   stdlib.CeilFunc,
			"floor":  stdlib.FloorFunc,
			"log":    unary(math.Log),
			"max":    stdlib.MaxFunc,
			"min":    stdlib.MinFunc,
			"pow":    stdlib.PowFunc,
			"signum": stdlib.SignumFunc,
			"exp":    unary(math.Exp),
			"sqrt":   unary(math.Sqrt),
			"ln":     unary(math.Log),
			"round":  unary(math.Round),
		},
	}
}

// unary adapts a float function to a cty function of one number.
func unary(fn func(float64) float64) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{{Name: "x", Type: cty.Number}},
		Type:   function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			x, _ := args[0].AsBigFloat().Float64()
			r := fn(x)
			if math.IsNaN(r) || math.IsInf(r, 0) {
				return cty.UnknownVal(cty.Number), fmt.Errorf("result of %v is not a finite number", x)
			}
			return cty.NumberFloatVal(r), nil
		},
	})
}

func (r *Resolver) evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{Variables: r.vars, Functions: r.funcs}
}

// Resolve evaluates expr, or src parsed as an HCL expression when expr is
// nil, binds the result to name and returns it as a config.Value.
func (r *Resolver) Resolve(name string, expr hcl.Expression, src string) (config.Value, error) {
	if expr == nil {
		parsed, diags := hclsyntax.ParseExpression([]byte(src), name, hcl.InitialPos)
		if diags.HasErrors() {
			return config.Value{}, &config.ParamError{Symbol: name, Err: fmt.Errorf("expression %q cannot be evaluated; set an explicit value: %w", src, diags)}
		}
		expr = parsed
	}

	v, diags := expr.Value(r.evalContext())
	if diags.HasErrors() {
		return config.Value{}, &config.ParamError{Symbol: name, Err: diags}
	}
	val, err := toValue(v)
	if err != nil {
		return config.Value{}, &config.ParamError{Symbol: name, Err: err}
	}
	r.vars[name] = v
	return val, nil
}

// toValue converts a known cty value into the tagged model value.
func toValue(v cty.Value) (config.Value, error) {
	if v.IsNull() || !v.IsWhollyKnown() {
		return config.Value{}, fmt.Errorf("value must be known and not null")
	}
	ty := v.Type()
	switch {
	case ty == cty.Bool:
		return config.BooleanValue(v.True()), nil

	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return config.IntegerValue(i), nil
			}
		}
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return config.Value{}, err
		}
		return config.DoubleValue(f), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		if m, err := convert.Convert(v, cty.List(cty.List(cty.Number))); err == nil {
			var rows [][]float64
			if err := gocty.FromCtyValue(m, &rows); err != nil {
				return config.Value{}, err
			}
			return config.MatrixValue(rows), nil
		}
		row, err := convert.Convert(v, cty.List(cty.Number))
		if err != nil {
			return config.Value{}, fmt.Errorf("a matrix must be a list of numbers or a list of lists of numbers: %w", err)
		}
		var vals []float64
		if err := gocty.FromCtyValue(row, &vals); err != nil {
			return config.Value{}, err
		}
		return config.MatrixValue([][]float64{vals}), nil
	}
	return config.Value{}, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
}
