// This file translates the HCL schema structs into the format-agnostic model
// defined in the config package.

package hcl_adapter

import (
	"github.com/vk/modelexport/internal/config"
)

func (l *Loader) translateHeader(model *config.Model, h *fileRoot) error {
	var err error
	model.Name = h.Name
	model.States = h.States
	model.Dimensions = h.Dimensions
	if model.Type, err = config.ParseModelType(h.Type); err != nil {
		return err
	}
	if model.Simulation, err = config.ParseSimulationType(h.Simulation); err != nil {
		return err
	}
	if h.Meta != nil {
		model.Meta = config.Metadata{
			Author:          h.Meta.Author,
			Created:         h.Meta.Created,
			VersionCreated:  h.Meta.VersionCreated,
			Modifier:        h.Meta.Modifier,
			Modified:        h.Meta.Modified,
			VersionModified: h.Meta.VersionModified,
		}
	}
	return nil
}

// translateFile appends the declarations of one file to the model.
func (l *Loader) translateFile(model *config.Model, root *fileRoot, values map[string]config.Value) error {
	for _, p := range root.Parameters {
		model.Parameters = append(model.Parameters, &config.Parameter{
			Name:       p.Name,
			Notes:      p.Notes,
			Expression: p.Expression,
			Value:      values[p.Name],
		})
	}
	for _, v := range root.Variables {
		model.Variables = append(model.Variables, &config.Variable{
			Name:       v.Name,
			Notes:      v.Notes,
			Expression: v.Expression,
			Value:      values[v.Name],
		})
	}
	for _, t := range root.Tables {
		tbl, err := translateTable(t)
		if err != nil {
			return &config.ParamError{Symbol: t.Name, Err: err}
		}
		model.Tables = append(model.Tables, tbl)
	}
	for _, f := range root.Formulas {
		result, err := config.ParseResultType(f.Result)
		if err != nil {
			return &config.ParamError{Symbol: f.Name, Err: err}
		}
		model.Formulas = append(model.Formulas, &config.Formula{
			Name:        f.Name,
			Expression:  f.Expression,
			PersonLevel: f.PersonLevel,
			Result:      result,
		})
	}
	return nil
}

func translateTable(t *Table) (*config.Table, error) {
	tbl := &config.Table{
		Name:     t.Name,
		Notes:    t.Notes,
		Boundary: t.Boundary,
		Headers:  t.Headers,
		Data:     t.Data,
	}
	var err error
	if tbl.Type, err = config.ParseTableType(t.Type); err != nil {
		return nil, err
	}
	if tbl.LookupMethod, err = config.ParseLookupMethod(t.LookupMethod); err != nil {
		return nil, err
	}
	if tbl.Interpolation, err = config.ParseInterpolation(t.Interpolation); err != nil {
		return nil, err
	}
	if tbl.Extrapolate, err = config.ParseExtrapolation(t.Extrapolate); err != nil {
		return nil, err
	}
	for _, s := range t.Splines {
		tbl.Splines = append(tbl.Splines, &config.CubicSpline{
			Knots:             s.Knots,
			KnotHeights:       s.KnotHeights,
			Coeffs:            s.Coefficients,
			BoundaryCondition: s.BoundaryCondition,
		})
	}
	return tbl, nil
}
