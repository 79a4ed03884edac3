package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/modelexport/internal/ctxlog"
)

// isExprDefined checks if an HCL expression was actually present in the source
// code. The HCL decoder populates omitted optional expression fields with
// zero-width placeholder expressions, so a nil check is not enough.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}

	// A real attribute occupies bytes in the file; a placeholder has a
	// zero-width range.
	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte

	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)
	return isDefined
}

// mergeAttr copies v into *dst, failing when both are set. Top-level
// attributes may come from any file but only from one.
func mergeAttr[T string | []string](dst *T, v T, attr, file string) error {
	if len(v) == 0 {
		return nil
	}
	if len(*dst) != 0 {
		return fmt.Errorf("attribute '%s' in %s is already set by another model file", attr, file)
	}
	*dst = v
	return nil
}
