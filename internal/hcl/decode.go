package hcl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/skeletongen/internal/labels"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// labelAttributes maps attribute names of the labels block to the list
// they set.
func labelAttributes(v *labels.Vocabulary) map[string]*[]string {
	return map[string]*[]string{
		"if_true":   &v.IfTrue,
		"if_false":  &v.IfFalse,
		"loop_body": &v.LoopBody,
		"loop_exit": &v.LoopExit,
		"try_body":  &v.TryBody,
		"try_catch": &v.TryCatch,
	}
}

func decodeLabels(body hcl.Body, evalCtx *hcl.EvalContext, dst *labels.Vocabulary) error {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return diags
	}

	// Merge only after every attribute decoded so a failure leaves dst intact.
	var override labels.Vocabulary
	targets := labelAttributes(&override)

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		target, ok := targets[name]
		if !ok {
			return fmt.Errorf("unsupported attribute %q in labels block", name)
		}
		val, diags := attrs[name].Expr.Value(evalCtx)
		if diags.HasErrors() {
			return diags
		}
		tokens, err := decodeTokens(val)
		if err != nil {
			return fmt.Errorf("in attribute %q: %w", name, err)
		}
		if len(tokens) == 0 {
			return fmt.Errorf("in attribute %q: at least one token is required", name)
		}
		*target = tokens
	}

	*dst = dst.Merge(override)
	return nil
}

// decodeTokens accepts a list or tuple of strings, or a single
// comma-separated string.
func decodeTokens(val cty.Value) ([]string, error) {
	if val.IsNull() || !val.IsKnown() {
		return nil, nil
	}
	if val.Type() == cty.String {
		var out []string
		for _, tok := range strings.Split(val.AsString(), ",") {
			if tok = strings.TrimSpace(tok); tok != "" {
				out = append(out, tok)
			}
		}
		return out, nil
	}

	listVal, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, fmt.Errorf("cannot convert %s to a list of strings: %w", val.Type().FriendlyName(), err)
	}
	var out []string
	if err := gocty.FromCtyValue(listVal, &out); err != nil {
		return nil, err
	}
	return out, nil
}
