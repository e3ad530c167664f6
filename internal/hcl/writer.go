package hcl

import (
	"strings"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/skeletongen/internal/config"
	"github.com/zclconf/go-cty/cty"
)

// DefaultFileName is the configuration file looked up in the working
// directory.
const DefaultFileName = "skeletongen.hcl"

// Writer is the HCL implementation of config.Writer.
type Writer struct{}

var _ config.Writer = Writer{}

// Write renders m as a formatted HCL document that Loader reads back into
// an equal model.
func (Writer) Write(m *config.Model) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	body.AppendUnstructuredTokens(hclwrite.Tokens{
		{Type: hclsyntax.TokenComment, Bytes: []byte("# skeletongen configuration\n")},
	})
	body.AppendNewline()

	cls := body.AppendNewBlock("class", nil).Body()
	cls.SetAttributeValue("name", cty.StringVal(m.Class.Name))
	cls.SetAttributeValue("sharing", cty.StringVal(m.Class.Sharing))
	cls.SetAttributeValue("indent", cty.NumberIntVal(int64(m.Class.Indent)))
	cls.SetAttributeValue("header", cty.StringVal(m.Class.Header))
	cls.SetAttributeValue("no_header", cty.BoolVal(m.Class.NoHeader))
	body.AppendNewline()

	lb := body.AppendNewBlock("labels", nil).Body()
	v := m.Labels
	for _, attr := range []struct {
		name   string
		tokens []string
	}{
		{"if_true", v.IfTrue},
		{"if_false", v.IfFalse},
		{"loop_body", v.LoopBody},
		{"loop_exit", v.LoopExit},
		{"try_body", v.TryBody},
		{"try_catch", v.TryCatch},
	} {
		if len(attr.tokens) == 0 {
			continue
		}
		lb.SetAttributeValue(attr.name, stringList(attr.tokens))
	}

	return hclwrite.Format(f.Bytes()), nil
}

func stringList(tokens []string) cty.Value {
	vals := make([]cty.Value, 0, len(tokens))
	for _, t := range tokens {
		vals = append(vals, cty.StringVal(strings.TrimSpace(t)))
	}
	return cty.ListVal(vals)
}
