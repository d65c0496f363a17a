package gen

import (
	"bytes"
	"go/format"
	"strconv"
	"strings"
	"text/template"

	"github.com/cockroachdb/errors"

	"schema-generator/internal/ident"
	"schema-generator/node"
	"schema-generator/primitive"
)

// fileData is the top-level template payload for one generated source file.
type fileData struct {
	Source  string
	Package string
	Classes []classData
	Root    rootData
}

// classData describes one emitted struct declaration.
type classData struct {
	Name            string
	NeedsAdjustment bool
	Fields          []fieldData
}

// fieldData describes one struct field.
type fieldData struct {
	Name    string
	Type    string
	Tag     string
	Comment string
}

// rootData carries what the accessor functions need.
type rootData struct {
	Class    string
	Defaults []defaultData
}

// defaultData is a single pre-populated default assignment inside the
// Load accessor. Path is relative to the root value.
type defaultData struct {
	Path    string
	Literal string
}

var fileTemplate = template.Must(template.New("schemaFile").Parse(`// Code generated by schema-generator from {{.Source}}. DO NOT EDIT.

package {{.Package}}

import (
	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"

	"schema-generator/adapter"
)
{{range .Classes}}
{{- if .NeedsAdjustment}}
// TODO adjust the generated type name
{{- end}}
type {{.Name}} struct {
{{- range .Fields}}
	{{.Name}} {{.Type}} ` + "`" + `json:"{{.Tag}}" yaml:"{{.Tag}}"` + "`" + `{{if .Comment}} {{.Comment}}{{end}}
{{- end}}
}
{{end}}
// Load{{.Root.Class}} builds a {{.Root.Class}} from a decoded configuration
// mapping. Keys absent from the mapping keep the defaults observed in the
// source file.
func Load{{.Root.Class}}(raw map[string]any) ({{.Root.Class}}, error) {
	var out {{.Root.Class}}
{{- range .Root.Defaults}}
	out.{{.Path}} = {{.Literal}}
{{- end}}

	buf, err := json.Marshal(raw)
	if err != nil {
		return out, errors.Wrap(err, "encoding configuration mapping")
	}

	if err := json.Unmarshal(buf, &out); err != nil {
		return out, errors.Wrap(err, "decoding configuration mapping")
	}

	return out, nil
}

// Load{{.Root.Class}}FromFile reads path with the matching format adapter and
// decodes it into a {{.Root.Class}}.
func Load{{.Root.Class}}FromFile(path string) ({{.Root.Class}}, error) {
	raw, err := adapter.FileToMap(path)
	if err != nil {
		var zero {{.Root.Class}}

		return zero, errors.Wrapf(err, "loading %s", path)
	}

	return Load{{.Root.Class}}(raw)
}
`))

// Generate renders the struct declarations and accessor functions for the
// schema rooted at root. The output is gofmt-formatted; when formatting
// fails the unformatted source is returned alongside the error so the
// caller can inspect it.
func Generate(root *node.Node, pkg, source string) ([]byte, error) {
	data := fileData{
		Source:  source,
		Package: pkg,
		Classes: collectClasses(root),
		Root: rootData{
			Class:    root.Type(),
			Defaults: collectDefaults(root, ""),
		},
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "executing template")
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return buf.Bytes(), errors.Wrap(err, "formatting code")
	}

	return formatted, nil
}

// collectClasses walks the tree in declaration order: the root struct comes
// first, nested structs follow in field order. Nodes that adopted another
// node's type do not produce a second declaration.
func collectClasses(root *node.Node) []classData {
	var classes []classData

	var walk func(n *node.Node)
	walk = func(n *node.Node) {
		if n.Kind() == node.KindValue && !n.IsDuplicate {
			classes = append(classes, classData{
				Name:            n.Type(),
				NeedsAdjustment: n.NeedsAdjustment,
				Fields:          collectFields(n),
			})
		}

		if n.IsDuplicate {
			return
		}

		for _, child := range n.Children {
			// Lists are descended for composite elements, including
			// elements of nested lists.
			if child.IsComposite() || child.Kind() == node.KindList {
				walk(child)
			}
		}
	}
	walk(root)

	return classes
}

func collectFields(n *node.Node) []fieldData {
	fields := make([]fieldData, 0, len(n.Children))

	for _, child := range n.Children {
		tag := child.Name
		if child.OriginalName != "" {
			tag = child.OriginalName
		}

		fields = append(fields, fieldData{
			Name:    ident.ClassName(child.Name),
			Type:    goType(child.Type()),
			Tag:     tag,
			Comment: fieldComment(child.Type()),
		})
	}

	return fields
}

// collectDefaults gathers the sample values recorded on primitive leaves.
// Values inside lists have no stable field path and are skipped, as are
// untyped leaves.
func collectDefaults(n *node.Node, prefix string) []defaultData {
	var defaults []defaultData

	for _, child := range n.Children {
		path := ident.ClassName(child.Name)
		if prefix != "" {
			path = prefix + "." + path
		}

		switch {
		case child.Kind() == node.KindList:
			continue
		case child.IsComposite():
			defaults = append(defaults, collectDefaults(child, path)...)
		case child.Default != nil && child.Type() != primitive.KindAny.Name():
			lit := goLiteral(child.Default)
			if lit == "" {
				continue
			}

			defaults = append(defaults, defaultData{Path: path, Literal: lit})
		}
	}

	return defaults
}

// goType maps an internal type expression to the Go type used in the
// generated struct. Union element types collapse to []any; the members are
// reported through fieldComment instead.
func goType(t string) string {
	switch {
	case t == "list":
		return "[]any"
	case strings.HasPrefix(t, "list<Union["):
		return "[]any"
	case strings.HasPrefix(t, "list<"):
		inner := strings.TrimSuffix(strings.TrimPrefix(t, "list<"), ">")

		return "[]" + goType(inner)
	default:
		return t
	}
}

func fieldComment(t string) string {
	switch {
	case t == primitive.KindAny.Name():
		return "// TODO please specify the type"
	case strings.HasPrefix(t, "list<Union["):
		members := strings.TrimSuffix(strings.TrimPrefix(t, "list<Union["), "]>")

		return "// accepts " + members
	default:
		return ""
	}
}

func goLiteral(v any) string {
	switch x := v.(type) {
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return strconv.Quote(x)
	default:
		return ""
	}
}
