package config

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

var groupDocs = map[string]string{
	"layout":      "label size and placement on the A4 page",
	"fonts":       "font sizes; honorific defaults to name - 2",
	"spacing":     "vertical advances and offsets inside an address section",
	"postal_box":  "postal code digit boxes (3 + 4)",
	"address":     "address wrapping",
	"dotted_line": "dashed fill-in rules",
	"sama":        "space reserved for the honorific after the name",
	"border":      "label outline",
	"phone":       "phone number placement",
}

// Template renders cfg as YAML with every field annotated with its unit and
// allowed range
func Template(cfg *Config) ([]byte, error) {
	var root yaml.Node
	if err := root.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding layout: %w", err)
	}
	annotate(&root, reflect.TypeOf(*cfg), true)

	var buf bytes.Buffer
	buf.WriteString("# letterpack label layout\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&root); err != nil {
		return nil, fmt.Errorf("writing layout: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func annotate(node *yaml.Node, t reflect.Type, top bool) {
	if node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		field, ok := fieldByYAMLName(t, key.Value)
		if !ok {
			continue
		}
		if top {
			if doc, ok := groupDocs[key.Value]; ok {
				key.HeadComment = "# " + doc
			}
		}
		if value.Kind == yaml.MappingNode {
			ft := field.Type
			if ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			annotate(value, ft, false)
			continue
		}
		if c := fieldComment(field); c != "" {
			value.LineComment = "# " + c
		}
	}
}

func fieldByYAMLName(t reflect.Type, name string) (reflect.StructField, bool) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0] == name {
			return f, true
		}
	}
	return reflect.StructField{}, false
}

func fieldComment(f reflect.StructField) string {
	var parts []string
	if unit := f.Tag.Get("unit"); unit != "" {
		parts = append(parts, unit)
	}
	if rules := f.Tag.Get("validate"); rules != "" {
		rules = strings.TrimPrefix(rules, "omitempty,")
		parts = append(parts, strings.ReplaceAll(rules, ",", " "))
	}
	return strings.Join(parts, ", ")
}
