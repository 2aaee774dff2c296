package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a catalog document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// FormatFor picks the document format from a path or URL extension.
// Anything that is not .yaml/.yml is treated as JSON.
func FormatFor(location string) Format {
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		location = location[:i]
	}
	switch strings.ToLower(path.Ext(location)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// entry is one key/value pair of an object whose key order matters.
type entry[T any] struct {
	Key   string
	Value T
}

// ordered decodes a JSON object or YAML mapping while keeping declaration order.
type ordered[T any] []entry[T]

func (o *ordered[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected an object, got %s", describeJSONToken(tok))
	}
	seen := make(map[string]bool)
	var out ordered[T]
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected an object key, got %s", describeJSONToken(tok))
		}
		if seen[key] {
			return fmt.Errorf("duplicate key %q", key)
		}
		seen[key] = true
		var value T
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		out = append(out, entry[T]{Key: key, Value: value})
	}
	*o = out
	return nil
}

func (o *ordered[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*o = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	seen := make(map[string]bool)
	var out ordered[T]
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		key := keyNode.Value
		if seen[key] {
			return fmt.Errorf("line %d: duplicate key %q", keyNode.Line, key)
		}
		seen[key] = true
		var value T
		if err := valueNode.Decode(&value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		out = append(out, entry[T]{Key: key, Value: value})
	}
	*o = out
	return nil
}

func describeJSONToken(tok json.Token) string {
	switch v := tok.(type) {
	case json.Delim:
		return fmt.Sprintf("%q", v.String())
	case string:
		return "a string"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// verbDocument is the raw verb index: verb -> ordered nouns.
type verbDocument struct {
	Verbs *ordered[[]string] `json:"verbs" yaml:"verbs"`
}

// schemaDocument is the raw parameter schema: cmdlet -> schema.
type schemaDocument struct {
	Cmdlets *ordered[cmdletDocument] `json:"cmdlets" yaml:"cmdlets"`
}

type cmdletDocument struct {
	Description string                     `json:"description" yaml:"description"`
	Category    string                     `json:"category" yaml:"category"`
	Parameters  ordered[parameterDocument] `json:"parameters" yaml:"parameters"`
}

type parameterDocument struct {
	Type        string `json:"type" yaml:"type"`
	Placeholder string `json:"placeholder" yaml:"placeholder"`
	Description string `json:"description" yaml:"description"`
}

func decodeDocument(data []byte, format Format, into any) error {
	switch format {
	case FormatYAML:
		return yaml.Unmarshal(data, into)
	default:
		return json.Unmarshal(data, into)
	}
}

func decodeVerbIndex(data []byte, format Format) (verbDocument, error) {
	var doc verbDocument
	if err := decodeDocument(data, format, &doc); err != nil {
		return verbDocument{}, fmt.Errorf("decode verb index (%s): %w", format, err)
	}
	return doc, nil
}

func decodeSchemas(data []byte, format Format) (schemaDocument, error) {
	var doc schemaDocument
	if err := decodeDocument(data, format, &doc); err != nil {
		return schemaDocument{}, fmt.Errorf("decode parameter schema (%s): %w", format, err)
	}
	return doc, nil
}
