package routefile

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/deeplink"
	"github.com/dmitrymomot/deeplink/core/matcher"
	"github.com/dmitrymomot/deeplink/core/paramtype"
)

// Type kinds accepted in a route table.
const (
	KindPattern = "pattern"
	KindEnum    = "enum"
	KindUUID    = "uuid"
)

// Format of a serialised route table.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// TypeDecl declares a custom parameter type.
type TypeDecl struct {
	Name    string   `yaml:"name" json:"name"`
	Kind    string   `yaml:"kind" json:"kind"`
	Pattern string   `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Values  []string `yaml:"values,omitempty" json:"values,omitempty"`
}

// Route is one registration. Name defaults to the expression.
type Route struct {
	Name       string `yaml:"name,omitempty" json:"name,omitempty"`
	Expression string `yaml:"expression" json:"expression"`
}

// Table is a declarative router definition. Routes are registered in order.
type Table struct {
	GlobalParams []string   `yaml:"global_params,omitempty" json:"global_params,omitempty"`
	Types        []TypeDecl `yaml:"types,omitempty" json:"types,omitempty"`
	Routes       []Route    `yaml:"routes" json:"routes"`
}

// Named is the route value produced by routers built from a Table.
type Named struct {
	Name   string
	Params matcher.Params
}

// FormatOf picks the format from a file name extension.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// Parse decodes and validates a table. Unknown fields are rejected.
func Parse(data []byte, format Format) (*Table, error) {
	var t Table
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&t); err != nil && err != io.EOF {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&t); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseNamed parses data using the format implied by name.
func ParseNamed(name string, data []byte) (*Table, error) {
	format, err := FormatOf(name)
	if err != nil {
		return nil, err
	}
	return Parse(data, format)
}

// Validate checks the table shape. Expressions are checked when the router is built.
func (t *Table) Validate() error {
	for i, r := range t.Routes {
		if strings.TrimSpace(r.Expression) == "" {
			return fmt.Errorf("%w: route %d has no expression", ErrInvalidTable, i)
		}
	}
	for _, d := range t.Types {
		switch d.Kind {
		case KindPattern:
			if d.Pattern == "" {
				return fmt.Errorf("%w: type %q needs a pattern", ErrInvalidTable, d.Name)
			}
		case KindEnum:
			if len(d.Values) == 0 {
				return fmt.Errorf("%w: type %q needs values", ErrInvalidTable, d.Name)
			}
		case KindUUID:
		default:
			return fmt.Errorf("%w: %q for type %q", ErrUnknownTypeKind, d.Kind, d.Name)
		}
	}
	return nil
}

// Registry builds a type registry holding the built-ins and the declared types.
func (t *Table) Registry() (*paramtype.Registry, error) {
	custom := make([]paramtype.Type, 0, len(t.Types))
	for _, d := range t.Types {
		typ, err := d.build()
		if err != nil {
			return nil, err
		}
		custom = append(custom, typ)
	}
	return paramtype.New(custom...)
}

// Router builds a router registering every route in order.
// Each match yields a Named value; global params are passed through as a map.
func (t *Table) Router(opts ...deeplink.Option[Named, matcher.Params]) (*deeplink.Router[Named, matcher.Params], error) {
	reg, err := t.Registry()
	if err != nil {
		return nil, err
	}

	base := []deeplink.Option[Named, matcher.Params]{
		deeplink.WithTypes[Named, matcher.Params](reg),
		deeplink.WithGlobalParams[Named, matcher.Params](t.GlobalParams...),
		deeplink.WithGlobalDecoder[Named, matcher.Params](passThrough),
	}
	router, err := deeplink.New(append(base, opts...)...)
	if err != nil {
		return nil, err
	}

	for _, r := range t.Routes {
		if err := router.Register(r.Expression, named(r.name())); err != nil {
			return nil, fmt.Errorf("route %q: %w", r.name(), err)
		}
	}
	return router, nil
}

func (r Route) name() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Expression
}

func (d TypeDecl) build() (paramtype.Type, error) {
	switch d.Kind {
	case KindPattern:
		return paramtype.Pattern(d.Name, d.Pattern)
	case KindEnum:
		return paramtype.Enum(d.Name, d.Values...), nil
	case KindUUID:
		if d.Name == "" || d.Name == "uuid" {
			return paramtype.UUID(), nil
		}
		return paramtype.Func(d.Name, func(v string) (any, bool) { return paramtype.UUID().Convert(v) }), nil
	default:
		return nil, fmt.Errorf("%w: %q for type %q", ErrUnknownTypeKind, d.Kind, d.Name)
	}
}

func named(name string) deeplink.Decoder[Named] {
	return func(p matcher.Params) (Named, error) {
		return Named{Name: name, Params: p}, nil
	}
}

func passThrough(p matcher.Params) (matcher.Params, error) { return p, nil }
