package expr

import "github.com/dmitrymomot/deeplink/core/paramtype"

// PathParam is a required, typed placeholder in the URL path.
type PathParam struct {
	Name string
	Type paramtype.Converter
}

// QueryParam is one of Required, Optional or Literal.
type QueryParam interface {
	ParamName() string
	queryParam()
}

// Required must be present in the query and convert successfully.
type Required struct {
	Name string
	Type paramtype.Converter
}

// Optional may be absent; when present it must convert successfully.
type Optional struct {
	Name string
	Type paramtype.Converter
}

// Literal must be present with exactly the expected raw value.
type Literal struct {
	Name  string
	Value string
}

func (p Required) ParamName() string { return p.Name }
func (p Optional) ParamName() string { return p.Name }
func (p Literal) ParamName() string  { return p.Name }

func (Required) queryParam() {}
func (Optional) queryParam() {}
func (Literal) queryParam()  {}
