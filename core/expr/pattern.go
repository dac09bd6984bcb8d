package expr

import "regexp"

// Pattern is the compiled form of an expression.
// Slices returned by its accessors are shared and must not be modified.
type Pattern struct {
	expression   string
	pathRegex    string
	re           *regexp.Regexp
	pathParams   []PathParam
	globalParams []Optional
	queryParams  []QueryParam
}

// Expression returns the source expression.
func (p *Pattern) Expression() string { return p.expression }

// PathRegex returns the anchored regular expression matched against URL paths.
func (p *Pattern) PathRegex() string { return p.pathRegex }

// Regexp returns PathRegex compiled.
func (p *Pattern) Regexp() *regexp.Regexp { return p.re }

// PathParams returns path parameters in left-to-right order.
func (p *Pattern) PathParams() []PathParam { return p.pathParams }

// GlobalParams returns the router-wide optional query parameters.
func (p *Pattern) GlobalParams() []Optional { return p.globalParams }

// QueryParams returns query parameters: required first, then optional, then literal.
func (p *Pattern) QueryParams() []QueryParam { return p.queryParams }

// Names returns every parameter name in validation order:
// path, global, then query.
func (p *Pattern) Names() []string {
	names := make([]string, 0, len(p.pathParams)+len(p.globalParams)+len(p.queryParams))
	for _, param := range p.pathParams {
		names = append(names, param.Name)
	}
	for _, param := range p.globalParams {
		names = append(names, param.Name)
	}
	for _, param := range p.queryParams {
		switch q := param.(type) {
		case Required:
			names = append(names, q.Name)
		case Optional:
			names = append(names, q.Name)
		case Literal:
			names = append(names, q.Name)
		}
	}
	return names
}
