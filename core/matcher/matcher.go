package matcher

import (
	"regexp"
	"strings"

	"github.com/dmitrymomot/deeplink/core/expr"
	"github.com/dmitrymomot/deeplink/pkg/textmatch"
)

// Params maps parameter names to converted values.
type Params = map[string]any

// Match evaluates in against p and returns the combined path and query values.
func Match(in Input, p *expr.Pattern) (Params, bool) {
	pathValues, ok := matchPath(in.path, p.Regexp(), p.PathParams())
	if !ok {
		return nil, false
	}

	queryValues, ok := matchQuery(in, p.QueryParams())
	if !ok {
		return nil, false
	}

	params := make(Params, len(pathValues)+len(queryValues))
	for k, v := range pathValues {
		params[k] = v
	}
	for k, v := range queryValues {
		params[k] = v
	}
	return params, true
}

// GlobalParams converts every configured parameter present in the query.
// If any present value fails to convert the result is empty.
func GlobalParams(in Input, params []expr.Optional) Params {
	result := make(Params, len(params))
	for _, param := range params {
		raw, ok := in.query[param.Name]
		if !ok {
			continue
		}
		v, ok := param.Type.Convert(raw)
		if !ok {
			return Params{}
		}
		result[param.Name] = v
	}
	return result
}

func matchPath(path string, re *regexp.Regexp, params []expr.PathParam) (Params, bool) {
	captures := textmatch.Captures(re, path)
	if len(captures) == 0 && !strings.HasSuffix(path, "/") {
		captures = textmatch.Captures(re, path+"/")
	}
	if len(captures) != len(params) {
		return nil, false
	}

	// Patterns without named captures may still carry wildcard text.
	if len(params) == 0 {
		if re.MatchString(path) || (!strings.HasSuffix(path, "/") && re.MatchString(path+"/")) {
			return Params{}, true
		}
		return nil, false
	}

	result := make(Params, len(params))
	for i, param := range params {
		v, ok := param.Type.Convert(captures[i])
		if !ok {
			return nil, false
		}
		result[param.Name] = v
	}
	return result, true
}

func matchQuery(in Input, params []expr.QueryParam) (Params, bool) {
	result := make(Params, len(params))
	for _, param := range params {
		switch p := param.(type) {
		case expr.Required:
			raw, ok := in.query[p.Name]
			if !ok {
				return nil, false
			}
			v, ok := p.Type.Convert(raw)
			if !ok {
				return nil, false
			}
			result[p.Name] = v
		case expr.Optional:
			raw, ok := in.query[p.Name]
			if !ok {
				continue
			}
			v, ok := p.Type.Convert(raw)
			if !ok {
				return nil, false
			}
			result[p.Name] = v
		case expr.Literal:
			raw, ok := in.query[p.Name]
			if !ok || raw != p.Value {
				return nil, false
			}
			result[p.Name] = raw
		}
	}
	return result, true
}
