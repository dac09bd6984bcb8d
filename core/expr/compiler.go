package expr

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrymomot/deeplink/core/paramtype"
	"github.com/dmitrymomot/deeplink/pkg/textmatch"
)

// pathCharClass lists the characters a path capture may consist of.
const pathCharClass = `A-Za-z0-9_.\-~`

// Token grammars. Type names are alphabetic, names and literal values are word characters.
var (
	pathToken = textmatch.NewGrammar(`:(\w+)(?:\{([A-Za-z]+)\})?`)

	requiredScalar = textmatch.NewGrammar(`:(\w+)(?:\{([A-Za-z]+)\})?`)
	requiredArray  = textmatch.NewGrammar(`:(\w+)\{\[([A-Za-z]+)\]\}`)
	optionalScalar = textmatch.NewGrammar(`:(\w+)\{([A-Za-z]+)\?\}`)
	optionalArray  = textmatch.NewGrammar(`:(\w+)\{\[([A-Za-z]+)\]\?\}`)
	literalToken   = textmatch.NewGrammar(`:(\w+)\{'(\w+)'\}`)

	queryGrammars = []textmatch.Grammar{
		requiredScalar, requiredArray,
		optionalScalar, optionalArray,
		literalToken,
	}

	paramName = regexp.MustCompile(`^\w+$`)
)

// Compiler turns expressions into Patterns.
// It is immutable and safe for concurrent use.
type Compiler struct {
	types        *paramtype.Registry
	globalParams []Optional
}

// NewCompiler creates a compiler resolving types against reg.
// globalNames are optional query parameters shared by every pattern;
// they take the registry's inferred type.
func NewCompiler(reg *paramtype.Registry, globalNames ...string) (*Compiler, error) {
	if reg == nil {
		return nil, ErrNilRegistry
	}

	globals := make([]Optional, 0, len(globalNames))
	for _, name := range globalNames {
		if !paramName.MatchString(name) {
			return nil, fmt.Errorf("%w: global param %q", ErrInvalidParamName, name)
		}
		globals = append(globals, Optional{Name: name, Type: reg.Inferred()})
	}

	return &Compiler{types: reg, globalParams: globals}, nil
}

// Compile parses expression into a Pattern.
func (c *Compiler) Compile(expression string) (*Pattern, error) {
	path, query := splitExpression(expression)
	if !strings.HasPrefix(path, "/") {
		return nil, fmt.Errorf("%w: expression must start with \"/\"", ErrInvalidFormat)
	}

	pathParams, err := c.pathParams(path)
	if err != nil {
		return nil, err
	}

	queryParams, err := c.queryParams(query)
	if err != nil {
		return nil, err
	}

	pathRegex := capturedPath(path)
	re, err := regexp.Compile(pathRegex)
	if err != nil {
		return nil, fmt.Errorf("%w: path %q: %v", ErrInvalidFormat, path, err)
	}

	p := &Pattern{
		expression:   expression,
		pathRegex:    pathRegex,
		re:           re,
		pathParams:   pathParams,
		globalParams: c.globalParams,
		queryParams:  queryParams,
	}
	if err := validateNames(p.Names()); err != nil {
		return nil, err
	}

	return p, nil
}

// MustCompile is like Compile but panics on error.
func (c *Compiler) MustCompile(expression string) *Pattern {
	p, err := c.Compile(expression)
	if err != nil {
		panic(err)
	}
	return p
}

// splitExpression separates the query run at the end of expression from the path.
func splitExpression(expression string) (path, query string) {
	idx, ok := textmatch.SuffixRun(expression, '?', '&', queryGrammars...)
	if !ok {
		return expression, ""
	}
	return expression[:idx], expression[idx+1:]
}

func (c *Compiler) pathParams(path string) ([]PathParam, error) {
	tokens := textmatch.Scan(path, '/', pathToken)
	params := make([]PathParam, 0, len(tokens))
	for _, tok := range tokens {
		m := pathToken.Submatch(tok.Text)
		typ, err := c.resolve(m[1:], false)
		if err != nil {
			return nil, err
		}
		params = append(params, PathParam{Name: m[0], Type: typ})
	}
	return params, nil
}

func (c *Compiler) queryParams(query string) ([]QueryParam, error) {
	if query == "" {
		return nil, nil
	}

	var params []QueryParam

	for _, tok := range textmatch.Scan(query, '&', requiredScalar, requiredArray) {
		name, typ, err := c.typedToken(tok.Text, requiredArray, requiredScalar)
		if err != nil {
			return nil, err
		}
		params = append(params, Required{Name: name, Type: typ})
	}

	for _, tok := range textmatch.Scan(query, '&', optionalScalar, optionalArray) {
		name, typ, err := c.typedToken(tok.Text, optionalArray, optionalScalar)
		if err != nil {
			return nil, err
		}
		params = append(params, Optional{Name: name, Type: typ})
	}

	for _, tok := range textmatch.Scan(query, '&', literalToken) {
		m := literalToken.Submatch(tok.Text)
		params = append(params, Literal{Name: m[0], Value: m[1]})
	}

	return params, nil
}

// typedToken resolves a token against its array grammar first, then its scalar grammar.
func (c *Compiler) typedToken(text string, array, scalar textmatch.Grammar) (string, paramtype.Converter, error) {
	if m := array.Submatch(text); m != nil {
		typ, err := c.resolve(m[1:], true)
		return m[0], typ, err
	}
	m := scalar.Submatch(text)
	typ, err := c.resolve(m[1:], false)
	return m[0], typ, err
}

// resolve looks up an optional type name; no name means the inferred type.
func (c *Compiler) resolve(typeName []string, array bool) (paramtype.Converter, error) {
	if len(typeName) == 0 {
		return c.types.Inferred(), nil
	}

	typ, ok := c.types.Lookup(typeName[0])
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, typeName[0])
	}
	if array {
		return paramtype.Array(typ), nil
	}
	return typ, nil
}

// capturedPath builds the anchored path regex.
func capturedPath(path string) string {
	re := textmatch.ReplaceTokens(path, '/', pathToken, textmatch.CaptureGroup(pathCharClass))
	if re != "/" {
		re = strings.TrimSuffix(re, "/")
	}
	return "^" + re + "$"
}

func validateNames(names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: param name %q can only be referenced once in expression", ErrDuplicateParam, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}
