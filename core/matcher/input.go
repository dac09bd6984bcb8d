package matcher

import (
	"net/url"
	"strings"
)

// Input is a URL reduced to the parts a pattern is matched against:
// the decoded path and a percent-decoded, last-value-wins query.
type Input struct {
	path  string
	query map[string]string
}

// NewInput creates an Input from a decoded path and query values.
// A single trailing slash is trimmed from any path other than "/".
func NewInput(path string, query map[string]string) Input {
	q := make(map[string]string, len(query))
	for k, v := range query {
		q[k] = v
	}
	return Input{path: normalizePath(path), query: q}
}

// FromURL creates an Input from a parsed URL.
func FromURL(u *url.URL) Input {
	return Input{path: normalizePath(u.Path), query: parseQuery(u.RawQuery)}
}

// ParseURL parses raw and creates an Input from it.
func ParseURL(raw string) (Input, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Input{}, err
	}
	return FromURL(u), nil
}

// Path returns the normalised path.
func (in Input) Path() string { return in.path }

// Query returns the value of key and whether it is present.
func (in Input) Query(key string) (string, bool) {
	v, ok := in.query[key]
	return v, ok
}

// QueryLen returns the number of distinct query keys.
func (in Input) QueryLen() int { return len(in.query) }

func normalizePath(path string) string {
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		return path[:len(path)-1]
	}
	return path
}

// parseQuery decodes "k=v" items separated by "&". Items without "=" or with
// invalid escapes are skipped; "+" is kept as is.
func parseQuery(raw string) map[string]string {
	items := make(map[string]string)
	for item := range strings.SplitSeq(raw, "&") {
		key, value, found := strings.Cut(item, "=")
		if !found {
			continue
		}
		k, err := url.PathUnescape(key)
		if err != nil {
			continue
		}
		v, err := url.PathUnescape(value)
		if err != nil {
			continue
		}
		items[k] = v
	}
	return items
}
