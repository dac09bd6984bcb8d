// Package matcher evaluates URLs against compiled expr.Patterns.
//
// Match returns a flat map of converted parameter values, or false when the
// URL does not satisfy the pattern. A failed conversion, a missing required
// parameter or an unexpected literal are all plain non-matches, never errors.
//
// GlobalParams resolves the router-wide optional parameters independently of
// any pattern: every configured name present in the query is converted, and a
// single failed conversion empties the whole map.
//
// URLs are normalised into an Input once per request:
//
//	in, err := matcher.ParseURL("https://example.com/newsfeed/42?unsub=yes")
//	if err != nil {
//		return err
//	}
//	params, ok := matcher.Match(in, pattern)
package matcher
