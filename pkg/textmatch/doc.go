// Package textmatch provides the text scanning helpers behind expression
// compilation: delimiter-bounded token scans, suffix-run location and
// capture-group synthesis on top of the standard regexp package.
//
// RE2 has no lookaround, so tokens are always located as whole pieces between
// delimiters and matched against a fully anchored Grammar.
package textmatch
