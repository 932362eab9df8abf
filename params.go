package sproc

import (
	"regexp"
)

// TokenField is the anti-forgery field stripped from request parameters.
const TokenField = "_token"

// Request is a request payload which can list its field names in order.
type Request interface {
	FieldNamesExcluding(names ...string) []string
}

type paramsKind int

const (
	rawParams paramsKind = iota
	namedParams
)

// Parameters are the placeholders of a stored procedure call. Build them
// with Named or Raw.
type Parameters struct {
	kind   paramsKind
	tokens []string
}

// Named derives a named placeholder `:field` for every field of req except
// TokenField. Field order is the request's order.
func Named(req Request) Parameters {
	p := Parameters{kind: namedParams}
	if req == nil {
		return p
	}
	for _, name := range req.FieldNamesExcluding(TokenField) {
		p.tokens = append(p.tokens, ":"+name)
	}
	return p
}

// Raw uses tokens as placeholders verbatim, e.g. Raw("?", "?") or literal
// values prepared by the caller.
func Raw(tokens ...string) Parameters {
	return Parameters{kind: rawParams, tokens: tokens}
}

// IsNamed returns true if parameters were derived from a request.
func (p Parameters) IsNamed() bool {
	return p.kind == namedParams
}

// Tokens returns the individual placeholders.
func (p Parameters) Tokens() []string {
	return p.tokens
}

// Placeholders returns the comma separated placeholder list.
func (p Parameters) Placeholders() string {
	return bufPool.Join(p.tokens, ", ")
}

var (
	reQuoted = regexp.MustCompile(`'(?:[^']|'')*'|"(?:[^"]|"")*"`)
	reMarker = regexp.MustCompile(`\?|\$\d+|@p\d+|:\d+`)
)

// bindCount is the number of values the placeholders expect. Named fields
// each take one value. Raw tokens count the positional markers they contain
// outside quoted literals; a numbered marker counts once however often it
// is repeated.
func (p Parameters) bindCount() int {
	if p.kind == namedParams {
		return len(p.tokens)
	}
	n := 0
	numbered := map[string]bool{}
	for _, token := range p.tokens {
		bare := reQuoted.ReplaceAllString(token, "''")
		for _, marker := range reMarker.FindAllString(bare, -1) {
			if marker == "?" {
				n++
			} else if !numbered[marker] {
				numbered[marker] = true
				n++
			}
		}
	}
	return n
}
