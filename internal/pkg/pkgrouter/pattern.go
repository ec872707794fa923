package pkgrouter

import (
	"strings"

	"github.com/julienschmidt/httprouter"
)

// Params are the path parameters extracted by a Pattern.
type Params = httprouter.Params

// Pattern decides whether a path belongs to a route.
type Pattern interface {
	Match(path string) (Params, bool)
	String() string
}

type prefixPattern string

// Prefix matches every path starting with p.
func Prefix(p string) Pattern {
	return prefixPattern(p)
}

func (p prefixPattern) Match(path string) (Params, bool) {
	return nil, strings.HasPrefix(path, string(p))
}

func (p prefixPattern) String() string {
	return string(p) + "*"
}

type segmentPattern struct {
	raw   string
	parts []string
}

// Segments matches paths segment by segment. A segment written as ":name"
// captures exactly one non-empty path segment under that name; every other
// segment must match literally.
//
//	Segments("/api/v1/coins/:id/details")
func Segments(p string) Pattern {
	return segmentPattern{raw: p, parts: strings.Split(p, "/")}
}

func (p segmentPattern) Match(path string) (Params, bool) {
	parts := strings.Split(path, "/")
	if len(parts) != len(p.parts) {
		return nil, false
	}

	var params Params
	for i, want := range p.parts {
		if name, ok := strings.CutPrefix(want, ":"); ok {
			if parts[i] == "" {
				return nil, false
			}
			params = append(params, httprouter.Param{Key: name, Value: parts[i]})
			continue
		}
		if parts[i] != want {
			return nil, false
		}
	}

	return params, true
}

func (p segmentPattern) String() string {
	return p.raw
}
