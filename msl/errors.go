// Package msl converts a Flare AST into Metal Shading Language source text.
package msl

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/flarelang/flare/token"
)

// ErrorKind is the closed set of codegen error variants.
type ErrorKind uint8

const (
	UnsupportedType ErrorKind = iota
	UnsupportedFeature
	InvalidKernelConfig
	InvalidScheduleDirective
	InvalidMemoryConfig
	ExpressionError
	StatementError
	InvalidIdentifier
	ResourceLimitExceeded
	InternalError
	FormatError
)

func (k ErrorKind) String() string {
	switch k {
	case UnsupportedType:
		return "unsupported type"
	case UnsupportedFeature:
		return "unsupported feature"
	case InvalidKernelConfig:
		return "invalid kernel config"
	case InvalidScheduleDirective:
		return "invalid schedule directive"
	case InvalidMemoryConfig:
		return "invalid memory config"
	case ExpressionError:
		return "expression error"
	case StatementError:
		return "statement error"
	case InvalidIdentifier:
		return "invalid identifier"
	case ResourceLimitExceeded:
		return "resource limit exceeded"
	case InternalError:
		return "internal error"
	case FormatError:
		return "format error"
	default:
		return "unknown error"
	}
}

// Error is a codegen error. Every kind except FormatError carries a span.
type Error struct {
	Kind       ErrorKind
	Message    string
	Name       string // set for InvalidIdentifier
	Reason     string // set for InvalidIdentifier
	Feature    string // set for UnsupportedFeature
	Suggestion string // best-effort "did you mean" hint
	Span       token.Span
	HasSpan    bool
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Feature
	}
	if e.Suggestion != "" {
		return fmt.Sprintf("%s: %s (did you mean %q?)", e.Kind, msg, e.Suggestion)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func newError(kind ErrorKind, span token.Span, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Span: span, HasSpan: true}
}

func unsupportedTypeErr(span token.Span, name string, allowlist []string, format string, args ...any) *Error {
	e := newError(UnsupportedType, span, format, args...)
	if name != "" {
		e.Suggestion = suggest(name, allowlist)
	}
	return e
}

// permittedExpressionKinds names the expression forms the kernel emitter
// accepts, used to offer a "did you mean" hint when a rejected expression's
// feature name is close to one of them (e.g. a caller writing a string where
// an identifier shaped like `thread_idx` was meant).
var permittedExpressionKinds = []string{
	"identifier", "binary expression", "unary expression", "call expression",
	"member access", "index expression", "cast expression", "thread index",
	"block index", "block dimension", "array literal", "assignment",
}

func unsupportedFeatureErr(span token.Span, feature, hint string) *Error {
	e := &Error{Kind: UnsupportedFeature, Feature: feature, Message: hint, Span: span, HasSpan: true}
	e.Suggestion = suggest(feature, permittedExpressionKinds)
	return e
}

func invalidIdentifierErr(span token.Span, name, reason string, known []string) *Error {
	e := &Error{Kind: InvalidIdentifier, Name: name, Reason: reason, Span: span, HasSpan: true}
	e.Suggestion = suggest(name, known)
	return e
}

// suggest returns the closest known name to name by edit distance, or "" if
// the candidate list is empty or nothing is reasonably close. Candidates that
// contain name's characters in order (fuzzy.RankFind) are preferred; failing
// those, the candidate with the smallest edit distance is used if that
// distance is at most 2.
func suggest(name string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	ranks := fuzzy.RankFind(name, candidates)
	if len(ranks) == 0 {
		const maxDistance = 2
		best, bestDist := "", maxDistance+1
		for _, c := range candidates {
			if d := fuzzy.LevenshteinDistance(name, c); d < bestDist {
				best, bestDist = c, d
			}
		}
		return best
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
