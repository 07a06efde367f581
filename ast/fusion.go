package ast

import "github.com/flarelang/flare/token"

// FusionStrategy is the closed set of fusion strategies.
type FusionStrategy uint8

const (
	FusionStrategyNone FusionStrategy = iota
	FusionElementwise
	FusionInline
	FusionAuto
)

// FusionBlock is a `fuse name, ... (: strategy)? (where barriers = [...])?`
// directive. Parsed but not used by the emitter; semantics are deferred.
type FusionBlock struct {
	Targets  []string
	Strategy FusionStrategy
	Barriers []string
	Span     token.Span
}
