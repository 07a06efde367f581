package ast

import "github.com/flarelang/flare/token"

// MemoryLocationKind is the closed set of schedule memory locations.
type MemoryLocationKind uint8

const (
	MemShared MemoryLocationKind = iota
	MemGlobal
	MemLocal
	MemConstant
	MemPersistent
	MemTemporary
	MemStreaming
	MemNamed
)

func (k MemoryLocationKind) String() string {
	switch k {
	case MemShared:
		return "shared"
	case MemGlobal:
		return "global"
	case MemLocal:
		return "local"
	case MemConstant:
		return "constant"
	case MemPersistent:
		return "persistent"
	case MemTemporary:
		return "temporary"
	case MemStreaming:
		return "streaming"
	case MemNamed:
		return "named"
	default:
		return "unknown"
	}
}

// MemoryLocation is a resolved `memory(var, location)` target: one of the
// reserved location keywords, or an arbitrary identifier stored as Named.
type MemoryLocation struct {
	Kind MemoryLocationKind
	Name string // set iff Kind == MemNamed
}

// reservedMemoryLocations maps the reserved location keywords to their
// MemoryLocationKind.
var reservedMemoryLocations = map[string]MemoryLocationKind{
	"shared":     MemShared,
	"global":     MemGlobal,
	"local":      MemLocal,
	"constant":   MemConstant,
	"persistent": MemPersistent,
	"temporary":  MemTemporary,
	"streaming":  MemStreaming,
}

// ResolveMemoryLocation resolves a schedule location identifier to a
// MemoryLocation, falling back to MemNamed for non-reserved identifiers.
func ResolveMemoryLocation(ident string) MemoryLocation {
	if kind, ok := reservedMemoryLocations[ident]; ok {
		return MemoryLocation{Kind: kind}
	}
	return MemoryLocation{Kind: MemNamed, Name: ident}
}

// ReservedMemoryLocationNames returns the reserved `memory(var, location)`
// location keywords, for callers that want to offer a nearest-match
// suggestion against a MemNamed location.
func ReservedMemoryLocationNames() []string {
	names := make([]string, 0, len(reservedMemoryLocations))
	for name := range reservedMemoryLocations {
		names = append(names, name)
	}
	return names
}

// DirectiveKind is the closed set of schedule directive kinds.
type DirectiveKind uint8

const (
	DirTile DirectiveKind = iota
	DirVectorize
	DirUnroll
	DirThreads
	DirMemory
	DirStream
	DirPipeline
	DirParallel
)

// ScheduleDirective is one directive inside a schedule block. Only the
// fields relevant to Kind are populated.
type ScheduleDirective struct {
	Kind DirectiveKind

	// Tile
	TileX, TileY, TileZ Expr // Y, Z nil if absent

	// Vectorize / Unroll
	N Expr

	// Threads
	ThreadsX, ThreadsY Expr // Y nil if absent

	// Memory
	MemoryVar      string
	MemoryLocation MemoryLocation

	// Stream
	StreamName string

	// Pipeline
	Depth Expr // nil if absent

	Span token.Span
}

// ScheduleBlock is a `schedule target? { directive* }` block.
type ScheduleBlock struct {
	Target     string // empty if absent
	Directives []ScheduleDirective
	Span       token.Span
}
