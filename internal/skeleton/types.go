package skeleton

import "github.com/danmuck/spinesniff/internal/assettree"

// LoadType is the serialization encoding of a skeleton resource.
type LoadType int

const (
	LoadTextual LoadType = iota + 1
	LoadBinary
)

func (t LoadType) String() string {
	switch t {
	case LoadTextual:
		return "textual"
	case LoadBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// SchemaVersion is a supported major version of the skeleton format.
type SchemaVersion int

const (
	V2 SchemaVersion = iota + 1
	V4
)

func (v SchemaVersion) String() string {
	switch v {
	case V2:
		return "v2"
	case V4:
		return "v4"
	default:
		return "unknown"
	}
}

// Valid reports whether v is one of the supported versions.
func (v SchemaVersion) Valid() bool {
	return v == V2 || v == V4
}

// Result is the outcome of one detection. When Success is false only Err
// carries meaning.
type Result struct {
	Success    bool
	Err        error
	Atlas      assettree.Node
	Skeleton   assettree.Node
	LoadType   LoadType
	Version    SchemaVersion
	RawVersion string
}

func failed(err error) Result {
	return Result{Err: err}
}
