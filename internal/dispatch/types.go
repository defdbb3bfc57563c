package dispatch

import (
	"io"

	"github.com/danmuck/spinesniff/internal/skeleton"
)

// TextureLoader loads one atlas page for a specific runtime version.
type TextureLoader interface {
	LoadTexture(path string) (any, error)
}

// Runtime is one version-scoped animation runtime API family. Returned
// atlas and skeleton values are opaque to this package.
type Runtime interface {
	Version() skeleton.SchemaVersion
	BuildAtlas(text, basePath string, textures TextureLoader) (any, error)
	BuildSkeletonFromText(atlas any, text string) (any, error)
	BuildSkeletonFromBinary(atlas any, r io.Reader) (any, error)
}

// Loaded holds runtime objects built from one detection result.
type Loaded struct {
	Version  skeleton.SchemaVersion
	LoadType skeleton.LoadType
	Atlas    any
	Skeleton any
}
