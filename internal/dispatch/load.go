package dispatch

import (
	"errors"
	"fmt"
	"io"

	"github.com/danmuck/spinesniff/internal/assettree"
	"github.com/danmuck/spinesniff/internal/observability"
	"github.com/danmuck/spinesniff/internal/skeleton"
	"github.com/rs/zerolog"
)

var (
	ErrNotDetected     = errors.New("dispatch: detection result is not successful")
	ErrRuntimeMissing  = errors.New("dispatch: no runtime for version")
	ErrUnexpectedValue = errors.New("dispatch: unexpected node value")
	ErrBuildFailed     = errors.New("dispatch: runtime build failed")
)

// Dispatcher builds runtime objects for detection results.
type Dispatcher struct {
	registry *Registry
	logger   zerolog.Logger
	metrics  bool
}

func NewDispatcher(registry *Registry, logger zerolog.Logger, metrics bool) *Dispatcher {
	return &Dispatcher{registry: registry, logger: logger, metrics: metrics}
}

// Load builds the atlas and skeleton for res with the runtime registered
// for res.Version. Any mismatch or runtime error yields (Loaded{}, false).
func (d *Dispatcher) Load(res skeleton.Result, textures TextureLoader) (Loaded, bool) {
	loaded, err := d.load(res, textures)
	if d.metrics {
		observability.RecordDispatch(res.Version.String(), res.LoadType.String(), err == nil)
	}
	if err != nil {
		d.logger.Debug().
			Str("version", res.Version.String()).
			Str("load_type", res.LoadType.String()).
			Err(err).
			Msg("skeleton load skipped")
		return Loaded{}, false
	}
	return loaded, true
}

func (d *Dispatcher) load(res skeleton.Result, textures TextureLoader) (Loaded, error) {
	if !res.Success || res.Atlas == nil || res.Skeleton == nil {
		return Loaded{}, ErrNotDetected
	}
	rt, ok := d.registry.Resolve(res.Version)
	if !ok {
		return Loaded{}, fmt.Errorf("%w: %s", ErrRuntimeMissing, res.Version)
	}

	atlasText, ok := res.Atlas.Value().(assettree.Text)
	if !ok {
		return Loaded{}, fmt.Errorf("%w: atlas holds %s", ErrUnexpectedValue, assettree.KindOf(res.Atlas.Value()))
	}
	build, err := skeletonBuilder(rt, res)
	if err != nil {
		return Loaded{}, err
	}

	atlas, err := rt.BuildAtlas(string(atlasText), basePath(res.Atlas), textures)
	if err != nil {
		return Loaded{}, fmt.Errorf("%w: atlas: %v", ErrBuildFailed, err)
	}
	skel, err := build(atlas)
	if err != nil {
		return Loaded{}, fmt.Errorf("%w: skeleton: %v", ErrBuildFailed, err)
	}
	return Loaded{Version: res.Version, LoadType: res.LoadType, Atlas: atlas, Skeleton: skel}, nil
}

// skeletonBuilder checks the skeleton node value against the load type
// before any runtime object is built.
func skeletonBuilder(rt Runtime, res skeleton.Result) (func(atlas any) (any, error), error) {
	v := res.Skeleton.Value()
	switch res.LoadType {
	case skeleton.LoadTextual:
		text, ok := v.(assettree.Text)
		if !ok {
			break
		}
		return func(atlas any) (any, error) {
			return rt.BuildSkeletonFromText(atlas, string(text))
		}, nil
	case skeleton.LoadBinary:
		blob, ok := v.(assettree.Blob)
		if !ok || blob.Stream == nil {
			break
		}
		return func(atlas any) (any, error) {
			return buildFromBlob(rt, atlas, blob)
		}, nil
	}
	return nil, fmt.Errorf("%w: %s skeleton holds %s", ErrUnexpectedValue, res.LoadType, assettree.KindOf(v))
}

// buildFromBlob hands the runtime a bounded view of the blob and restores
// the shared stream position afterwards.
func buildFromBlob(rt Runtime, atlas any, blob assettree.Blob) (any, error) {
	origin, err := blob.Stream.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	defer func() {
		_, _ = blob.Stream.Seek(origin, io.SeekStart)
	}()
	if _, err := blob.Stream.Seek(blob.Offset, io.SeekStart); err != nil {
		return nil, err
	}
	return rt.BuildSkeletonFromBinary(atlas, io.LimitReader(blob.Stream, blob.Length))
}

func basePath(atlas assettree.Node) string {
	parent := atlas.Parent()
	if parent == nil {
		return ""
	}
	return assettree.Path(parent)
}
