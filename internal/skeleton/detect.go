package skeleton

import (
	"strings"

	"github.com/danmuck/spinesniff/internal/assettree"
	"github.com/danmuck/spinesniff/internal/observability"
	"github.com/rs/zerolog"
)

// Config holds the naming convention and limits used by a Detector.
type Config struct {
	AtlasSuffix  string
	TextSuffix   string
	BinarySuffix string
	MaxAliasHops int
	Metrics      bool
}

// DefaultConfig returns the conventional suffixes (.atlas, .json, .skel).
func DefaultConfig() Config {
	return Config{
		AtlasSuffix:  ".atlas",
		TextSuffix:   ".json",
		BinarySuffix: ".skel",
		MaxAliasHops: 16,
		Metrics:      true,
	}
}

// Detector classifies atlas/skeleton resource pairs.
type Detector struct {
	cfg    Config
	logger zerolog.Logger
}

func NewDetector(cfg Config, logger zerolog.Logger) *Detector {
	return &Detector{cfg: cfg, logger: logger}
}

// Config returns the detector configuration.
func (d *Detector) Config() Config {
	return d.cfg
}

// Detect runs the ordered checks against atlas. The first failing check
// determines Result.Err.
func (d *Detector) Detect(atlas assettree.Node) Result {
	res := d.detect(atlas)
	d.report(atlas, res)
	return res
}

func (d *Detector) detect(atlas assettree.Node) Result {
	if atlas == nil || atlas.Parent() == nil {
		return failed(failf(ErrMissingNode, "atlas=%q", nodeName(atlas)))
	}

	name := atlas.Name()
	if !strings.HasSuffix(name, d.cfg.AtlasSuffix) {
		return failed(failf(ErrMissingSuffix, "%q does not end in %q", name, d.cfg.AtlasSuffix))
	}
	base := strings.TrimSuffix(name, d.cfg.AtlasSuffix)

	companion, loadType := d.companion(atlas, base)
	if companion == nil {
		return failed(failf(ErrMissingCompanion, "base=%q", base))
	}

	resolvedAtlas, ok := assettree.Resolve(atlas, d.cfg.MaxAliasHops)
	if !ok {
		return failed(failf(ErrAliasResolution, "atlas %q", name))
	}
	resolvedSkel, ok := assettree.Resolve(companion, d.cfg.MaxAliasHops)
	if !ok {
		return failed(failf(ErrAliasResolution, "companion %q", companion.Name()))
	}

	if _, ok := resolvedAtlas.Value().(assettree.Text); !ok {
		return failed(failf(ErrWrongValueKind, "atlas %q holds %s",
			resolvedAtlas.Name(), assettree.KindOf(resolvedAtlas.Value())))
	}

	raw, ok := d.extractVersion(resolvedSkel.Value(), loadType)
	if !ok {
		return failed(failf(ErrVersionNotFound, "load_type=%s companion=%q", loadType, resolvedSkel.Name()))
	}

	version, err := Classify(raw)
	if err != nil {
		return failed(err)
	}

	return Result{
		Success:    true,
		Atlas:      resolvedAtlas,
		Skeleton:   resolvedSkel,
		LoadType:   loadType,
		Version:    version,
		RawVersion: raw,
	}
}

// companion looks up base+TextSuffix, then base, then base+BinarySuffix.
func (d *Detector) companion(atlas assettree.Node, base string) (assettree.Node, LoadType) {
	if n := atlas.Sibling(base + d.cfg.TextSuffix); n != nil {
		return n, LoadTextual
	}
	if n := atlas.Sibling(base); n != nil {
		return n, LoadBinary
	}
	if n := atlas.Sibling(base + d.cfg.BinarySuffix); n != nil {
		return n, LoadBinary
	}
	return nil, 0
}

func (d *Detector) extractVersion(v assettree.Value, loadType LoadType) (string, bool) {
	switch loadType {
	case LoadTextual:
		text, ok := v.(assettree.Text)
		if !ok {
			return "", false
		}
		return TextVersion(string(text))
	case LoadBinary:
		blob, ok := v.(assettree.Blob)
		if !ok {
			return "", false
		}
		probe, found := SniffBinary(blob.Stream, blob.Offset, blob.Length)
		if d.cfg.Metrics {
			observability.RecordBinaryProbe(probe.Layout.String(), found)
		}
		if found {
			d.logger.Trace().
				Str("layout", probe.Layout.String()).
				Str("version", probe.Version).
				Msg("binary header matched")
		}
		return probe.Version, found
	default:
		return "", false
	}
}

func (d *Detector) report(atlas assettree.Node, res Result) {
	if d.cfg.Metrics {
		observability.RecordDetection(res.LoadType.String(), res.Version.String(), Reason(res.Err))
	}
	if !res.Success {
		d.logger.Debug().
			Str("atlas", nodeName(atlas)).
			Str("reason", Reason(res.Err)).
			Err(res.Err).
			Msg("skeleton detection failed")
		return
	}
	d.logger.Debug().
		Str("atlas", nodeName(atlas)).
		Str("load_type", res.LoadType.String()).
		Str("version", res.Version.String()).
		Str("raw_version", res.RawVersion).
		Msg("skeleton detected")
}

func nodeName(n assettree.Node) string {
	if n == nil {
		return ""
	}
	return n.Name()
}
