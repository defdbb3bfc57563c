// Package spinesniff classifies atlas/skeleton resource pairs of an asset
// tree and hands them to the runtime registered for their schema version.
package spinesniff

import (
	"github.com/danmuck/spinesniff/internal/assettree"
	"github.com/danmuck/spinesniff/internal/config"
	"github.com/danmuck/spinesniff/internal/dispatch"
	"github.com/danmuck/spinesniff/internal/logging"
	"github.com/danmuck/spinesniff/internal/skeleton"
	"github.com/rs/zerolog"
)

type (
	Node          = assettree.Node
	Aliaser       = assettree.Aliaser
	Value         = assettree.Value
	Text          = assettree.Text
	Blob          = assettree.Blob
	Other         = assettree.Other
	Result        = skeleton.Result
	LoadType      = skeleton.LoadType
	SchemaVersion = skeleton.SchemaVersion
	Runtime       = dispatch.Runtime
	TextureLoader = dispatch.TextureLoader
	Loaded        = dispatch.Loaded
	Config        = config.Config
)

const (
	LoadTextual = skeleton.LoadTextual
	LoadBinary  = skeleton.LoadBinary
	V2          = skeleton.V2
	V4          = skeleton.V4
)

// Sniffer pairs a detector with the runtimes it dispatches to.
type Sniffer struct {
	detector   *skeleton.Detector
	dispatcher *dispatch.Dispatcher
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return config.Default()
}

// LoadConfig reads a TOML configuration file.
func LoadConfig(path string) (Config, error) {
	return config.Load(path)
}

// New builds a Sniffer from cfg and registers runtimes by their version.
func New(cfg Config, runtimes ...Runtime) (*Sniffer, error) {
	return NewWithLogger(cfg, logging.New(cfg.Logging), runtimes...)
}

// NewWithLogger is New with a caller supplied logger.
func NewWithLogger(cfg Config, logger zerolog.Logger, runtimes ...Runtime) (*Sniffer, error) {
	if err := config.ValidateDetector(cfg.Detector); err != nil {
		return nil, err
	}
	registry := dispatch.NewRegistry()
	for _, rt := range runtimes {
		if err := registry.Register(rt); err != nil {
			return nil, err
		}
	}
	logger = logger.With().Str("component", "spinesniff").Logger()
	return &Sniffer{
		detector:   skeleton.NewDetector(cfg.Detector, logger),
		dispatcher: dispatch.NewDispatcher(registry, logger, cfg.Detector.Metrics),
	}, nil
}

// Detect classifies the skeleton resource paired with atlas.
func (s *Sniffer) Detect(atlas Node) Result {
	return s.detector.Detect(atlas)
}

// Load detects atlas and builds runtime objects on success. The detection
// result is returned even when loading is skipped.
func (s *Sniffer) Load(atlas Node, textures TextureLoader) (Loaded, Result, bool) {
	res := s.detector.Detect(atlas)
	loaded, ok := s.dispatcher.Load(res, textures)
	return loaded, res, ok
}
