// Package config loads the service configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"holescan/internal/hole"
	"holescan/internal/job"
)

// Config is the top-level holescan.yml configuration.
type Config struct {
	OutputDir   string           `yaml:"output_dir"`
	MeshQuality float64          `yaml:"mesh_quality"`
	Detection   *DetectionConfig `yaml:"detection,omitempty"`
}

// DetectionConfig overrides individual detection thresholds. Absent fields
// keep their defaults.
type DetectionConfig struct {
	RadiusMin            *float64 `yaml:"radius_min,omitempty"`
	RadiusMax            *float64 `yaml:"radius_max,omitempty"`
	GroupingDistance     *float64 `yaml:"grouping_distance,omitempty"`
	ZTolerance           *float64 `yaml:"z_tolerance,omitempty"`
	MinVerticalAlignment *float64 `yaml:"min_vertical_alignment,omitempty"`
	MinScore             *float64 `yaml:"min_score,omitempty"`
	MaxCandidates        *int     `yaml:"max_candidates,omitempty"`
	ArcMinSpan           *float64 `yaml:"arc_min_span,omitempty"`
	EdgeSamples          *int     `yaml:"edge_samples,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		OutputDir:   "output",
		MeshQuality: job.DefaultMeshQuality,
	}
}

// Load reads a config file and overlays it on the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = Default().OutputDir
	}
	if cfg.MeshQuality <= 0 {
		cfg.MeshQuality = Default().MeshQuality
	}
	return cfg, nil
}

// Params folds the detection overrides onto the default detection parameters.
func (c *Config) Params() hole.Params {
	p := hole.DefaultParams()
	d := c.Detection
	if d == nil {
		return p
	}
	if d.RadiusMin != nil {
		p.RadiusMin = *d.RadiusMin
	}
	if d.RadiusMax != nil {
		p.RadiusMax = *d.RadiusMax
	}
	if d.GroupingDistance != nil {
		p.GroupingDistance = *d.GroupingDistance
	}
	if d.ZTolerance != nil {
		p.ZTolerance = *d.ZTolerance
	}
	if d.MinVerticalAlignment != nil {
		p.MinVerticalAlignment = *d.MinVerticalAlignment
	}
	if d.MinScore != nil {
		p.MinScore = *d.MinScore
	}
	if d.MaxCandidates != nil {
		p.MaxCandidates = *d.MaxCandidates
	}
	if d.ArcMinSpan != nil {
		p.ArcMinSpan = *d.ArcMinSpan
	}
	if d.EdgeSamples != nil {
		p.EdgeSamples = *d.EdgeSamples
	}
	return p
}
