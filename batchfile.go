package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BatchFile is the YAML manifest accepted by `eegslice batch --config`.
// Flags override manifest values; manifest values override defaults.
//
//	source: /data/raw-eeg
//	output_dir: /data/clean-eeg
//	target_length_seconds: 60
//	target_segments: 5
//	leading_exclusion_seconds: 420
//	target_frequency: 500
//	max_files: 100
//	parallel: 4
type BatchFile struct {
	Source                  string  `yaml:"source"`
	OutputDir               string  `yaml:"output_dir"`
	TargetLengthSeconds     int     `yaml:"target_length_seconds"`
	TargetSegments          int     `yaml:"target_segments"`
	LeadingExclusionSeconds float64 `yaml:"leading_exclusion_seconds"`
	TargetFrequency         int     `yaml:"target_frequency"`
	MaxFiles                int     `yaml:"max_files"`
	Parallel                int     `yaml:"parallel"`
	Overwrite               bool    `yaml:"overwrite"`
}

// LoadBatchFile reads and decodes a batch manifest.
func LoadBatchFile(path string) (BatchFile, error) {
	var bf BatchFile

	f, err := os.Open(ExpandPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return bf, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return bf, fmt.Errorf("cannot open batch config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&bf); err != nil {
		return bf, fmt.Errorf("invalid batch config %s: %w", path, err)
	}

	return bf, nil
}
