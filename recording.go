package main

import "fmt"

// Channel describes one signal channel in a recording.
type Channel struct {
	Label string `json:"label"`
	Type  string `json:"type"`
}

// RecordingInfo is the probe result for one EDF file: everything the
// selection pipeline needs without touching the signal itself.
type RecordingInfo struct {
	DurationSeconds float64      `json:"duration_seconds"`
	SampleRate      float64      `json:"sample_rate"`
	Channels        []Channel    `json:"channels"`
	Annotations     []Annotation `json:"annotations"`
}

// excludedChannels lists aux, reference, and event channels that are
// dropped before extraction. They carry no EEG signal and their labels
// vary only in casing across acquisition systems.
var excludedChannels = map[string]bool{
	"A1": true, "A2": true,
	"AUX1": true, "AUX2": true, "AUX3": true, "AUX4": true,
	"AUX5": true, "AUX6": true, "AUX7": true, "AUX8": true,
	"Cz": true, "Pz": true, "Fz": true, "Fpz": true,
	"Fp1": true, "Fp2": true,
	"DC1": true, "DC2": true, "DC3": true, "DC4": true,
	"DIF1": true, "DIF2": true, "DIF3": true, "DIF4": true,
	"PG1": true, "PG2": true,
	"X1": true, "X2": true,
	"Patient Event": true, "Trigger Event": true,
	"Photic": true, "photic": true, "phoic": true,
	"aux1": true,
}

// KeptChannels returns the channel labels that survive the exclusion
// list, in recording order.
func (r RecordingInfo) KeptChannels() []string {
	kept := make([]string, 0, len(r.Channels))
	for _, ch := range r.Channels {
		if !excludedChannels[ch.Label] {
			kept = append(kept, ch.Label)
		}
	}
	return kept
}

// hasChannel reports whether the recording carries a channel with the
// given label.
func (r RecordingInfo) hasChannel(label string) bool {
	for _, ch := range r.Channels {
		if ch.Label == label {
			return true
		}
	}
	return false
}

// ValidateChannels checks that the recording carries the channel set the
// downstream artifact-removal stage depends on: both EOG channels plus an
// ECG pair labelled either EKG or ECG. Recordings missing them are
// skipped by the batch driver rather than failed.
func (r RecordingInfo) ValidateChannels() error {
	if !r.hasChannel("EOG1") {
		return fmt.Errorf("no EOG1 channel: %w", ErrMissingChannels)
	}
	if !r.hasChannel("EKG1") && !r.hasChannel("ECG1") {
		return fmt.Errorf("no EKG1/ECG1 channel: %w", ErrMissingChannels)
	}
	return nil
}

// ChannelTypeOverrides maps ocular and cardiac channel labels to their
// signal types so the crop tool writes correct channel metadata. Only
// labels present in the recording are returned.
func (r RecordingInfo) ChannelTypeOverrides() map[string]string {
	overrides := make(map[string]string)
	for _, label := range []string{"EOG1", "EOG2"} {
		if r.hasChannel(label) {
			overrides[label] = "eog"
		}
	}
	for _, label := range []string{"EKG1", "EKG2", "ECG1", "ECG2"} {
		if r.hasChannel(label) {
			overrides[label] = "ecg"
		}
	}
	return overrides
}
