package domain

import "time"

// ArtifactInfo describes a trained model artifact: its format version, the
// model it holds, the fingerprint of the source data it was built from and
// when it was built.
type ArtifactInfo struct {
	Version     int       `json:"version"`
	Model       string    `json:"model"`
	Fingerprint string    `json:"fingerprint"`
	BuiltAt     time.Time `json:"built_at"`
}
