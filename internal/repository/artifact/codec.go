// Package artifact persists trained models. An artifact is a JSON envelope
// (header + payload) compressed with brotli; the header records which source
// data the model was trained on so stale artifacts can be detected.
package artifact

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/goccy/go-json"

	"github.com/kailas-cloud/careersetu/internal/domain"
)

// FormatVersion is bumped whenever a payload layout changes incompatibly.
const FormatVersion = 1

// Header describes a stored artifact.
type Header = domain.ArtifactInfo

type envelope struct {
	Header  Header          `json:"header"`
	Payload json.RawMessage `json:"payload"`
}

// Encode serializes header and payload.
func Encode(h Header, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	doc, err := json.Marshal(envelope{Header: h, Payload: raw})
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}

	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.DefaultCompression)
	if _, err := w.Write(doc); err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode reads the header and unmarshals the payload into v.
func Decode(data []byte, v any) (Header, error) {
	doc, err := io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
	if err != nil {
		return Header{}, fmt.Errorf("decompress: %w", err)
	}
	var env envelope
	if err := json.Unmarshal(doc, &env); err != nil {
		return Header{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Header.Version != FormatVersion {
		return env.Header, fmt.Errorf("unsupported artifact version %d", env.Header.Version)
	}
	if err := json.Unmarshal(env.Payload, v); err != nil {
		return env.Header, fmt.Errorf("unmarshal payload: %w", err)
	}
	return env.Header, nil
}
