package plot

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// SnapshotFormat selects the encoding of a chart snapshot
type SnapshotFormat string

const (
	SnapshotJSON SnapshotFormat = "json"
	SnapshotCBOR SnapshotFormat = "cbor"
)

// CBOR snapshots start with this prefix and a version byte so they can be
// told apart from JSON ones
const (
	snapshotPrefix  byte = 0xFF
	snapshotVersion byte = 1
)

// EncodeSnapshot serialises a chart description. JSON is indented for
// reading; CBOR is deterministic so equal charts give equal bytes.
func EncodeSnapshot(chart interface{}, format SnapshotFormat) ([]byte, error) {
	switch format {
	case SnapshotJSON, "":
		b, err := json.MarshalIndent(chart, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
		}
		return b, nil

	case SnapshotCBOR:
		mode, err := cbor.CoreDetEncOptions().EncMode()
		if err != nil {
			return nil, fmt.Errorf("failed to create CBOR encoder: %w", err)
		}
		var buf bytes.Buffer
		buf.WriteByte(snapshotPrefix)
		buf.WriteByte(snapshotVersion)
		if err := mode.NewEncoder(&buf).Encode(chart); err != nil {
			return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
		}
		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("unknown snapshot format %q", format)
	}
}

// DecodeSnapshot reads a snapshot written by EncodeSnapshot in either format
func DecodeSnapshot(b []byte, dst interface{}) error {
	if len(b) < 2 || b[0] != snapshotPrefix {
		if err := json.Unmarshal(b, dst); err != nil {
			return fmt.Errorf("failed to unmarshal snapshot: %w", err)
		}
		return nil
	}

	switch b[1] {
	case snapshotVersion:
		if err := cbor.Unmarshal(b[2:], dst); err != nil {
			return fmt.Errorf("failed to unmarshal snapshot: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown snapshot version %d", b[1])
	}
}
