// ABOUTME: Export encoders for the snapshot document.
// ABOUTME: JSON is the importable backup format; YAML is a readable rendering of it.
package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/mtbmaint/internal/models"
	"gopkg.in/yaml.v3"
)

// EncodeJSON renders the snapshot as two-space indented JSON.
func EncodeJSON(snap *models.Snapshot) ([]byte, error) {
	compact, err := snap.Encode()
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, fmt.Errorf("indent snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeYAML renders the snapshot as block-style YAML with the same keys,
// in the same order, as the JSON document.
func EncodeYAML(snap *models.Snapshot) ([]byte, error) {
	compact, err := snap.Encode()
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}

	// JSON is valid YAML; decoding into a node keeps key order and extras.
	var doc yaml.Node
	if err := yaml.Unmarshal(compact, &doc); err != nil {
		return nil, fmt.Errorf("convert snapshot: %w", err)
	}
	blockStyle(&doc)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// BackupFilename names an export written on the given day.
func BackupFilename(now time.Time) string {
	return fmt.Sprintf("mtbmaint-backup-%s.json", now.Format(models.DateLayout))
}
