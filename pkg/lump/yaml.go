package lump

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// EncodeYAML writes the lump as block-style YAML. Multi-line strings such as
// the options set become literal blocks.
func (l *Lump) EncodeYAML(w io.Writer) error {
	data, err := json.Marshal(l)
	if err != nil {
		return err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("encode %s yaml: %w", l.Type, err)
	}
	resetStyle(&doc)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encode %s yaml: %w", l.Type, err)
	}
	return enc.Close()
}

func resetStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		resetStyle(c)
	}
}

// DecodeYAML reads a lump written as YAML with the same shape as the JSON
// document.
func DecodeYAML(r io.Reader) (*Lump, error) {
	var doc any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode lump yaml: %w", err)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("decode lump yaml: %w", err)
	}
	return Decode(bytes.NewReader(data))
}
