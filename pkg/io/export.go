package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/citygraph/pkg/citygraph"
)

// WriteJSON encodes g in the dataset format and writes it to w.
//
// Every road is listed under both endpoints, like the upstream builder
// writes it, so the output can be fed straight back to [ReadJSON]. Cities
// and neighbours keep the graph's insertion order.
func WriteJSON(g *citygraph.Graph, w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString("{")

	buf.WriteString(`"` + keyCities + `":{`)
	for i, c := range g.Cities() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, c.Name, map[string]string{keyCountry: c.Country}); err != nil {
			return err
		}
	}
	buf.WriteString("},")

	buf.WriteString(`"` + keyAdjacency + `":{`)
	for i, adj := range g.Adjacency() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(&buf, adj.City); err != nil {
			return err
		}
		buf.WriteByte('{')
		for j, n := range adj.Neighbors {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeMember(&buf, n.City, n.Distance); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteString("}}")

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	out.WriteByte('\n')
	_, err := w.Write(out.Bytes())
	return err
}

// ExportJSON writes g to a dataset file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *citygraph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeKey(buf *bytes.Buffer, key string) error {
	k, err := json.Marshal(key)
	if err != nil {
		return fmt.Errorf("encode key %q: %w", key, err)
	}
	buf.Write(k)
	buf.WriteByte(':')
	return nil
}

func writeMember(buf *bytes.Buffer, key string, value any) error {
	if err := writeKey(buf, key); err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	buf.Write(v)
	return nil
}
