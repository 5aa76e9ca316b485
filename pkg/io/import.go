package io

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/matzehuels/citygraph/pkg/citygraph"
	cgerrors "github.com/matzehuels/citygraph/pkg/errors"
)

// Top-level keys of the dataset format.
const (
	keyCities    = "cities"
	keyAdjacency = "adjacency_list"
	keyCountry   = "country"
)

// Dataset is the decoded input file with document order preserved.
type Dataset struct {
	Cities    []citygraph.City
	Adjacency []citygraph.Adjacency
}

// Graph builds the city graph described by the dataset.
// See [citygraph.Build] for the deduplication rule.
func (d *Dataset) Graph() (*citygraph.Graph, error) {
	g, err := citygraph.Build(d.Cities, d.Adjacency)
	if errors.Is(err, citygraph.ErrUnknownCity) {
		return nil, cgerrors.Wrap(cgerrors.ErrCodeUnknownCity, err, "adjacency list references a city missing from %q", keyCities)
	}
	if err != nil {
		return nil, cgerrors.Wrap(cgerrors.ErrCodeInvalidInput, err, "build graph")
	}
	return g, nil
}

// ReadJSON decodes a dataset from r.
//
// The input must be a JSON object of the form:
//
//	{
//	  "cities": {"Paris": {"country": "France"}, ...},
//	  "adjacency_list": {"Paris": {"Lyon": 465, ...}, ...}
//	}
//
// Key order inside "cities" and "adjacency_list" is preserved, so the
// first-listed direction of each road is the one [citygraph.Build] keeps.
// Unknown top-level keys are ignored.
//
// ReadJSON returns an INVALID_INPUT error if the JSON is malformed, if either
// top-level key is missing, if a city lacks "country", or if a distance is
// not a number. City names failing [cgerrors.ValidateCityName] yield
// INVALID_CITY. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Dataset, error) {
	var top map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&top); err != nil {
		return nil, cgerrors.Wrap(cgerrors.ErrCodeInvalidInput, err, "decode")
	}

	rawCities, ok := top[keyCities]
	if !ok {
		return nil, cgerrors.New(cgerrors.ErrCodeInvalidInput, "missing %q", keyCities)
	}
	rawAdj, ok := top[keyAdjacency]
	if !ok {
		return nil, cgerrors.New(cgerrors.ErrCodeInvalidInput, "missing %q", keyAdjacency)
	}

	var ds Dataset
	err := eachMember(rawCities, func(name string, v json.RawMessage) error {
		if err := cgerrors.ValidateCityName(name); err != nil {
			return err
		}
		var info struct {
			Country *string `json:"country"`
		}
		if err := json.Unmarshal(v, &info); err != nil {
			return fmt.Errorf("city %s: %w", name, err)
		}
		if info.Country == nil {
			return fmt.Errorf("city %s: missing %q", name, keyCountry)
		}
		ds.Cities = append(ds.Cities, citygraph.City{Name: name, Country: *info.Country})
		return nil
	})
	if cgerrors.Is(err, cgerrors.ErrCodeInvalidCity) {
		return nil, err
	}
	if err != nil {
		return nil, cgerrors.Wrap(cgerrors.ErrCodeInvalidInput, err, "decode %s", keyCities)
	}

	err = eachMember(rawAdj, func(from string, v json.RawMessage) error {
		adj := citygraph.Adjacency{City: from}
		err := eachMember(v, func(to string, d json.RawMessage) error {
			var dist float64
			if err := json.Unmarshal(d, &dist); err != nil {
				return fmt.Errorf("%s→%s: %w", from, to, err)
			}
			adj.Neighbors = append(adj.Neighbors, citygraph.Neighbor{City: to, Distance: dist})
			return nil
		})
		if err != nil {
			return err
		}
		ds.Adjacency = append(ds.Adjacency, adj)
		return nil
	})
	if err != nil {
		return nil, cgerrors.Wrap(cgerrors.ErrCodeInvalidInput, err, "decode %s", keyAdjacency)
	}

	return &ds, nil
}

// ImportJSON reads the dataset file at path.
//
// A missing file yields a FILE_NOT_FOUND error; other failures are the same
// as [ReadJSON], with the path added for context. The file is closed before
// ImportJSON returns.
func ImportJSON(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, cgerrors.Wrap(cgerrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// LoadGraph reads the dataset at path and builds its graph.
func LoadGraph(path string) (*citygraph.Graph, error) {
	ds, err := ImportJSON(path)
	if err != nil {
		return nil, err
	}
	g, err := ds.Graph()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// ParseGraph decodes a dataset from memory and builds its graph.
func ParseGraph(data []byte) (*citygraph.Graph, error) {
	ds, err := ReadJSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return ds.Graph()
}

// eachMember calls fn for every member of the JSON object raw, in document
// order. encoding/json maps do not keep order, so the object is walked
// token by token.
func eachMember(raw json.RawMessage, fn func(key string, value json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	type member struct {
		key   string
		value json.RawMessage
	}
	var members []member
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		// A repeated key keeps its first position and takes the last value.
		if i, dup := index[key]; dup {
			members[i].value = value
			continue
		}
		index[key] = len(members)
		members = append(members, member{key, value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	for _, m := range members {
		if err := fn(m.key, m.value); err != nil {
			return err
		}
	}
	return nil
}
