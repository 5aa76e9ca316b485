package pipeline

import (
	"errors"
	"io/fs"
	"os"

	"github.com/matzehuels/citygraph/pkg/citygraph"
	cgerrors "github.com/matzehuels/citygraph/pkg/errors"
	pkgio "github.com/matzehuels/citygraph/pkg/io"
)

// Load reads a dataset file and builds its graph. The raw bytes are returned
// for cache keying.
func Load(path string) ([]byte, *citygraph.Graph, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, cgerrors.Wrap(cgerrors.ErrCodeFileNotFound, err, "input %s", path)
	}
	if err != nil {
		return nil, nil, cgerrors.Wrap(cgerrors.ErrCodeInvalidInput, err, "read %s", path)
	}

	g, err := pkgio.ParseGraph(data)
	if err != nil {
		return nil, nil, err
	}
	return data, g, nil
}
