package pipeline

import (
	"context"
	"errors"

	"github.com/matzehuels/citygraph/pkg/citygraph"
	cgerrors "github.com/matzehuels/citygraph/pkg/errors"
	"github.com/matzehuels/citygraph/pkg/render"
	"github.com/matzehuels/citygraph/pkg/render/nodelink"
	"github.com/matzehuels/citygraph/pkg/render/raster"
)

// Render draws g with the configured engine in format.
func Render(ctx context.Context, g *citygraph.Graph, format string, opts Options) ([]byte, error) {
	if err := ValidateFormat(opts.Engine, format); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	switch opts.Engine {
	case EngineGraphviz:
		data, err = nodelink.Render(ctx, nodelink.ToDOT(g, opts.Render), format)
	case EngineNative:
		data, err = raster.Render(ctx, g, opts.Render)
	default:
		return nil, ValidateEngine(opts.Engine)
	}
	if err != nil {
		if cgerrors.GetCode(err) != "" || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, cgerrors.Wrap(cgerrors.ErrCodeRenderFailed, err, "%s %s", opts.Engine, format)
	}
	if format == FormatPNG {
		if data, err = render.WithDPI(data, opts.Render.DPI); err != nil {
			return nil, cgerrors.Wrap(cgerrors.ErrCodeRenderFailed, err, "%s %s", opts.Engine, format)
		}
	}
	return data, nil
}
