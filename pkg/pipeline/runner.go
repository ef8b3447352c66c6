package pipeline

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/slicereveal/pkg/cache"
	"github.com/matzehuels/slicereveal/pkg/errors"
	"github.com/matzehuels/slicereveal/pkg/httputil"
	"github.com/matzehuels/slicereveal/pkg/observability"
	"github.com/matzehuels/slicereveal/pkg/render"
)

// Layer names used in cache keys.
const (
	LayerColor  = "color"
	LayerSketch = "sketch"
)

// MaxImageBytes bounds the size of a source image file.
const MaxImageBytes = 64 << 20

// Source is a decoded input image.
type Source struct {
	Image  image.Image
	Hash   string // content hash of the encoded bytes
	Format string // decoder name, e.g. "png"
	Path   string // empty for in-memory sources
}

// Runner encapsulates loading and preparing images with caching.
// The CLI and the preview server share it.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
	Fetcher *httputil.Fetcher
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
		Fetcher: httputil.NewFetcher(MaxImageBytes),
	}
}

// Load reads and decodes the image at path. Paths that are http or https
// URLs are downloaded.
func (r *Runner) Load(ctx context.Context, path string) (*Source, error) {
	if httputil.IsURL(path) {
		return r.fetch(ctx, path)
	}
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "image not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "stat %s", path)
	}
	if info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "%s is a directory", path)
	}
	if info.Size() > MaxImageBytes {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s is larger than %d MiB", path, MaxImageBytes>>20)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	src, err := r.Decode(ctx, data)
	if err != nil {
		return nil, err
	}
	src.Path = path
	return src, nil
}

func (r *Runner) fetch(ctx context.Context, url string) (*Source, error) {
	r.Logger.Debug("fetching image", "url", url)
	data, err := r.Fetcher.Fetch(ctx, url)
	switch {
	case stderrors.Is(err, httputil.ErrNotFound):
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "image not found: %s", url)
	case stderrors.Is(err, httputil.ErrTooLarge):
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s is larger than %d MiB", url, MaxImageBytes>>20)
	case err != nil:
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	src, err := r.Decode(ctx, data)
	if err != nil {
		return nil, err
	}
	src.Path = url
	return src, nil
}

// Decode decodes an encoded image. PNG, JPEG, GIF, WebP, BMP and TIFF are
// supported.
func (r *Runner) Decode(ctx context.Context, data []byte) (*Source, error) {
	if len(data) > MaxImageBytes {
		return nil, errors.New(errors.ErrCodeInvalidInput, "image is larger than %d MiB", MaxImageBytes>>20)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode image")
	}
	b := img.Bounds()
	r.Logger.Debug("decoded image", "format", format, "width", b.Dx(), "height", b.Dy())
	return &Source{Image: img, Hash: cache.Hash(data), Format: format}, nil
}

// Prepare fits src onto the canvas and derives its sketch layer. Both layers
// are cached as PNG under keys derived from the image hash and the options
// that affect them. The second return value reports whether both layers came
// from the cache.
func (r *Runner) Prepare(ctx context.Context, src *Source, opts Options) (render.Layers, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return render.Layers{}, false, err
	}

	colorKey := r.Keyer.LayerKey(src.Hash, opts.LayerKeyOpts(LayerColor))
	sketchKey := r.Keyer.LayerKey(src.Hash, opts.LayerKeyOpts(LayerSketch))

	if !opts.Refresh && src.Hash != "" {
		color, okColor := r.getLayer(ctx, colorKey)
		sketch, okSketch := r.getLayer(ctx, sketchKey)
		if okColor && okSketch {
			return render.Layers{Color: color, Sketch: sketch}, true, nil
		}
	}

	start := time.Now()
	layers := render.Prepare(src.Image, opts.Width, opts.Height, render.Fit(opts.Fit), opts.Filter())
	r.Logger.Debug("prepared layers",
		"width", opts.Width,
		"height", opts.Height,
		"fit", opts.Fit,
		"duration", time.Since(start))

	if src.Hash != "" {
		r.setLayer(ctx, colorKey, layers.Color)
		r.setLayer(ctx, sketchKey, layers.Sketch)
	}
	return layers, false, nil
}

func (r *Runner) getLayer(ctx context.Context, key string) (*image.NRGBA, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "layer")
		return nil, false
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		// Corrupt entry: treat as a miss and let the next Set overwrite it.
		observability.Cache().OnCacheMiss(ctx, "layer")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "layer")
	if nrgba, ok := img.(*image.NRGBA); ok {
		return nrgba, true
	}
	return imaging.Clone(img), true
}

func (r *Runner) setLayer(ctx context.Context, key string, img *image.NRGBA) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		r.Logger.Warn("encode layer for cache", "error", err)
		return
	}
	if err := r.Cache.Set(ctx, key, buf.Bytes(), cache.DefaultTTL); err != nil {
		r.Logger.Warn("cache layer", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "layer", buf.Len())
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
