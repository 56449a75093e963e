package pipeline

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/matzehuels/aplet/pkg/cache"
	"github.com/matzehuels/aplet/pkg/errors"
	"github.com/matzehuels/aplet/pkg/featureide"
	"github.com/matzehuels/aplet/pkg/fm"
	pkgio "github.com/matzehuels/aplet/pkg/io"
	"github.com/matzehuels/aplet/pkg/observability"
)

// LoadModel parses the configured feature model.
func (r *Runner) LoadModel(ctx context.Context) (*fm.Tree, error) {
	start := time.Now()
	path := r.Config.ModelPath()
	t, hit, err := r.loadModel(ctx, path)
	n := 0
	if t != nil {
		n = t.Count()
	}
	observability.Pipeline().OnModelParsed(ctx, path, n, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("loaded feature model", "path", path, "features", n, "cached", hit, "duration", time.Since(start))
	return t, nil
}

func (r *Runner) loadModel(ctx context.Context, path string) (*fm.Tree, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, errors.Wrap(errors.ErrCodeFileNotFound, err, "feature model %s does not exist", path)
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeMalformedModel, err, "read feature model %s", path)
	}

	key := r.Keyer.ModelKey(cache.Hash(data))
	if cached, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		if t, _, err := pkgio.ReadJSON(bytes.NewReader(cached)); err == nil {
			observability.Cache().OnCacheHit(ctx, "model")
			return t, true, nil
		}
		_ = r.Cache.Delete(ctx, key)
	} else if err != nil {
		r.Logger.Warn("model cache read failed", "err", err)
	}
	observability.Cache().OnCacheMiss(ctx, "model")

	t, err := featureide.Parse(data)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeMalformedModel, err, "parse %s", path)
	}

	var buf bytes.Buffer
	if err := pkgio.WriteJSON(t, "", &buf); err == nil {
		if err := r.Cache.Set(ctx, key, buf.Bytes(), r.Config.Cache.TTL); err != nil {
			r.Logger.Warn("model cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "model", buf.Len())
		}
	}
	return t, false, nil
}
