package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/aplet/pkg/cache"
	"github.com/matzehuels/aplet/pkg/errors"
)

func TestCollect(t *testing.T) {
	c := NewCollector(nil, nil, nil)

	res, err := c.Collect(context.Background(), filepath.Join("testdata", "reports"), "")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join("testdata", "reports", "nested", "reportEmpty.xml"),
		filepath.Join("testdata", "reports", "reportBasic.xml"),
		filepath.Join("testdata", "reports", "reportFull.xml"),
	}, res.Files)
	assert.Equal(t, Outcomes{
		"Add one-word todo":   true,
		"Add multi-word todo": false,
		"List todos":          true,
		"Sort by priority":    true,
	}, res.Outcomes)
}

func TestCollectPattern(t *testing.T) {
	c := NewCollector(nil, nil, nil)

	res, err := c.Collect(context.Background(), filepath.Join("testdata", "reports"), "report*.xml")
	require.NoError(t, err)
	assert.Len(t, res.Files, 2)

	_, err = c.Collect(context.Background(), "testdata", "[")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}

func TestCollectMissingDir(t *testing.T) {
	res, err := NewCollector(nil, nil, nil).Collect(context.Background(), filepath.Join(t.TempDir(), "none"), "")
	require.NoError(t, err)
	assert.Empty(t, res.Files)
	assert.Empty(t, res.Outcomes)
}

func TestCollectInvalidReport(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.xml"), []byte("<testsuites>"), 0o644))

	_, err := NewCollector(nil, nil, nil).Collect(context.Background(), dir, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidReport))
	assert.Contains(t, err.Error(), "bad.xml")
}

func TestCollectUsesCache(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "reportA.xml")
	body := []byte(`<testsuites><testsuite><testcase feature="a"/></testsuite></testsuites>`)
	require.NoError(t, os.WriteFile(path, body, 0o644))

	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	keyer := cache.NewDefaultKeyer()
	c := NewCollector(fc, keyer, nil)

	_, err = c.Collect(ctx, dir, "")
	require.NoError(t, err)

	// Replace the cached entry for this content; a cache hit must return it.
	key := keyer.ReportKey(cache.Hash(body))
	require.NoError(t, fc.Set(ctx, key, []byte(`{"cases":[{"scenario":"a","passed":false}]}`), 0))

	res, err := c.Collect(ctx, dir, "")
	require.NoError(t, err)
	assert.Equal(t, Outcomes{"a": false}, res.Outcomes)

	// Changed content misses the cache.
	require.NoError(t, os.WriteFile(path, []byte(`<testsuite><testcase feature="b"/></testsuite>`), 0o644))
	res, err = c.Collect(ctx, dir, "")
	require.NoError(t, err)
	assert.Equal(t, Outcomes{"b": true}, res.Outcomes)
}

func TestCollectCorruptCacheEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	body := []byte(`<testsuite><testcase feature="a"/></testsuite>`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "r.xml"), body, 0o644))

	fc, _ := cache.NewFileCache(t.TempDir())
	keyer := cache.NewDefaultKeyer()
	require.NoError(t, fc.Set(ctx, keyer.ReportKey(cache.Hash(body)), []byte("{"), 0))

	res, err := NewCollector(fc, keyer, nil).Collect(ctx, dir, "")
	require.NoError(t, err)
	assert.Equal(t, Outcomes{"a": true}, res.Outcomes)
}

func TestCollectFiles(t *testing.T) {
	c := NewCollector(nil, nil, nil)
	dir := filepath.Join("testdata", "reports")

	res, err := c.CollectFiles(context.Background(), []string{ProductPath(dir, "Basic")})
	require.NoError(t, err)
	assert.Equal(t, Outcomes{"Add one-word todo": true, "Add multi-word todo": true, "List todos": true}, res.Outcomes)

	_, err = c.CollectFiles(context.Background(), []string{ProductPath(dir, "Missing")})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidReport))

	res, err = c.CollectFiles(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, res.Outcomes)
}
