// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-extract/internal/extract"
	"github.com/pdiddy/pdf-extract/pkg/types"
)

// countingSource returns canned pages and records how often it was asked.
type countingSource struct {
	pages []extract.PageText
	err   error
	calls int
}

func (c *countingSource) Name() types.Backend { return types.BackendLedongthuc }

func (c *countingSource) Pages(ctx context.Context, path string) ([]extract.PageText, error) {
	c.calls++
	return c.pages, c.err
}

func testSetup(t *testing.T) (*Cache, string) {
	t.Helper()
	tmpDir := t.TempDir()
	c, err := Open(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, tmpDir
}

func writePDF(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestKey(t *testing.T) {
	dir := t.TempDir()
	a := writePDF(t, dir, "a.pdf", "%PDF-1.4 one")
	b := writePDF(t, dir, "b.pdf", "%PDF-1.4 one")
	c := writePDF(t, dir, "c.pdf", "%PDF-1.4 two")

	ka, err := Key(a, types.BackendLedongthuc)
	require.NoError(t, err)
	kb, err := Key(b, types.BackendLedongthuc)
	require.NoError(t, err)
	kc, err := Key(c, types.BackendLedongthuc)
	require.NoError(t, err)
	kp, err := Key(a, types.BackendPdftotext)
	require.NoError(t, err)

	assert.Equal(t, ka, kb, "identical bytes share a key regardless of name")
	assert.NotEqual(t, ka, kc)
	assert.NotEqual(t, ka, kp, "backend is part of the key")
	assert.True(t, strings.HasPrefix(ka, "ledongthuc:"))

	_, err = Key(filepath.Join(dir, "missing.pdf"), types.BackendLedongthuc)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPutGet(t *testing.T) {
	c, _ := testSetup(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, "k", "doc.pdf", types.BackendLedongthuc, []string{"Hello", "", "World"}))
	texts, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"Hello", "", "World"}, texts)

	// Replacing an entry drops pages that no longer exist.
	require.NoError(t, c.Put(ctx, "k", "doc.pdf", types.BackendLedongthuc, []string{"only"}))
	texts, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"only"}, texts)
}

func TestPutGet_ZeroPages(t *testing.T) {
	c, _ := testSetup(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "empty", "empty.pdf", types.BackendLedongthuc, nil))
	texts, ok, err := c.Get(ctx, "empty")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, texts)
}

func TestOpen_Reopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	ctx := context.Background()

	c, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, c.Put(ctx, "k", "doc.pdf", types.BackendLedongthuc, []string{"persisted"}))
	require.NoError(t, c.Close())

	c, err = Open(dir)
	require.NoError(t, err)
	defer c.Close()

	texts, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"persisted"}, texts)
}

func TestSource_HitSkipsBackend(t *testing.T) {
	c, dir := testSetup(t)
	path := writePDF(t, dir, "doc.pdf", "%PDF-1.4 body")
	next := &countingSource{pages: []extract.PageText{{Text: "Hello"}, {Text: ""}, {Text: "World"}}}
	src := c.Wrap(next, nil)

	first, err := extract.Extract(context.Background(), src, path, extract.Options{})
	require.NoError(t, err)
	second, err := extract.Extract(context.Background(), src, path, extract.Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, extract.Render(first), extract.Render(second))
	assert.Equal(t, types.BackendLedongthuc, second.Backend)
}

func TestSource_ChangedFileMisses(t *testing.T) {
	c, dir := testSetup(t)
	path := writePDF(t, dir, "doc.pdf", "%PDF-1.4 v1")
	next := &countingSource{pages: []extract.PageText{{Text: "v1"}}}
	src := c.Wrap(next, nil)

	_, err := src.Pages(context.Background(), path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 v2"), 0o644))
	_, err = src.Pages(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 2, next.calls)
}

func TestSource_PageErrorsNotCached(t *testing.T) {
	c, dir := testSetup(t)
	path := writePDF(t, dir, "doc.pdf", "%PDF-1.4 body")
	next := &countingSource{pages: []extract.PageText{{Text: "ok"}, {Err: errors.New("bad page")}}}
	src := c.Wrap(next, nil)

	for i := 0; i < 2; i++ {
		pages, err := src.Pages(context.Background(), path)
		require.NoError(t, err)
		require.Len(t, pages, 2)
		assert.Error(t, pages[1].Err)
	}
	assert.Equal(t, 2, next.calls)

	_, err := extract.Extract(context.Background(), src, path, extract.Options{Strict: true})
	assert.Error(t, err, "strict mode must still see the page failure")
}

func TestSource_BackendError(t *testing.T) {
	c, dir := testSetup(t)
	path := writePDF(t, dir, "doc.pdf", "%PDF-1.4 body")
	src := c.Wrap(&countingSource{err: errors.New("corrupt")}, nil)

	_, err := src.Pages(context.Background(), path)
	assert.EqualError(t, err, "corrupt")
}
