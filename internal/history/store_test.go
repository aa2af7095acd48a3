// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/latex2pdfa/pkg/types"
)

func newTestStore(t *testing.T, maxRuns int) *Store {
	t.Helper()
	s, err := NewStore(types.HistoryConfig{Dir: t.TempDir(), MaxRuns: maxRuns})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecord(texFile string, startedAt time.Time) types.RunRecord {
	return types.RunRecord{
		StartedAt:  startedAt,
		Duration:   42 * time.Second,
		TexFile:    texFile,
		Profile:    "1b",
		OutputPath: "/out/thesis-PDFA-1b.pdf",
		Succeeded:  true,
		Verify:     types.VerifyPassed,
	}
}

func TestRecordAndList(t *testing.T) {
	s := newTestStore(t, 0)
	ctx := context.Background()

	base := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	for i, tex := range []string{"/a/one.tex", "/b/two.tex", "/c/three.tex"} {
		_, err := s.Record(ctx, testRecord(tex, base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
	}

	records, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Newest first.
	assert.Equal(t, "/c/three.tex", records[0].TexFile)
	assert.Equal(t, "/a/one.tex", records[2].TexFile)

	got := records[0]
	assert.Equal(t, "1b", got.Profile)
	assert.Equal(t, "/out/thesis-PDFA-1b.pdf", got.OutputPath)
	assert.Equal(t, 42*time.Second, got.Duration)
	assert.Equal(t, types.VerifyPassed, got.Verify)
	assert.True(t, got.Succeeded)
	assert.True(t, got.StartedAt.Equal(base.Add(2*time.Hour)))
}

func TestListLimit(t *testing.T) {
	s := newTestStore(t, 0)
	ctx := context.Background()

	base := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := s.Record(ctx, testRecord("/a/one.tex", base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	records, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestRecordFailedRun(t *testing.T) {
	s := newTestStore(t, 0)
	ctx := context.Background()

	rec := testRecord("/a/one.tex", time.Now())
	rec.Succeeded = false
	rec.FailedStep = "ghostscript"
	rec.Verify = types.VerifySkipped
	rec.OutputPath = ""

	_, err := s.Record(ctx, rec)
	require.NoError(t, err)

	records, err := s.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Succeeded)
	assert.Equal(t, "ghostscript", records[0].FailedStep)
	assert.Equal(t, types.VerifySkipped, records[0].Verify)
}

func TestPrune(t *testing.T) {
	s := newTestStore(t, 0)
	ctx := context.Background()

	base := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := s.Record(ctx, testRecord("/a/one.tex", base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	removed, err := s.Prune(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	records, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	// The two newest survive.
	assert.True(t, records[0].StartedAt.Equal(base.Add(4*time.Minute)))
	assert.True(t, records[1].StartedAt.Equal(base.Add(3*time.Minute)))
}

func TestMaxRunsCapsRetention(t *testing.T) {
	s := newTestStore(t, 3)
	ctx := context.Background()

	base := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		_, err := s.Record(ctx, testRecord("/a/one.tex", base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	records, err := s.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestStoreReopens(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s1, err := NewStore(types.HistoryConfig{Dir: dir})
	require.NoError(t, err)
	_, err = s1.Record(ctx, testRecord("/a/one.tex", time.Now()))
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := NewStore(types.HistoryConfig{Dir: dir})
	require.NoError(t, err)
	defer s2.Close()

	records, err := s2.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
