package slog_test

import (
	"bytes"
	"context"
	stdslog "log/slog"
	"testing"

	"github.com/awalczak/cardscan"
	"github.com/awalczak/cardscan/mock"
	csslog "github.com/awalczak/cardscan/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() (*stdslog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return stdslog.New(stdslog.NewTextHandler(&buf, nil)), &buf
}

func TestLoggingFetcher(t *testing.T) {
	t.Parallel()

	t.Run("logs successful fetches", func(t *testing.T) {
		t.Parallel()

		logger, buf := newTestLogger()
		next := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html></html>", nil
			},
		}

		f := csslog.NewLoggingFetcher(next, logger)
		html, err := f.Fetch(context.Background(), "https://example.com")
		require.NoError(t, err)

		assert.Equal(t, "<html></html>", html)
		assert.Contains(t, buf.String(), "https://example.com")
		assert.Contains(t, buf.String(), "bytes")
	})

	t.Run("logs failures", func(t *testing.T) {
		t.Parallel()

		logger, buf := newTestLogger()
		next := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", cardscan.Errorf(cardscan.EINTERNAL, "boom")
			},
		}

		f := csslog.NewLoggingFetcher(next, logger)
		_, err := f.Fetch(context.Background(), "https://example.com")
		require.Error(t, err)

		assert.Contains(t, buf.String(), "fetch failed")
	})
}

func TestLoggingDetector(t *testing.T) {
	t.Parallel()

	logger, buf := newTestLogger()
	next := &mock.StructureDetector{
		DetectStructureFn: func(html, baseURL string, maxArticles int) (*cardscan.HierarchicalStructure, error) {
			return &cardscan.HierarchicalStructure{
				TopicGroups: []*cardscan.TopicGroup{{
					Cards: []*cardscan.Card{{Label: "A", MainLink: "https://example.com/a"}},
				}},
			}, nil
		},
	}

	d := csslog.NewLoggingDetector(next, logger)
	s, err := d.DetectStructure("<html></html>", "https://example.com", 20)
	require.NoError(t, err)

	assert.Equal(t, 1, s.CardCount())
	assert.Contains(t, buf.String(), "structure detection")
	assert.Contains(t, buf.String(), "cards=1")
}
