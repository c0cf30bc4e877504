package app_test

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"newsfeed/internal/adapter/httpapi"
	"newsfeed/internal/app"
	"newsfeed/internal/domain/model"
	"newsfeed/internal/usecase"
)

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}

type staticProvider struct{}

func (staticProvider) FetchNews(context.Context, model.FeedRequest) (*model.ProviderResponse, error) {
	return &model.ProviderResponse{
		Text: `{"articles": [{"title": "Headline", "summary": "Summary", "source": "BBC", "category": "World"}]}`,
	}, nil
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestRunServesFeedUntilCancelled(t *testing.T) {
	feed := usecase.NewNewsFeed(staticProvider{}, nopLogger{}, usecase.NewsFeedConfig{})
	addr := freeAddr(t)
	application := app.New(feed, httpapi.NewRouter(feed, nopLogger{}), nopLogger{}, addr)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 3*time.Second, 20*time.Millisecond)

	require.Eventually(t, func() bool {
		return feed.Snapshot().Status == model.StatusReady
	}, 3*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("app did not stop")
	}

	require.ErrorIs(t, feed.SetLocale(model.LocaleHindi), usecase.ErrStopped)
}
