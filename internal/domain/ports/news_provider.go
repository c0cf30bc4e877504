package ports

import (
	"context"
	"errors"

	"newsfeed/internal/domain/model"
)

// Failure classes a NewsProvider reports. The controller shows the same
// message for all of them; the class is kept for logs.
var (
	ErrTransport         = errors.New("provider transport failure")
	ErrProviderRejected  = errors.New("provider rejected request")
	ErrMalformedResponse = errors.New("malformed provider response")
)

// NewsProvider generates grounded news for a language and category.
type NewsProvider interface {
	FetchNews(ctx context.Context, req model.FeedRequest) (*model.ProviderResponse, error)
}
