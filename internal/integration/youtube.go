package integration

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	youtube "google.golang.org/api/youtube/v3"

	"github.com/bffaitrainer/bff-middleware/internal/config"
	"github.com/bffaitrainer/bff-middleware/internal/logging"
)

// searchMaxResults caps the number of items returned per search.
const searchMaxResults = 10

// YouTube runs keyword searches against the YouTube Data API.
type YouTube struct {
	key      string
	endpoint string // overrides the API base URL when set (tests)
	log      *logging.Logger
}

// NewYouTube creates the search adapter.
func NewYouTube(cfg config.ProvidersConfig, log *logging.Logger) *YouTube {
	return &YouTube{
		key: cfg.YouTubeKey,
		log: log.Sub("youtube"),
	}
}

// Search runs one keyword search and returns the provider's response.
func (y *YouTube) Search(ctx context.Context, query string) Result {
	if y.key == "" {
		return Skipped("YOUTUBE_API_KEY", map[string]any{"q": query})
	}

	opts := []option.ClientOption{option.WithAPIKey(y.key)}
	if y.endpoint != "" {
		opts = append(opts, option.WithEndpoint(y.endpoint))
	}
	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return TransportError(fmt.Errorf("creating youtube client: %w", err))
	}

	resp, err := svc.Search.List([]string{"snippet"}).
		Q(query).
		MaxResults(searchMaxResults).
		Context(ctx).
		Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			return ProviderError(gerr.Code, []byte(gerr.Body))
		}
		y.log.Warn().Err(err).Str("q", query).Msg("youtube search failed")
		return TransportError(err)
	}
	return OK(resp)
}
