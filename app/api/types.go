package api

import (
	"context"

	"github.com/okhotin/tubedeck/app/aggregator"
	"github.com/okhotin/tubedeck/app/feed"
	"github.com/okhotin/tubedeck/app/library"
	"github.com/okhotin/tubedeck/app/resolver"
	"github.com/okhotin/tubedeck/app/youtube"
)

type ResolverInterface interface {
	Resolve(ctx context.Context, rawQuery string) ([]youtube.Candidate, error)
	ResolveByID(ctx context.Context, channelID string) (*youtube.Candidate, error)
}

var _ ResolverInterface = (*resolver.Resolver)(nil)

type AggregatorInterface interface {
	Fetch(ctx context.Context, channelIDs []string) ([]youtube.Video, error)
}

var _ AggregatorInterface = (*aggregator.Aggregator)(nil)

type GeneratorInterface interface {
	Run(title, scopePath string, videos []youtube.Video) (string, error)
}

var _ GeneratorInterface = (*feed.Generator)(nil)

type Handler struct {
	library    *library.Library
	resolver   ResolverInterface
	aggregator AggregatorInterface
	generator  GeneratorInterface
}
