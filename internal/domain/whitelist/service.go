package whitelist

import "context"

type WhitelistService interface {
	Add(ctx context.Context, req AddWhitelistRequest) (Entry, error)
	SetActive(ctx context.Context, id int64, active bool) (Entry, error)
	UpdateMotive(ctx context.Context, id int64, motive *string) (Entry, error)
	Remove(ctx context.Context, id int64) error
	IsWhitelisted(ctx context.Context, legajo string) (bool, error)
	List(ctx context.Context) ([]Entry, error)
	ListActive(ctx context.Context) ([]Entry, error)
}
