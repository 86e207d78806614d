package storage

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/onflow/flow-bootstrap/admin"
	"github.com/onflow/flow-bootstrap/admin/commands"
	"github.com/onflow/flow-bootstrap/storage"
)

var _ commands.AdminCommand = (*ClearCacheCommand)(nil)

// ClearCacheCommand drops every cached consensus message from storage.
type ClearCacheCommand struct {
	log   zerolog.Logger
	cache storage.ConsensusCache
}

func NewClearCacheCommand(log zerolog.Logger, cache storage.ConsensusCache) *ClearCacheCommand {
	return &ClearCacheCommand{
		log:   log.With().Str("action", string(admin.ActionClearCache)).Logger(),
		cache: cache,
	}
}

func (c *ClearCacheCommand) Handler(_ context.Context, _ *admin.CommandRequest) (interface{}, error) {
	removed, err := c.cache.Clear()
	if err != nil {
		return nil, err
	}

	c.log.Info().Uint64("removed", removed).Msg("consensus message cache cleared")
	return map[string]interface{}{
		"removed": removed,
	}, nil
}

func (c *ClearCacheCommand) Validator(req *admin.CommandRequest) error {
	if len(req.Data) > 0 {
		return admin.NewInvalidRequestErrorf("%s takes no parameters", admin.ActionClearCache)
	}
	return nil
}
