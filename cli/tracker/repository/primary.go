package repository

import (
	"context"

	"github.com/daniil11ru/trail/cli/tracker/dto/db/in/insert"
	"github.com/daniil11ru/trail/cli/tracker/dto/db/out"
	"github.com/daniil11ru/trail/cli/tracker/source"
	"github.com/daniil11ru/trail/cli/tracker/types"
)

type Primary struct {
	Source source.Primary
}

func (p *Primary) AddLocation(ctx context.Context, uid types.UserID, position types.Position2D) (int32, error) {
	return p.Source.AddLocation(ctx, insert.Location{
		UID:       uint64(uid),
		Latitude:  position.Latitude,
		Longitude: position.Longitude,
	})
}

func (p *Primary) GetLastLocation(ctx context.Context, uid types.UserID) (out.Location, bool, error) {
	return p.Source.GetLastLocation(ctx, uint64(uid))
}

func (p *Primary) GetApiKeys(ctx context.Context) ([]out.ApiKey, error) {
	return p.Source.GetApiKeys(ctx)
}
