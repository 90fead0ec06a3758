package source

import (
	"context"

	"github.com/daniil11ru/trail/cli/tracker/dto/db/in/insert"
	"github.com/daniil11ru/trail/cli/tracker/dto/db/out"
)

type Primary interface {
	AddLocation(ctx context.Context, location insert.Location) (int32, error)
	GetLastLocation(ctx context.Context, uid uint64) (out.Location, bool, error)

	GetApiKeys(ctx context.Context) ([]out.ApiKey, error)
}
