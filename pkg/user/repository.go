package user

import (
	"context"

	"github.com/tendant/idm-console/pkg/database"
	"github.com/tendant/idm-console/pkg/schema"
)

// UserRepository is the storage the user service runs on.
type UserRepository interface {
	FindUsersByIDs(ctx context.Context, ids []string) ([]schema.User, error)
	FindUserByID(ctx context.Context, id string) (schema.User, bool, error)
	FindAllUsers(ctx context.Context, page database.Page, search database.Search) ([]schema.User, error)
	CountUsers(ctx context.Context, search database.Search) (int64, error)
	InsertUser(ctx context.Context, create schema.CreateUser) (schema.User, error)
}

// SearchFields are the fields a free-text user search looks at.
var SearchFields = []string{"id", "username", "primaryEmail", "name"}
