package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates the indexes for every collection. Called once at
// startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return NewArticleRepository(db).EnsureIndexes(ctx)
}
