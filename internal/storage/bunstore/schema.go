package bunstore

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// RegisterModels registers the package models with db.
func RegisterModels(db *bun.DB) {
	db.RegisterModel(Models()...)
}

// EnsureSchema creates the package tables when they do not exist.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	for _, model := range Models() {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("bunstore: create table for %T: %w", model, err)
		}
	}
	return nil
}
