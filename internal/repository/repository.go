// Package repository holds the MongoDB-backed stores for users, lessons and sliders.
package repository

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AnshRaj112/lessonhub-backend/internal/apperr"
)

const (
	userCollection   = "users"
	lessonCollection = "lessons"
	sliderCollection = "sliders"
)

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", apperr.ErrStore, op, err)
}

// notFoundOr maps mongo.ErrNoDocuments to apperr.ErrNotFound and wraps anything else as a store error.
func notFoundOr(op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	return storeErr(op, err)
}

func parseObjectID(op, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s: malformed id %q: %w", op, id, apperr.ErrNotFound)
	}
	return oid, nil
}
