package repository

import (
	"encoding/json"
	"errors"

	"github.com/spec-kit/records-service/internal/store"
	apperrors "github.com/spec-kit/records-service/pkg/util"
)

// errDuplicate marks a natural-key collision (email, or name within a store).
func errDuplicate(field, value string) error {
	return apperrors.NewConflict("record already exists", map[string]any{field: value})
}

// IsDuplicate reports whether err is a natural-key conflict.
func IsDuplicate(err error) bool {
	return apperrors.IsCode(err, "CONFLICT")
}

// IsInvalidInput reports whether err rejects caller-supplied input.
func IsInvalidInput(err error) bool {
	return apperrors.IsCode(err, "MALFORMED_INPUT")
}

// IsNotFound reports whether err is a lookup miss, either the store's raw
// sentinel or the repository's not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound) || apperrors.IsCode(err, "NOT_FOUND")
}

// toDocument converts a domain struct into a schemaless store document via
// its JSON representation.
func toDocument(v any) (store.Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc store.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// fromDocument decodes a store document into a domain struct.
func fromDocument(doc store.Document, out any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
