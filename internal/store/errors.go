package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// The error taxonomy every data-access failure is mapped onto. Nothing above
// this package inspects driver or GORM errors directly.
var (
	ErrNotFound  = errors.New("store: record not found")
	ErrDuplicate = errors.New("store: duplicate key")
	ErrIntegrity = errors.New("store: integrity constraint violated")
)

// mapError translates GORM/driver failures into the taxonomy. Unrecognized
// errors pass through unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	msg := strings.ToLower(err.Error())
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(msg, "unique constraint"),
		strings.Contains(msg, "duplicate"):
		return ErrDuplicate
	// Only referential failures map to ErrIntegrity; CHECK or NOT NULL
	// violations also say "constraint", so matching has to stay on the
	// foreign-key wording.
	case errors.Is(err, gorm.ErrForeignKeyViolated),
		strings.Contains(msg, "foreign key"):
		return ErrIntegrity
	}
	return err
}
