package database

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrDuplicateTerm is returned when creating a keyword whose term is
	// already registered.
	ErrDuplicateTerm = errors.New("keyword term already exists")

	// ErrNotFound is returned when an update targets a keyword id that does
	// not exist.
	ErrNotFound = errors.New("keyword not found")
)

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode
}
