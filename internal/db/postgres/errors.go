package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/lib/pq"

	"Sightings/internal/core/storeerr"
)

const (
	pqUniqueViolation          = pq.ErrorCode("23505")
	pqInsufficientPrivilege    = pq.ErrorCode("42501")
	pqClassConnectionException = pq.ErrorClass("08")
	pqClassInvalidAuth         = pq.ErrorClass("28")
)

// classify tags driver errors with the storeerr categories
func classify(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == pqInsufficientPrivilege, pqErr.Code.Class() == pqClassInvalidAuth:
			return storeerr.PermissionDenied(err)
		case pqErr.Code.Class() == pqClassConnectionException:
			return storeerr.Unavailable(err)
		}
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) {
		return storeerr.Unavailable(err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
