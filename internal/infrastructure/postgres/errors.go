package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/grainworks/portfolio-api/internal/domain/repository"
)

// wrapErr translates driver errors into repository sentinels. Missing rows
// become ErrNotFound; failures that look transient or environmental become
// ErrUnavailable so callers can answer "try again later" instead of leaking
// driver details.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	if isUnavailable(err) {
		return fmt.Errorf("%w: %v", repository.ErrUnavailable, err)
	}
	return err
}

func isUnavailable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "08"): // connection exception
			return true
		case pgErr.Code == "57P03": // cannot_connect_now
			return true
		case pgErr.Code == "53300": // too_many_connections
			return true
		case pgErr.Code == "3D000": // database does not exist
			return true
		case pgErr.Code == "42P01": // undefined_table, migrations missing
			return true
		}
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	// pgconn connect failures surface as plain errors with these markers.
	msg := err.Error()
	for _, marker := range []string{
		"connection refused",
		"failed to connect",
		"no such host",
		"closed pool",
		"conn closed",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
