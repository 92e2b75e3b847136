package utils

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// DBErrorKind is a coarse classification of a database failure. Handlers
// still show one message per operation; the kind is for logs.
type DBErrorKind int

const (
	DBErrNone DBErrorKind = iota
	DBErrOther
	DBErrNotFound
	DBErrConstraint
	DBErrConnection
)

func (k DBErrorKind) String() string {
	switch k {
	case DBErrNone:
		return "none"
	case DBErrNotFound:
		return "not_found"
	case DBErrConstraint:
		return "constraint_violation"
	case DBErrConnection:
		return "connection_failure"
	default:
		return "other"
	}
}

// DBError wraps a database error with the operation that produced it.
type DBError struct {
	Op   string
	Kind DBErrorKind
	Err  error
}

func (e *DBError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *DBError) Unwrap() error {
	return e.Err
}

// WrapDBError classifies err and attaches op. A nil err stays nil.
func WrapDBError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &DBError{Op: op, Kind: ClassifyDBError(err), Err: err}
}

const errDBClosedText = "sql: database is closed"

// MySQL server error numbers.
const (
	mysqlErrDupEntry           = 1062
	mysqlErrBadNull            = 1048
	mysqlErrNoDefault          = 1364
	mysqlErrRowIsReferenced    = 1451
	mysqlErrNoReferencedRow    = 1452
	mysqlErrCheckConstraint    = 3819
	mysqlErrTooManyConnections = 1040
	mysqlErrDBAccessDenied     = 1044
	mysqlErrAccessDenied       = 1045
	mysqlErrBadDB              = 1049
	mysqlErrServerShutdown     = 1053
)

func ClassifyDBError(err error) DBErrorKind {
	if err == nil {
		return DBErrNone
	}

	var dbErr *DBError
	if errors.As(err, &dbErr) {
		return dbErr.Kind
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, sql.ErrNoRows):
		return DBErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrCheckConstraintViolated):
		return DBErrConstraint
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlErrDupEntry, mysqlErrBadNull, mysqlErrNoDefault,
			mysqlErrRowIsReferenced, mysqlErrNoReferencedRow, mysqlErrCheckConstraint:
			return DBErrConstraint
		case mysqlErrTooManyConnections, mysqlErrDBAccessDenied, mysqlErrAccessDenied,
			mysqlErrBadDB, mysqlErrServerShutdown:
			return DBErrConnection
		}
		return DBErrOther
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "23"): // integrity_constraint_violation
			return DBErrConstraint
		case strings.HasPrefix(pgErr.Code, "08"), // connection_exception
			strings.HasPrefix(pgErr.Code, "28"), // invalid_authorization_specification
			strings.HasPrefix(pgErr.Code, "57P"):
			return DBErrConnection
		}
		return DBErrOther
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code {
		case sqlite3.ErrConstraint:
			return DBErrConstraint
		case sqlite3.ErrCantOpen, sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrNotADB:
			return DBErrConnection
		}
		return DBErrOther
	}

	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, mysql.ErrInvalidConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) {
		return DBErrConnection
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return DBErrConnection
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return DBErrConnection
	}
	// database/sql does not export its closed-pool error.
	if strings.Contains(err.Error(), errDBClosedText) {
		return DBErrConnection
	}

	return DBErrOther
}
