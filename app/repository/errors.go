package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateEntry    = errors.New("duplicate entry")
	ErrForeignKey        = errors.New("referenced row does not exist")
)

const (
	mysqlDuplicateEntry      = 1062
	mysqlForeignKeyViolation = 1452
)

// translateMySQLError maps driver error codes onto repository sentinels so
// callers never match on driver-specific errors.
func translateMySQLError(err error) error {
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return err
	}

	switch mysqlErr.Number {
	case mysqlDuplicateEntry:
		switch {
		case strings.Contains(mysqlErr.Message, "uq_users_username"):
			return ErrDuplicateUsername
		case strings.Contains(mysqlErr.Message, "uq_users_email"):
			return ErrDuplicateEmail
		default:
			return ErrDuplicateEntry
		}
	case mysqlForeignKeyViolation:
		return ErrForeignKey
	}

	return err
}
