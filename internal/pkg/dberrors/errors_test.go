package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	if !IsDuplicateConstraintError(dup, "users_email_key") {
		t.Error("expected a match on the named constraint")
	}
	if IsDuplicateConstraintError(dup, "user_sessions_session_token_key") {
		t.Error("a different constraint name must not match")
	}

	wrapped := fmt.Errorf("error creating user: %w", dup)
	if !IsDuplicateConstraintError(wrapped, "users_email_key") {
		t.Error("expected a match through error wrapping")
	}

	notNull := &pgconn.PgError{Code: "23502", ConstraintName: "users_email_key"}
	if IsDuplicateConstraintError(notNull, "users_email_key") {
		t.Error("a non-unique-violation code must not match")
	}
	if IsDuplicateConstraintError(errors.New("boom"), "users_email_key") {
		t.Error("a plain error must not match")
	}
}
