package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/trueinsight/reviewtrust/pkg/errors"
)

// dataException is the SQLSTATE class for values the server cannot convert,
// such as a malformed UUID.
const dataException = "22"

// classify turns data exceptions into ErrInvalidInput. They describe the
// caller's input, not the health of the store.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, dataException) {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, pgErr.Message)
	}
	return err
}
