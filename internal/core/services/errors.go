package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Pyrocube-Network/EconomyApi/internal/apperrors"
	"github.com/Pyrocube-Network/EconomyApi/pkg/economy"
)

// toEconomyError converts any failure into an *economy.Error. Errors that
// already are one pass through unchanged.
func toEconomyError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := economy.AsError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return economy.TimeoutError(err)
	case errors.Is(err, context.Canceled):
		return economy.CanceledError(err)
	}
	return economy.StorageError(err)
}

// accountError maps repository sentinels for operations on accountID.
func accountError(err error, accountID uuid.UUID) error {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return economy.AccountNotFoundError(accountID.String()).WithCause(err)
	case errors.Is(err, apperrors.ErrDuplicate):
		return economy.AccountExistsError(accountID.String()).WithCause(err)
	}
	return toEconomyError(err)
}

// errorKind labels err for metrics.
func errorKind(err error) string {
	if kind, ok := economy.KindOf(err); ok {
		return string(kind)
	}
	return string(economy.KindStorage)
}
