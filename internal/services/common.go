package services

import (
	"context"
	"errors"

	"github.com/yoockh/jobmate/internal/utils"
)

// deleteOwned runs an owner-scoped delete and maps a miss to NOT_FOUND.
func deleteOwned(ctx context.Context, op, what string, del func(context.Context) error) error {
	if err := del(ctx); err != nil {
		return mapWriteErr(op, what, err)
	}
	return nil
}

func mapWriteErr(op, what string, err error) error {
	switch {
	case errors.Is(err, utils.ErrNotFound):
		return utils.E(utils.CodeNotFound, op, what+" not found", err)
	case errors.Is(err, utils.ErrConflict):
		return utils.E(utils.CodeConflict, op, what+" already exists", err)
	default:
		return utils.E(utils.CodeInternal, op, "failed to update "+what, err)
	}
}
