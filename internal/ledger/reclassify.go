package ledger

import (
	"context"
	"errors"
	"fmt"

	"forfettario/internal/logger"
	"forfettario/pkg/models"
	"forfettario/pkg/services"
)

// Reclassify moves a record to another collection, e.g. an outflow that turns
// out to be a withdrawal. The store has no transactions across collections,
// so the move is an insert into the destination followed by a delete from the
// source. When the delete fails the inserted copy is removed again; if that
// also fails the error wraps ErrCompensationFailed and the caller has to
// re-sync. The id of the new record is returned.
func Reclassify(ctx context.Context, store services.LedgerStore, owner string, from models.Kind, id string, to models.Kind) (string, error) {
	log := logger.WithOwner("reclassify", owner)

	if from == to {
		return id, nil
	}

	src, err := store.Get(ctx, owner, from, id)
	if err != nil {
		return "", &ReclassifyError{Op: "get", From: from, To: to, ID: id, Err: err}
	}

	dst, err := Prepare(src.As(to))
	if err != nil {
		return "", &ReclassifyError{Op: "create", From: from, To: to, ID: id, Err: err}
	}

	newID, err := store.Create(ctx, owner, dst)
	if err != nil {
		return "", &ReclassifyError{Op: "create", From: from, To: to, ID: id, Err: err}
	}

	if err := store.Delete(ctx, owner, from, id); err != nil {
		log.Warn().
			Err(err).
			Str("id", id).
			Str("new_id", newID).
			Msg("Delete of source record failed, removing the copy")

		if cerr := store.Delete(ctx, owner, to, newID); cerr != nil {
			log.Error().
				Err(cerr).
				Str("id", id).
				Str("new_id", newID).
				Msg("Compensation failed, record present in both collections")
			return newID, &ReclassifyError{
				Op: "compensate", From: from, To: to, ID: id,
				Err: errors.Join(fmt.Errorf("%w: %s in %s", ErrCompensationFailed, newID, to), err, cerr),
			}
		}
		return "", &ReclassifyError{Op: "delete", From: from, To: to, ID: id, Err: err}
	}

	log.Info().
		Str("from", string(from)).
		Str("to", string(to)).
		Str("id", id).
		Str("new_id", newID).
		Msg("Record reclassified")

	return newID, nil
}
