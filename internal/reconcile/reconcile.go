// Package reconcile synchronizes a parent's persisted child collection with
// an incoming desired list: matched records are updated in place, unmatched
// incoming records are inserted, and persisted records absent from the
// incoming list are deleted. The same algorithm serves patient contacts and
// appointment diagnoses/recipes.
package reconcile

import "context"

// Config parameterizes the diff for one entity pair. E is the persisted
// record type, I the incoming record type.
type Config[E any, I any] struct {
	// ExistingID extracts the stored identifier of a persisted record.
	ExistingID func(E) int64
	// IncomingID extracts the identifier an incoming record claims to
	// reference. Nil means "new".
	IncomingID func(I) *int64
	// Update copies the mutable fields of the incoming record onto the
	// persisted one and reports whether anything actually changed.
	Update func(E, I) bool
	// Insert persists the incoming record as a new child of the parent and
	// returns the stored form.
	Insert func(context.Context, I) (E, error)
	// Save persists an updated existing record.
	Save func(context.Context, E) error
	// Delete removes a persisted record by identifier.
	Delete func(context.Context, int64) error
}

// Apply runs the diff and returns the finalized child set. An incoming
// identifier that matches nothing persisted is not an error: the record is
// inserted as new and the claimed identifier discarded. Callers are expected
// to invoke Apply inside a single storage transaction so the adjustments are
// all-or-nothing.
func Apply[E any, I any](ctx context.Context, existing []E, incoming []I, cfg Config[E, I]) ([]E, error) {
	byID := make(map[int64]E, len(existing))
	for _, e := range existing {
		byID[cfg.ExistingID(e)] = e
	}

	kept := make(map[int64]bool, len(incoming))
	result := make([]E, 0, len(incoming))

	for _, in := range incoming {
		id := cfg.IncomingID(in)
		if id != nil {
			if e, ok := byID[*id]; ok {
				if cfg.Update(e, in) {
					if err := cfg.Save(ctx, e); err != nil {
						return nil, err
					}
				}
				kept[*id] = true
				result = append(result, e)
				continue
			}
		}

		created, err := cfg.Insert(ctx, in)
		if err != nil {
			return nil, err
		}
		result = append(result, created)
	}

	for _, e := range existing {
		id := cfg.ExistingID(e)
		if !kept[id] {
			if err := cfg.Delete(ctx, id); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}
