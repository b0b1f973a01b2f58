package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type child struct {
	id   int64
	name string
}

type input struct {
	id   *int64
	name string
}

func idPtr(v int64) *int64 { return &v }

// store is an in-memory child table keyed by id.
type store struct {
	records map[int64]*child
	nextID  int64

	inserts int
	saves   int
	deletes int
}

func newStore(children ...*child) *store {
	s := &store{records: map[int64]*child{}, nextID: 100}
	for _, c := range children {
		s.records[c.id] = c
	}
	return s
}

func (s *store) existing() []*child {
	out := make([]*child, 0, len(s.records))
	for id := int64(0); id <= s.nextID; id++ {
		if c, ok := s.records[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

func (s *store) config() Config[*child, input] {
	return Config[*child, input]{
		ExistingID: func(c *child) int64 { return c.id },
		IncomingID: func(in input) *int64 { return in.id },
		Update: func(c *child, in input) bool {
			if c.name == in.name {
				return false
			}
			c.name = in.name
			return true
		},
		Insert: func(_ context.Context, in input) (*child, error) {
			s.inserts++
			s.nextID++
			c := &child{id: s.nextID, name: in.name}
			s.records[c.id] = c
			return c, nil
		},
		Save: func(_ context.Context, c *child) error {
			s.saves++
			s.records[c.id] = c
			return nil
		},
		Delete: func(_ context.Context, id int64) error {
			s.deletes++
			delete(s.records, id)
			return nil
		},
	}
}

func TestApplyUpdateInsertDelete(t *testing.T) {
	s := newStore(&child{id: 1, name: "A"}, &child{id: 2, name: "B"})

	incoming := []input{
		{id: idPtr(1), name: "A-modified"},
		{name: "C"},
	}

	result, err := Apply(context.Background(), s.existing(), incoming, s.config())
	require.NoError(t, err)

	require.Len(t, result, 2)
	assert.Equal(t, int64(1), result[0].id)
	assert.Equal(t, "A-modified", result[0].name)
	assert.Equal(t, "C", result[1].name)
	assert.NotZero(t, result[1].id)

	// B was not in the incoming list and must be gone.
	_, ok := s.records[2]
	assert.False(t, ok)
	assert.Equal(t, 1, s.saves)
	assert.Equal(t, 1, s.inserts)
	assert.Equal(t, 1, s.deletes)
}

func TestApplyIdempotent(t *testing.T) {
	s := newStore(&child{id: 1, name: "A"})

	incoming := []input{
		{id: idPtr(1), name: "A2"},
		{name: "B"},
	}

	first, err := Apply(context.Background(), s.existing(), incoming, s.config())
	require.NoError(t, err)
	require.Len(t, first, 2)

	// Replay with the identifiers returned from the first pass.
	replay := make([]input, 0, len(first))
	for _, c := range first {
		replay = append(replay, input{id: idPtr(c.id), name: c.name})
	}

	second, err := Apply(context.Background(), s.existing(), replay, s.config())
	require.NoError(t, err)

	require.Len(t, second, 2)
	assert.Len(t, s.records, 2)
	assert.Equal(t, 1, s.inserts, "replay must not insert duplicates")
	assert.Equal(t, 1, s.saves, "unchanged fields must not be re-saved")
	assert.Equal(t, 0, s.deletes)
}

func TestApplyUnknownIDTreatedAsNew(t *testing.T) {
	s := newStore(&child{id: 1, name: "A"})

	incoming := []input{
		{id: idPtr(1), name: "A"},
		{id: idPtr(999), name: "stale"},
	}

	result, err := Apply(context.Background(), s.existing(), incoming, s.config())
	require.NoError(t, err)

	require.Len(t, result, 2)
	assert.Equal(t, 1, s.inserts)
	// The claimed identifier is discarded in favor of a fresh one.
	assert.NotEqual(t, int64(999), result[1].id)
	_, ok := s.records[999]
	assert.False(t, ok)
}

func TestApplyEmptyIncomingDeletesAll(t *testing.T) {
	s := newStore(&child{id: 1, name: "A"}, &child{id: 2, name: "B"})

	result, err := Apply(context.Background(), s.existing(), nil, s.config())
	require.NoError(t, err)

	assert.Empty(t, result)
	assert.Empty(t, s.records)
	assert.Equal(t, 2, s.deletes)
}

func TestApplyInsertErrorAborts(t *testing.T) {
	s := newStore(&child{id: 1, name: "A"})
	cfg := s.config()
	boom := errors.New("insert failed")
	cfg.Insert = func(context.Context, input) (*child, error) { return nil, boom }

	_, err := Apply(context.Background(), s.existing(), []input{{name: "B"}}, cfg)
	assert.ErrorIs(t, err, boom)
	// No deletes happen once the diff errors out.
	assert.Equal(t, 0, s.deletes)
}
