package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenixclinic/clinic-api/internal/model"
)

func TestUserListWhereEmpty(t *testing.T) {
	where, args := userListWhere(nil)
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = userListWhere(&model.UserFilters{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestUserListWhereFirstNameIsExactMatch(t *testing.T) {
	where, args := userListWhere(&model.UserFilters{FirstName: "Ana"})

	assert.Equal(t, "WHERE u.first_name = $1", where)
	require.Len(t, args, 1)
	// The raw name, not a pattern.
	assert.Equal(t, "Ana", args[0])
}

func TestUserListWhereCombinesConditions(t *testing.T) {
	start := model.NewDate(1980, 1, 1)
	end := model.NewDate(1990, 12, 31)
	where, args := userListWhere(&model.UserFilters{
		Role:           "doctor",
		FirstName:      "Ana",
		StartBirthDate: &start,
		EndBirthDate:   &end,
	})

	assert.Equal(t,
		"WHERE lower(r.name) = lower($1) AND u.first_name = $2 AND u.birth_date >= $3 AND u.birth_date <= $4",
		where)
	assert.Len(t, args, 4)
}

func TestUserListWhereIgnoresHalfOpenBirthRange(t *testing.T) {
	start := model.NewDate(1980, 1, 1)
	where, args := userListWhere(&model.UserFilters{StartBirthDate: &start})

	assert.Empty(t, where)
	assert.Empty(t, args)
}
