package main

import (
	"context"
	"testing"

	"pc_house/internal/domain"
	"pc_house/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromoteAndLookupRole(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	_, err := st.InsertOne(ctx, store.Users, domain.User{Email: "first@pc.house"})
	require.NoError(t, err)

	role, err := lookupRole(ctx, st, "first@pc.house")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, role)

	res, err := promote(ctx, st, "first@pc.house")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ModifiedCount)

	role, err = lookupRole(ctx, st, "first@pc.house")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, role)
}

func TestPromoteUnknownAccount(t *testing.T) {
	st := store.NewMemoryStore()
	_, err := promote(context.Background(), st, "ghost@pc.house")
	assert.Error(t, err)

	_, err = lookupRole(context.Background(), st, "ghost@pc.house")
	assert.Error(t, err)
}
