package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testUser struct {
	id   int
	name string
}

func (u *testUser) ID() int {
	return u.id
}

func (u *testUser) Name() string {
	return u.name
}

type testEntity struct {
	authorID int
}

func (e *testEntity) AuthorID() int {
	return e.authorID
}

func TestRequireOwner(t *testing.T) {

	var entity = &testEntity{authorID: 1}

	assert.Equal(t, ErrAuthRequired, RequireOwner(nil, entity))
	assert.NoError(t, RequireOwner(&testUser{id: 1}, entity))

	// a foreign entity looks like a missing one
	assert.Equal(t, ErrNotFound, RequireOwner(&testUser{id: 2}, entity))
}
