package forge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomeConstructors(t *testing.T) {
	missing := Missing(Account{Email: "a@x.com"})
	assert.Equal(t, OutcomeMissing, missing.Type)
	require.NotNil(t, missing.Desired)
	assert.Nil(t, missing.Observed)

	unexpected := Unexpected[Account]()
	assert.Equal(t, OutcomeUnexpected, unexpected.Type)
	assert.Nil(t, unexpected.Desired)
	assert.Nil(t, unexpected.Observed)

	diverged := Diverged(Account{Email: "new"}, Account{Email: "old"})
	assert.Equal(t, OutcomeDiverged, diverged.Type)
	require.NotNil(t, diverged.Desired)
	require.NotNil(t, diverged.Observed)
	assert.Equal(t, "new", diverged.Desired.Email)
	assert.Equal(t, "old", diverged.Observed.Email)
}

func TestOutcomeSetPreservesInsertionOrder(t *testing.T) {
	set := NewOutcomeSet[string, Account]()
	assert.True(t, set.Empty())

	set.Put("zoe", Unexpected[Account]())
	set.Put("amy", Unexpected[Account]())
	set.Put("bea", Unexpected[Account]())

	assert.Equal(t, []string{"zoe", "amy", "bea"}, set.Keys())
	assert.Equal(t, 3, set.Len())
	assert.False(t, set.Empty())
}

func TestOutcomeSetRePutKeepsPosition(t *testing.T) {
	set := NewOutcomeSet[string, Account]()
	set.Put("zoe", Unexpected[Account]())
	set.Put("amy", Unexpected[Account]())
	set.Put("zoe", Missing(Account{Email: "z@x.com"}))

	assert.Equal(t, []string{"zoe", "amy"}, set.Keys())
	outcome, ok := set.Get("zoe")
	require.True(t, ok)
	assert.Equal(t, OutcomeMissing, outcome.Type)
}

func TestOutcomeSetGetAbsentKey(t *testing.T) {
	set := NewOutcomeSet[RepoKey, RepoSpec]()
	_, ok := set.Get(RepoKey{Owner: "dave", Name: "proj"})
	assert.False(t, ok)
}
