package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissionSet_Has(t *testing.T) {
	set := NewPermissionSet(PermChatRead, PermChatWrite)

	assert.True(t, set.Has(PermChatRead))
	assert.True(t, set.Has(PermChatWrite))
	assert.False(t, set.Has(PermBillingWrite))
	assert.Equal(t, 2, set.Len())
	assert.False(t, set.IsWildcard())
}

func TestPermissionSet_Wildcard(t *testing.T) {
	set := Wildcard()

	assert.True(t, set.IsWildcard())
	assert.True(t, set.Has(PermBillingWrite))
	assert.True(t, set.Has(Permission("anything.at.all")))
	assert.Equal(t, 0, set.Len())
	assert.Equal(t, []string{"*"}, set.List())
}

func TestPermissionSet_GrantAndDeny(t *testing.T) {
	t.Run("grant and deny return copies", func(t *testing.T) {
		base := NewPermissionSet(PermChatRead)

		granted := base.Grant(PermBillingWrite)
		assert.True(t, granted.Has(PermBillingWrite))
		assert.False(t, base.Has(PermBillingWrite), "receiver must not be modified")

		denied := granted.Deny(PermChatRead)
		assert.False(t, denied.Has(PermChatRead))
		assert.True(t, granted.Has(PermChatRead), "receiver must not be modified")
	})

	t.Run("deny of an absent permission is a no-op", func(t *testing.T) {
		base := NewPermissionSet(PermChatRead)
		denied := base.Deny(PermBillingWrite)
		assert.Equal(t, 1, denied.Len())
	})

	t.Run("wildcard ignores grant and deny", func(t *testing.T) {
		set := Wildcard().Deny(PermChatRead).Grant(PermBillingWrite)
		assert.True(t, set.IsWildcard())
		assert.True(t, set.Has(PermChatRead))
	})
}

func TestPermissionSet_List(t *testing.T) {
	set := NewPermissionSet(PermChatWrite, PermBillingRead, PermChatRead)

	assert.Equal(t, []string{"billing.read", "chat.read", "chat.write"}, set.List())
	assert.Empty(t, NewPermissionSet().List())
}
