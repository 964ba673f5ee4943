package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/courierhq/courier-backend/models"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	t.Run("owner holds the full catalog", func(t *testing.T) {
		set := catalog.Role(models.RoleOwner)
		assert.True(t, set.Has(PermBillingWrite))
		assert.True(t, set.Has(PermSettingsManage))
		assert.Equal(t, 15, set.Len())
	})

	t.Run("admin lacks billing.write only", func(t *testing.T) {
		set := catalog.Role(models.RoleAdmin)
		assert.True(t, set.Has(PermBillingRead))
		assert.False(t, set.Has(PermBillingWrite))
		assert.True(t, set.Has(PermMembersManage))
		assert.Equal(t, 14, set.Len())
	})

	t.Run("manager works content but not members or billing", func(t *testing.T) {
		set := catalog.Role(models.RoleManager)
		assert.True(t, set.Has(PermCampaignsWrite))
		assert.True(t, set.Has(PermBroadcastsSend))
		assert.False(t, set.Has(PermMembersManage))
		assert.False(t, set.Has(PermBillingRead))
	})

	t.Run("agent is chat plus contact reads", func(t *testing.T) {
		set := catalog.Role(models.RoleAgent)
		assert.True(t, set.Has(PermChatRead))
		assert.True(t, set.Has(PermChatWrite))
		assert.True(t, set.Has(PermContactsRead))
		assert.False(t, set.Has(PermContactsWrite))
		assert.Equal(t, 3, set.Len())
	})

	t.Run("custom role starts empty", func(t *testing.T) {
		assert.Equal(t, 0, catalog.Role(models.RoleCustom).Len())
	})

	t.Run("agent permissions are a subset of owner", func(t *testing.T) {
		agent := catalog.Role(models.RoleAgent)
		owner := catalog.Role(models.RoleOwner)
		for _, p := range agent.List() {
			assert.True(t, owner.Has(Permission(p)))
		}
	})

	t.Run("unknown role resolves to the empty set", func(t *testing.T) {
		set := catalog.Role(models.MembershipRole("viewer"))
		assert.Equal(t, 0, set.Len())
		assert.False(t, set.Has(PermChatRead))
	})

	t.Run("platform authority never appears in the catalog", func(t *testing.T) {
		set := catalog.Role(models.RolePlatformAdmin)
		assert.Equal(t, 0, set.Len())
		assert.False(t, set.IsWildcard())
	})
}

func TestCatalog_Roles(t *testing.T) {
	roles := DefaultCatalog().Roles()

	assert.Len(t, roles, 5)
	assert.Contains(t, roles, models.RoleOwner)
	assert.Contains(t, roles, models.RoleCustom)
	assert.NotContains(t, roles, models.RolePlatformAdmin)
}
