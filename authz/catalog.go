package authz

import "github.com/courierhq/courier-backend/models"

// Catalog maps membership roles to their base permission sets. It is built
// once at startup and never mutated afterwards; per-user overrides are layered
// on top by the permission resolver, not here.
type Catalog struct {
	roles map[models.MembershipRole]PermissionSet
}

// DefaultCatalog returns the built-in role catalog.
func DefaultCatalog() *Catalog {
	return &Catalog{
		roles: map[models.MembershipRole]PermissionSet{
			models.RoleOwner: NewPermissionSet(
				PermCampaignsRead, PermCampaignsWrite,
				PermContactsRead, PermContactsWrite,
				PermTemplatesRead, PermTemplatesWrite,
				PermBroadcastsSend,
				PermChatRead, PermChatWrite,
				PermBillingRead, PermBillingWrite,
				PermMembersManage, PermSettingsManage,
				PermWebhooksManage, PermReportsRead,
			),
			models.RoleAdmin: NewPermissionSet(
				PermCampaignsRead, PermCampaignsWrite,
				PermContactsRead, PermContactsWrite,
				PermTemplatesRead, PermTemplatesWrite,
				PermBroadcastsSend,
				PermChatRead, PermChatWrite,
				PermBillingRead,
				PermMembersManage, PermSettingsManage,
				PermWebhooksManage, PermReportsRead,
			),
			models.RoleManager: NewPermissionSet(
				PermCampaignsRead, PermCampaignsWrite,
				PermContactsRead, PermContactsWrite,
				PermTemplatesRead, PermTemplatesWrite,
				PermBroadcastsSend,
				PermChatRead, PermChatWrite,
				PermReportsRead,
			),
			models.RoleAgent: NewPermissionSet(
				PermContactsRead,
				PermChatRead, PermChatWrite,
			),
			// Deployments that need a bespoke role configure it on top of this
			// empty base via overrides.
			models.RoleCustom: NewPermissionSet(),
		},
	}
}

// Role returns the base permission set for a role. Unknown roles get the
// empty set; platform authority never consults the catalog.
func (c *Catalog) Role(role models.MembershipRole) PermissionSet {
	if set, ok := c.roles[role]; ok {
		return set
	}
	return NewPermissionSet()
}

// Roles returns the roles the catalog knows about.
func (c *Catalog) Roles() []models.MembershipRole {
	out := make([]models.MembershipRole, 0, len(c.roles))
	for r := range c.roles {
		out = append(out, r)
	}
	return out
}
