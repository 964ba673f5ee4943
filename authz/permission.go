package authz

import "sort"

// Permission names an individual operation a handler may guard on.
type Permission string

const (
	PermCampaignsRead  Permission = "campaigns.read"
	PermCampaignsWrite Permission = "campaigns.write"
	PermContactsRead   Permission = "contacts.read"
	PermContactsWrite  Permission = "contacts.write"
	PermTemplatesRead  Permission = "templates.read"
	PermTemplatesWrite Permission = "templates.write"
	PermBroadcastsSend Permission = "broadcasts.send"
	PermChatRead       Permission = "chat.read"
	PermChatWrite      Permission = "chat.write"
	PermBillingRead    Permission = "billing.read"
	PermBillingWrite   Permission = "billing.write"
	PermMembersManage  Permission = "members.manage"
	PermSettingsManage Permission = "settings.manage"
	PermWebhooksManage Permission = "webhooks.manage"
	PermReportsRead    Permission = "reports.read"
)

// PermissionSet is an immutable set of permissions. The wildcard set reports
// every permission as held and ignores membership queries entirely.
type PermissionSet struct {
	all   bool
	perms map[Permission]struct{}
}

// NewPermissionSet builds a set from the given permissions
func NewPermissionSet(perms ...Permission) PermissionSet {
	m := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		m[p] = struct{}{}
	}
	return PermissionSet{perms: m}
}

// Wildcard returns the set that holds every permission
func Wildcard() PermissionSet {
	return PermissionSet{all: true}
}

// Has reports whether the set contains the permission
func (s PermissionSet) Has(p Permission) bool {
	if s.all {
		return true
	}
	_, ok := s.perms[p]
	return ok
}

// IsWildcard reports whether this is the full-catalog set
func (s PermissionSet) IsWildcard() bool {
	return s.all
}

// Len returns the number of explicit permissions; zero for the wildcard set
func (s PermissionSet) Len() int {
	return len(s.perms)
}

// Grant returns a copy of the set with the permission added. The receiver is
// not modified.
func (s PermissionSet) Grant(p Permission) PermissionSet {
	if s.all {
		return s
	}
	m := make(map[Permission]struct{}, len(s.perms)+1)
	for k := range s.perms {
		m[k] = struct{}{}
	}
	m[p] = struct{}{}
	return PermissionSet{perms: m}
}

// Deny returns a copy of the set with the permission removed. The receiver is
// not modified.
func (s PermissionSet) Deny(p Permission) PermissionSet {
	if s.all {
		return s
	}
	m := make(map[Permission]struct{}, len(s.perms))
	for k := range s.perms {
		if k != p {
			m[k] = struct{}{}
		}
	}
	return PermissionSet{perms: m}
}

// List returns the explicit permissions in sorted order. The wildcard set
// returns ["*"].
func (s PermissionSet) List() []string {
	if s.all {
		return []string{"*"}
	}
	out := make([]string, 0, len(s.perms))
	for p := range s.perms {
		out = append(out, string(p))
	}
	sort.Strings(out)
	return out
}
