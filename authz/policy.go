// Package authz decides whether a caller may perform an action on ads,
// reviews and users. Decisions are pure: they read only the principal and,
// when a resource exists, its owner ID.
package authz

import (
	"github.com/adsboard-api/models"
)

// Kind identifies the kind of resource being accessed
type Kind string

const (
	KindAd     Kind = "ad"
	KindReview Kind = "review"
	KindUser   Kind = "user"
)

// Action identifies what operation is being performed
type Action string

const (
	ActionList     Action = "list"
	ActionMine     Action = "mine"
	ActionRetrieve Action = "retrieve"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "partial_update"
	ActionDelete   Action = "destroy"
	ActionSetRole  Action = "set_role"
)

// Grant is the requirement an action places on the caller
type Grant int

const (
	// GrantPublic admits anyone, including anonymous callers
	GrantPublic Grant = iota + 1
	// GrantAuthenticated admits any authenticated principal
	GrantAuthenticated
	// GrantOwnerOrAdmin admits admins and the owner of the resource
	GrantOwnerOrAdmin
	// GrantAdmin admits admins only
	GrantAdmin
)

func (g Grant) String() string {
	switch g {
	case GrantPublic:
		return "public"
	case GrantAuthenticated:
		return "authenticated"
	case GrantOwnerOrAdmin:
		return "owner_or_admin"
	case GrantAdmin:
		return "admin"
	default:
		return "none"
	}
}

// Rule keys a policy entry
type Rule struct {
	Kind   Kind
	Action Action
}

// Table maps (kind, action) to the grant it requires. Actions missing
// from the table are denied.
type Table map[Rule]Grant

// DefaultTable is the board's access policy.
//
// Ad reads are public for listing only; retrieving a single ad needs an
// authenticated caller. Every review action needs authentication.
var DefaultTable = Table{
	{KindAd, ActionList}:     GrantPublic,
	{KindAd, ActionMine}:     GrantAuthenticated,
	{KindAd, ActionRetrieve}: GrantAuthenticated,
	{KindAd, ActionCreate}:   GrantAuthenticated,
	{KindAd, ActionUpdate}:   GrantOwnerOrAdmin,
	{KindAd, ActionDelete}:   GrantOwnerOrAdmin,

	{KindReview, ActionList}:     GrantAuthenticated,
	{KindReview, ActionRetrieve}: GrantAuthenticated,
	{KindReview, ActionCreate}:   GrantAuthenticated,
	{KindReview, ActionUpdate}:   GrantOwnerOrAdmin,
	{KindReview, ActionDelete}:   GrantOwnerOrAdmin,

	{KindUser, ActionCreate}:   GrantPublic,
	{KindUser, ActionList}:     GrantAuthenticated,
	{KindUser, ActionMine}:     GrantAuthenticated,
	{KindUser, ActionRetrieve}: GrantAuthenticated,
	{KindUser, ActionUpdate}:   GrantOwnerOrAdmin,
	{KindUser, ActionDelete}:   GrantAdmin,
	{KindUser, ActionSetRole}:  GrantAdmin,
}

// Principal is the authenticated identity attached to a request.
// Anonymous requests carry a nil *Principal.
type Principal struct {
	ID   uint
	Role models.Role
}

// IsAdmin reports whether the principal holds the admin role
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == models.RoleAdmin
}
