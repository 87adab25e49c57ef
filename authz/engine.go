package authz

import (
	"fmt"

	"github.com/adsboard-api/domain"
)

// Reason records which rule produced a decision
type Reason string

const (
	ReasonPublic          Reason = "public"
	ReasonAuthenticated   Reason = "authenticated"
	ReasonAdmin           Reason = "admin"
	ReasonOwner           Reason = "owner"
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonNotOwner        Reason = "not_owner"
	ReasonNotAdmin        Reason = "not_admin"
	ReasonNoRule          Reason = "no_rule"
)

// Decision represents the result of an authorization check
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Err converts a denial into a domain error: ErrUnauthenticated when no
// principal was present, ErrForbidden otherwise. Allowed decisions return nil.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	if d.Reason == ReasonUnauthenticated {
		return domain.ErrUnauthenticated
	}
	return fmt.Errorf("%w: %s", domain.ErrForbidden, d.Reason)
}

func allow(r Reason) Decision { return Decision{Allowed: true, Reason: r} }
func deny(r Reason) Decision  { return Decision{Allowed: false, Reason: r} }

// Engine evaluates a policy table. It holds no mutable state and is safe
// for concurrent use.
type Engine struct {
	table Table
}

// NewEngine creates an engine over the given table; a nil table means DefaultTable
func NewEngine(table Table) *Engine {
	if table == nil {
		table = DefaultTable
	}
	return &Engine{table: table}
}

// GrantFor returns the grant required for an action, if any
func (e *Engine) GrantFor(kind Kind, action Action) (Grant, bool) {
	g, ok := e.table[Rule{Kind: kind, Action: action}]
	return g, ok
}

// Decide returns whether p may perform action on a resource of kind owned
// by owner. Pass NoOwner when the resource does not exist yet.
func (e *Engine) Decide(p *Principal, kind Kind, action Action, owner Owner) Decision {
	grant, ok := e.GrantFor(kind, action)
	if !ok {
		if p == nil {
			return deny(ReasonUnauthenticated)
		}
		return deny(ReasonNoRule)
	}

	if grant == GrantPublic {
		return allow(ReasonPublic)
	}
	if p == nil {
		return deny(ReasonUnauthenticated)
	}
	if p.IsAdmin() {
		return allow(ReasonAdmin)
	}

	switch grant {
	case GrantAuthenticated:
		return allow(ReasonAuthenticated)
	case GrantOwnerOrAdmin:
		if owner.Known && owner.ID == p.ID {
			return allow(ReasonOwner)
		}
		return deny(ReasonNotOwner)
	case GrantAdmin:
		return deny(ReasonNotAdmin)
	default:
		return deny(ReasonNoRule)
	}
}

// Gate evaluates the part of a decision that does not depend on the
// resource: missing rules, anonymous callers and admin-only actions.
// Owner-scoped actions pass the gate for any authenticated principal and
// must be re-checked with Decide once the resource is loaded.
func (e *Engine) Gate(p *Principal, kind Kind, action Action) Decision {
	grant, ok := e.GrantFor(kind, action)
	if ok && grant == GrantOwnerOrAdmin && p != nil {
		if p.IsAdmin() {
			return allow(ReasonAdmin)
		}
		return allow(ReasonAuthenticated)
	}
	return e.Decide(p, kind, action, NoOwner)
}

// Authorize is Decide followed by Decision.Err
func (e *Engine) Authorize(p *Principal, kind Kind, action Action, owner Owner) error {
	return e.Decide(p, kind, action, owner).Err()
}
