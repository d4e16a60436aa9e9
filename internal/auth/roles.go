package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/spec-kit/helpdesk/internal/domain"
)

const (
	objectTicket       = "ticket"
	actionUpdateStatus = "update_status"
)

// Decision reasons.
const (
	ReasonPrivilegedRole = "privileged role"
	ReasonOwner          = "ticket owner"
	ReasonNotOwner       = "not ticket owner"
)

const roleModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  string
}

// Policy decides which identities may act on tickets they do not own.
// Agents may change any ticket's status; admins inherit every agent grant.
type Policy struct {
	enforcer *casbin.Enforcer
}

// NewPolicy builds the role policy. The enforcer is read-only once built.
func NewPolicy() (*Policy, error) {
	m, err := model.NewModelFromString(roleModel)
	if err != nil {
		return nil, fmt.Errorf("load role model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("build enforcer: %w", err)
	}
	if _, err := enforcer.AddPolicy(string(domain.RoleAgent), objectTicket, actionUpdateStatus); err != nil {
		return nil, err
	}
	if _, err := enforcer.AddGroupingPolicy(string(domain.RoleAdmin), string(domain.RoleAgent)); err != nil {
		return nil, err
	}
	return &Policy{enforcer: enforcer}, nil
}

// CanUpdateStatus allows privileged roles on any ticket and everyone else on their own.
func (p *Policy) CanUpdateStatus(identity domain.Identity, ownerID int64) Decision {
	if p.roleGranted(identity.Role, actionUpdateStatus) {
		return Decision{Allowed: true, Reason: ReasonPrivilegedRole}
	}
	if identity.UserID == ownerID {
		return Decision{Allowed: true, Reason: ReasonOwner}
	}
	return Decision{Allowed: false, Reason: ReasonNotOwner}
}

func (p *Policy) roleGranted(role domain.Role, action string) bool {
	if p == nil || p.enforcer == nil || !role.Valid() {
		return false
	}
	allowed, err := p.enforcer.Enforce(string(role), objectTicket, action)
	return err == nil && allowed
}
