package accesscontrol

import "sort"

// PermissionSet is the set of capabilities granted to a role.
type PermissionSet map[Capability]struct{}

func (s PermissionSet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// List returns the capabilities in a stable order, mostly for responses and logs.
func (s PermissionSet) List() []Capability {
	out := make([]Capability, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Each role's grants are enumerated independently. Owner happens to be a
// superset of the others, but nothing relies on that.
var rolePermissions = map[Role][]Capability{
	RoleOwner: {
		SessionsCreate, SessionsView, SessionsEdit, SessionsDelete,
		WorkspacesCreate, WorkspacesView, WorkspacesEdit, WorkspacesDelete,
		BookingsCreate, BookingsManage,
		WaitlistJoin, WaitlistManage,
		UsersManage, ReportsView,
	},
	RoleExpert: {
		SessionsCreate, SessionsView, SessionsEdit,
		WorkspacesView,
		BookingsCreate,
		WaitlistJoin,
	},
	RoleClient: {
		SessionsView,
		WorkspacesView,
		BookingsCreate,
		WaitlistJoin,
	},
}

// PermissionsFor returns the capability set for a role. The function is pure:
// a fresh set is built on every call so callers can never mutate the table.
// An unrecognized role yields ErrUnknownRole and an empty set, so callers
// that ignore the error still deny everything.
func PermissionsFor(role Role) (PermissionSet, error) {
	caps, ok := rolePermissions[role]
	if !ok {
		return PermissionSet{}, ErrUnknownRole
	}
	set := make(PermissionSet, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set, nil
}

// Check reports whether the granted set satisfies the requirement. With
// multiple capabilities the check is a logical OR: a surface needing "at
// least one of these" passes when any single capability is present. An empty
// requirement never passes.
func Check(granted PermissionSet, required ...Capability) bool {
	for _, c := range required {
		if granted.Has(c) {
			return true
		}
	}
	return false
}
