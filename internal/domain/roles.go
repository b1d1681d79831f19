package domain

import (
	"database/sql/driver"
	"fmt"

	"github.com/lib/pq"
)

// Role is an authorization tag carried by users and principals.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleUser      Role = "user"
	RoleSuperUser Role = "superUser"
)

// ValidRoles lists every role the system knows.
var ValidRoles = []Role{RoleAdmin, RoleUser, RoleSuperUser}

// DefaultRoles is assigned to users created without roles.
func DefaultRoles() Roles {
	return Roles{RoleUser}
}

func ParseRole(s string) (Role, error) {
	for _, r := range ValidRoles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Roles is a set of roles stored as a Postgres text[] column.
type Roles []Role

func (rs Roles) Contains(role Role) bool {
	for _, r := range rs {
		if r == role {
			return true
		}
	}
	return false
}

// Overlaps reports whether the two sets share at least one role.
func (rs Roles) Overlaps(other Roles) bool {
	for _, r := range other {
		if rs.Contains(r) {
			return true
		}
	}
	return false
}

func (rs Roles) Strings() []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}

// Validate rejects unknown roles.
func (rs Roles) Validate() error {
	for _, r := range rs {
		if _, err := ParseRole(string(r)); err != nil {
			return err
		}
	}
	return nil
}

// Value implements driver.Valuer using the pq text[] encoding.
func (rs Roles) Value() (driver.Value, error) {
	if rs == nil {
		return pq.StringArray{}.Value()
	}
	return pq.StringArray(rs.Strings()).Value()
}

// Scan implements sql.Scanner.
func (rs *Roles) Scan(src interface{}) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return fmt.Errorf("scan roles: %w", err)
	}
	out := make(Roles, len(arr))
	for i, s := range arr {
		out[i] = Role(s)
	}
	*rs = out
	return nil
}
