package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Permission names carried in access tokens.
const (
	PermViewCatalog     = "view-catalog"
	PermManageCatalog   = "manage-catalog"
	PermManageCustomers = "manage-customers"
	PermViewInvoices    = "view-invoices"
	PermCreateInvoices  = "create-invoices"
	PermViewClosings    = "view-closings"
	PermCreateClosings  = "create-closings"
	PermPrint           = "print"
	PermManageUsers     = "manage-users"
)

// UserRole represents the role of an operator account
type UserRole int

const (
	RoleUser  UserRole = 0
	RoleAdmin UserRole = 1
)

var operatorPermissions = []string{
	PermViewCatalog,
	PermManageCustomers,
	PermViewInvoices,
	PermCreateInvoices,
	PermViewClosings,
	PermCreateClosings,
	PermPrint,
}

func (r UserRole) String() string {
	if r == RoleAdmin {
		return "admin"
	}
	return "user"
}

// Permissions returns the permissions granted by the role.
func (r UserRole) Permissions() []string {
	perms := make([]string, 0, len(operatorPermissions)+2)
	perms = append(perms, operatorPermissions...)
	if r == RoleAdmin {
		perms = append(perms, PermManageCatalog, PermManageUsers)
	}
	return perms
}

// ParseUserRole parses "admin" or "user".
func ParseUserRole(s string) (UserRole, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, nil
	case "user", "":
		return RoleUser, nil
	}
	return RoleUser, fmt.Errorf("unknown role %q", s)
}

func (r UserRole) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *UserRole) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*r = UserRole(i)
		return nil
	}
	parsed, err := ParseUserRole(str)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r UserRole) Value() (driver.Value, error) {
	return int64(r), nil
}

func (r *UserRole) Scan(value interface{}) error {
	if value == nil {
		*r = RoleUser
		return nil
	}
	switch v := value.(type) {
	case int64:
		*r = UserRole(v)
	case int32:
		*r = UserRole(v)
	case int:
		*r = UserRole(v)
	}
	return nil
}
