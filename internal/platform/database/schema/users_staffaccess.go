package schema

// UserStaffAccessTable represents the 'users.staffaccess' table.
//
// Rows map an email to a role override independent of the account table,
// so elevated access can be granted before a matching account exists.
type UserStaffAccessTable struct {
	Table     string
	Email     string
	Role      string
	GrantedBy string
	CreatedAt string
}

// UserStaffAccess is the schema definition for users.staffaccess
var UserStaffAccess = UserStaffAccessTable{
	Table:     "users.staffaccess",
	Email:     "email",
	Role:      "role",
	GrantedBy: "grantedby",
	CreatedAt: "createdat",
}
