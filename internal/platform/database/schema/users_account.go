package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table                string
	ID                   string
	Username             string
	Email                string
	Role                 string
	IsSuperuser          string
	ConfirmationCodeHash string
	Bio                  string
	FirstName            string
	LastName             string
	CreatedAt            string
	UpdatedAt            string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:                "users.account",
	ID:                   "id",
	Username:             "username",
	Email:                "email",
	Role:                 "role",
	IsSuperuser:          "issuperuser",
	ConfirmationCodeHash: "confirmationcodehash",
	Bio:                  "bio",
	FirstName:            "firstname",
	LastName:             "lastname",
	CreatedAt:            "createdat",
	UpdatedAt:            "updatedat",
}

// Columns returns the profile columns, excluding the confirmation code hash
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.Role, t.IsSuperuser,
		t.Bio, t.FirstName, t.LastName, t.CreatedAt, t.UpdatedAt,
	}
}
