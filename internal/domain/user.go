package domain

// User mirrors the external auth provider's account record. The backend only
// stores it so entity rows can hold a nullable reference; it never
// authenticates anyone.
type User struct {
	ID        int64  `db:"id"`
	Username  string `db:"username"`
	Email     string `db:"email"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Hash      string `db:"password_hash"`
}
