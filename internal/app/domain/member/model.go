package member

// Member is a directory record managed through the member API.
type Member struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
	Level int    `db:"level" json:"level"`
}
