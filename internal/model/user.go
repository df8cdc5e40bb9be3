package model

// User is the credential record kept in a user's .config.json.
type User struct {
	Username     string `json:"-"`
	Email        string `json:"email"`
	PasswordHash string `json:"password"`
}
