package models

// User is an account held in the credentials file.
type User struct {
	Username     string `yaml:"-" json:"username"`
	PasswordHash string `yaml:"password" json:"-"`
	DisplayName  string `yaml:"name" json:"name"`
}
