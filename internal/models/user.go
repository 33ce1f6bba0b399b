package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a dashboard account. Passwords are stored and compared as given.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id" yaml:"-"`
	Email    string             `bson:"email" json:"email" yaml:"email"`
	Password string             `bson:"password" json:"-" yaml:"password"`
	Name     string             `bson:"name,omitempty" json:"name,omitempty" yaml:"name"`
}

// PasswordMatches reports whether the supplied password equals the stored one.
func (u *User) PasswordMatches(password string) bool {
	return u.Password != "" && u.Password == password
}
