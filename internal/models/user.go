package models

import "time"

// User is the relational identity record. The password column stores a
// pgcrypto crypt() digest computed by the database, never plaintext.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Username  string    `json:"username" gorm:"type:varchar(100)"`
	Password  string    `json:"-" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Address is the postal record created alongside a User during
// registration. Email references User.Email and is deliberately not
// unique on its own.
type Address struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"index;type:varchar(255)"`
	Country   string    `json:"country" gorm:"type:varchar(100)"`
	City      string    `json:"city" gorm:"type:varchar(100)"`
	Street    string    `json:"street" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"created_at"`
}

// Registration carries the input of the atomic user+address write.
type Registration struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=1"`
	Country  string `json:"country" validate:"required"`
	City     string `json:"city"`
	Street   string `json:"street"`
}
