package entity

import "time"

// User is a row of the users table. PasswordHash never leaves the service layer.
type User struct {
	ID           int64     `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"firstName"`
	LastName     string    `db:"last_name" json:"lastName"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Phone        *string   `db:"phone" json:"phone"`
	Address      *string   `db:"address" json:"address"`
	City         *string   `db:"city" json:"city"`
	ZipCode      *string   `db:"zip_code" json:"zipCode"`
	Newsletter   bool      `db:"newsletter" json:"newsletter"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// ProfileUpdate carries the mutable profile fields; nil means unchanged.
// Email and password cannot be changed through it.
type ProfileUpdate struct {
	FirstName  *string
	LastName   *string
	Phone      *string
	Address    *string
	City       *string
	ZipCode    *string
	Newsletter *bool
}

// Empty reports whether no field is set.
func (p ProfileUpdate) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Phone == nil && p.Address == nil &&
		p.City == nil && p.ZipCode == nil && p.Newsletter == nil
}
