package domain

// User is a learner account. User documents were imported from an earlier
// backend and carry mixed timestamp encodings (BSON dates, {seconds,
// nanoseconds} maps, numeric epochs, strings), so the timestamp fields stay
// untyped and are normalized by the analytics package at read time.
//
// Quiz attempt counts are never stored on the user; they are derived by
// joining against the user_quiz_attempts collection.
type User struct {
	ID          string `bson:"_id,omitempty" json:"id"`
	Name        string `bson:"name,omitempty" json:"name"`
	Surname     string `bson:"surname,omitempty" json:"surname"`
	Email       string `bson:"email,omitempty" json:"email"`
	CreatedAt   any    `bson:"createdAt,omitempty" json:"-"`
	LastLoginAt any    `bson:"lastLoginAt,omitempty" json:"-"`
	CountryCode string `bson:"countryCode,omitempty" json:"countryCode,omitempty"`
	CountryName string `bson:"countryName,omitempty" json:"countryName,omitempty"`
}
