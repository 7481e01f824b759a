package models

import "time"

// User is a registered customer. Records are created once by registration
// and never updated afterwards.
type User struct {
	// ID is a UUIDv7 assigned at registration.
	ID string `json:"id"`

	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	Occupation string `json:"occupation"`
	Phone      string `json:"phone"`
	Age        int    `json:"age"`
	BirthYear  int    `json:"birthYear"`
	IDType     string `json:"idType"`

	// IDDocumentRef is the store key holding the uploaded ID document.
	IDDocumentRef string `json:"idDocumentRef"`

	// PasswordDigest is a salted one-way digest of the password.
	// Plaintext is never stored.
	PasswordDigest string `json:"passwordDigest"`

	CreatedAt time.Time `json:"createdAt"`
}

// Profile is the registration input: every user attribute the customer
// types in, without identifiers or derived values.
type Profile struct {
	FullName   string
	Email      string
	Address    string
	Occupation string
	Phone      string
	Age        int
	BirthYear  int
	IDType     string
}

// IDDocument is an uploaded identity document.
type IDDocument struct {
	Name string `json:"name"`
	// MIMEType is the type declared by the uploader. When Content is present
	// the detected type takes precedence.
	MIMEType string `json:"mimeType"`
	Size     int64  `json:"size"`
	Content  []byte `json:"content"`
}
