// internal/models/participant.go
package models

import "time"

// Participant is a registry entry mapping a chain address to a role and
// identity metadata. Entries are created only by the registry owner and are
// never deleted, only superseded.
type Participant struct {
	Address   string    `json:"address" gorm:"primaryKey;size:42"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Location  string    `json:"location" gorm:"size:255;not null"`
	Role      Role      `json:"role" gorm:"size:20;not null;index"`
	Verified  bool      `json:"verified" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RegistryState holds the single administrative owner address. Exactly one
// row exists; it is seeded at migration time and mutated only through an
// explicit ownership transfer.
type RegistryState struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	OwnerAddress string    `json:"owner_address" gorm:"size:42;not null"`
	UpdatedAt    time.Time `json:"updated_at"`
}
