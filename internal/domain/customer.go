package domain

import "time"

// Customer is a directory entry that accounts reference by OwnerID. The
// directory is read-only at runtime; entries are created by seeding.
type Customer struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
