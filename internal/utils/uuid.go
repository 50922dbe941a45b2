package utils

import "github.com/google/uuid"

// UUIDGenerator issues user identifiers. IDs are UUIDv7, so they sort by
// creation time; if the v7 clock source fails a random v4 is used instead.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns the canonical lowercase string form of a new UUID.
func (g *UUIDGenerator) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}
