package auth

import (
	"errors"
	"slices"
)

var ErrInvalidToken = errors.New("invalid token")

type Config struct {
	Enabled  bool
	Issuer   string
	JWKSURL  string
	Audience string
	// WriteRole, when set, is the realm role required to change the inventory.
	WriteRole string
}

type Principal struct {
	Issuer   string
	Subject  string
	Username string
	Audience any
	Roles    []string
	Claims   map[string]any
}

func (p Principal) HasRole(role string) bool {
	return slices.Contains(p.Roles, role)
}
