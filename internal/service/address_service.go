package service

import (
	"context"
	"fmt"

	"sf-tree-identifier/internal/address"
)

// AddressService resolves addresses without touching the tree index.
type AddressService struct {
	resolver AddressResolver
}

// NewAddressService creates a new address service
func NewAddressService(resolver AddressResolver) *AddressService {
	return &AddressService{resolver: resolver}
}

// Resolve returns the canonical form of raw, e.g. "1468 valencia st".
func (s *AddressService) Resolve(ctx context.Context, raw string) (address.Address, error) {
	if err := ctx.Err(); err != nil {
		return address.Address{}, err
	}

	raw, err := cleanQuery(raw)
	if err != nil {
		return address.Address{}, err
	}

	addr, err := s.resolver.ResolveForQuery(raw)
	if err != nil {
		return address.Address{}, fmt.Errorf("service: failed to resolve %q: %w", raw, err)
	}

	return addr, nil
}
