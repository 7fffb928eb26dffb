// Package gate answers "may this role perform this action on this resource?".
// Roles resolve to profiles (named permission sets); the Gate checks the
// resolved profile for a resource:action permission. The package knows
// nothing about the domain models and takes the subject type as a type
// parameter, so it works with raw role ids as well as richer session values.
package gate

import "context"

// Gate is the central authorization checkpoint. S is the subject type; a
// zero-value subject is always denied.
type Gate[S comparable] struct {
	resolver ProfileResolver[S]
}

// New creates a gate backed by the given profile resolver.
func New[S comparable](resolver ProfileResolver[S]) *Gate[S] {
	return &Gate[S]{resolver: resolver}
}

// Authorize returns nil if the subject's profile grants resource:action.
// Returns ErrDenied for a zero subject or a missing permission, ErrNoProfile
// if the subject does not resolve to any profile.
func (g *Gate[S]) Authorize(ctx context.Context, subject S, action Action, resource string) error {
	var zero S
	if subject == zero {
		return ErrDenied
	}
	profile, err := g.resolver.Resolve(ctx, subject)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrNoProfile
	}
	if !profile.HasPermission(NewPermission(resource, action)) {
		return ErrDenied
	}
	return nil
}

// Can is a convenience wrapper returning bool instead of error.
func (g *Gate[S]) Can(ctx context.Context, subject S, action Action, resource string) bool {
	return g.Authorize(ctx, subject, action, resource) == nil
}
