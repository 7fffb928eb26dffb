package gate

import "context"

// Profile is a named permission set granted to a subject.
type Profile interface {
	Name() string
	HasPermission(requested Permission) bool
	Permissions() []Permission
}

// ProfileResolver maps a subject to its profile. Resolve returns (nil, nil)
// when the subject is valid but has no profile.
type ProfileResolver[S any] interface {
	Resolve(ctx context.Context, subject S) (Profile, error)
}

// StaticProfile is an in-memory Profile, used for the fixed role model and
// in tests.
type StaticProfile struct {
	name  string
	perms map[Permission]bool
}

// NewStaticProfile creates a profile holding exactly the given permissions.
func NewStaticProfile(name string, perms ...Permission) *StaticProfile {
	p := &StaticProfile{name: name, perms: make(map[Permission]bool, len(perms))}
	for _, perm := range perms {
		p.perms[perm] = true
	}
	return p
}

func (p *StaticProfile) Name() string { return p.name }

// HasPermission checks the requested permission against every held one,
// honoring wildcards.
func (p *StaticProfile) HasPermission(requested Permission) bool {
	for perm := range p.perms {
		if perm.Matches(requested) {
			return true
		}
	}
	return false
}

// Permissions lists the held permissions in no particular order.
func (p *StaticProfile) Permissions() []Permission {
	out := make([]Permission, 0, len(p.perms))
	for perm := range p.perms {
		out = append(out, perm)
	}
	return out
}

// StaticResolver resolves subjects from a fixed table.
type StaticResolver[S comparable] struct {
	profiles map[S]Profile
}

func NewStaticResolver[S comparable]() *StaticResolver[S] {
	return &StaticResolver[S]{profiles: make(map[S]Profile)}
}

// Set assigns a profile to a subject, replacing any previous assignment.
func (r *StaticResolver[S]) Set(subject S, profile Profile) {
	r.profiles[subject] = profile
}

func (r *StaticResolver[S]) Resolve(_ context.Context, subject S) (Profile, error) {
	return r.profiles[subject], nil
}
