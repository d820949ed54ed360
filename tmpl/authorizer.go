package tmpl

import "context"

// Authorizer decides who may send from templates.
type Authorizer interface {
	// HasElevatedRights reports whether the caller may send from templates
	// at all.
	HasElevatedRights(ctx context.Context) bool

	// CanView reports whether the caller may read the referenced template.
	CanView(ctx context.Context, ref Reference) bool
}

// AllowAll grants everything. It suits trusted command line use.
type AllowAll struct{}

func (AllowAll) HasElevatedRights(context.Context) bool { return true }

func (AllowAll) CanView(context.Context, Reference) bool { return true }

// Spaces grants elevated rights to everyone and view rights on the listed
// spaces only.
type Spaces []string

func (Spaces) HasElevatedRights(context.Context) bool { return true }

func (s Spaces) CanView(_ context.Context, ref Reference) bool {
	for _, space := range s {
		if space == ref.Space {
			return true
		}
	}
	return false
}
