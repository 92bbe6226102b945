package middleware

import "context"

type personKey struct{}

// WithPerson stamps the authenticated person onto the request context.
func WithPerson(ctx context.Context, personID int64) context.Context {
	return context.WithValue(ctx, personKey{}, personID)
}

// PersonID reports the authenticated person, if any.
func PersonID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(personKey{}).(int64)
	return id, ok
}
