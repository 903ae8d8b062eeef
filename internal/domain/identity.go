package domain

// TokenVerifier verifies a token and returns the authenticated user ID.
// Tokens are issued by an external identity system; this application only
// consumes them.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// IdentityProvider tracks the currently active owner and notifies
// subscribers whenever it changes. An empty identifier means logged out.
type IdentityProvider interface {
	// Set makes ownerID the active owner. Unchanged values do not notify.
	Set(ownerID string)
	// Clear logs the active owner out.
	Clear()
	// Current returns the active owner and whether one is set.
	Current() (string, bool)
	// Subscribe registers a callback invoked with the new owner on change.
	Subscribe(fn func(ownerID string))
}
