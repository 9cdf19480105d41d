package domain

// Actor is the capability interface the engine requires from the presentation
// collaborator's identity objects. The core never depends on anything beyond
// these four accessors, so any chat platform's user object can satisfy it
// with a thin adapter.
type Actor interface {
	// ID returns the platform-wide unique identifier of the actor.
	ID() string

	// DisplayName returns the name to cache on the ledger entry for
	// leaderboard rendering.
	DisplayName() string

	// AvatarURL returns an opaque reference to the actor's avatar. The core
	// passes it through to views without interpreting it.
	AvatarURL() string

	// Bot reports whether the actor is an automated account. Automated
	// accounts are not eligible transfer recipients.
	Bot() bool
}
