// Package domain contains the core data types for the event scheduler.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

// Profile is a person that events can be scheduled for.
// Timezone is the profile's preferred display label; it never affects stored instants.
type Profile struct {
	ID       string
	Name     string
	Timezone string
}
