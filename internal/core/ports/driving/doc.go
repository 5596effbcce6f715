// Package driving defines the interfaces that infrastructure calls INTO core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The CLI depends on these interfaces and core services implement them.
//
//   - Scanner: Scans a user's repositories for translation files
//   - FollowingLister: Lists the accounts a user follows
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driving
