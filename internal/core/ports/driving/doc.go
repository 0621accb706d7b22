// Package driving defines the interfaces through which the outside world
// drives the core: the script compile pass, the crawl registry, session
// management, and the keyword dispatcher.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// Core services implement them; the CLI, the watcher, and the external
// crawler call them.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or service package
package driving
