// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CrawlRecordStore: crawl-record persistence
//   - SessionStore: session persistence
//   - ChannelAdapter: channel-specific rendering and sending
//   - ConfigStore: application configuration
//
// # External Collaborator Interfaces
//
// The core calls these but never implements them; real implementations
// live with the mail server, the search index and the SMS provider:
//
//   - MailGateway: sent-message lookup and draft storage
//   - MessageGateway: short-message dispatch
//   - SearchEngine: collection-scoped content search
//   - CodeImageGenerator: QR/image artifact generation
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
