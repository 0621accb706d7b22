// Package services contains the core business logic: the crawl registry,
// session management, the script compile pass, and the keyword dispatcher.
// Services depend only on domain types and port interfaces.
package services
