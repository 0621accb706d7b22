// Package domain contains the core business entities for the botscript
// keyword engine: crawl records for external resources, conversation
// sessions, keyword invocations, and the message value objects handed to
// gateways. It has no dependencies on adapters or services.
package domain
