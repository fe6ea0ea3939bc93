// Package storage persists downloaded decks. A Sink receives the deck
// bytes under the service-assigned filename and reports where they landed:
// a local directory path or an s3:// URI.
package storage
