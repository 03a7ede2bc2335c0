// Package storage defines the DocumentStore interface for persisting the
// assistant's logical stores (memory, reminders, journal, profile, rules,
// neural weights) as whole JSON documents.
package storage

import "encoding/json"

// Well-known document names. Each holds one whole-document JSON value.
const (
	DocMemory    = "memory"
	DocReminders = "reminders"
	DocJournal   = "journal"
	DocProfile   = "profile"
	DocRules     = "automation_rules"
	DocWeights   = "neural_weights"
	DocNotes     = "notes"
)

// DocumentStore stores named JSON documents with whole-document
// read-modify-write semantics. There are no partial updates, no schema
// versioning, and no migration path. Absence of a document is not an error:
// Load returns (nil, nil) and callers substitute their default shape.
type DocumentStore interface {
	// Load returns the raw document, or (nil, nil) if it does not exist.
	Load(name string) (json.RawMessage, error)

	// Save marshals v and replaces the whole document.
	Save(name string, v any) error

	// Close releases underlying resources.
	Close() error
}

// LoadInto loads a named document into out. When the document is absent or
// malformed, out is left untouched and ok is false; a malformed document is
// reported through err so the caller can log it, but callers are expected
// to fall back to defaults rather than fail.
func LoadInto(s DocumentStore, name string, out any) (ok bool, err error) {
	raw, err := s.Load(name)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}
