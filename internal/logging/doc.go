// Package logging carries the shared slog vocabulary for docsmith.
//
// It defines the canonical attribute keys and constructors (Operation,
// Service, Account, DocumentID, Requests, Applied) so every component logs
// the same field names, plus PII helpers that keep user identifiers out of
// routine logs: AnonymizeEmail hashes addresses into stable correlation
// tokens, Domain reduces them to their domain, and SanitizeToken replaces
// OAuth tokens with a length indicator.
//
// SlogAdapter bridges *slog.Logger to the small Logger interface that
// long-lived workers such as the batch dispatcher accept, so tests can
// substitute a capturing logger.
package logging
