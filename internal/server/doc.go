// Package server implements the crmstock HTTP API and its SQLite store.
//
// Owns:
//   - HTTP routing, handlers, and request/response contracts
//   - Identifier allocation (gap-filling, see SQLiteStore.AllocateID)
//   - Credential bootstrap and verification
//   - Schema migrations
//
// Does not own:
//   - Domain record types and input field schemas (internal/records)
//   - Import client logic (internal/client)
//
// Invariants:
//   - JSON responses are written via writeJSON only
//   - Store error text never reaches the client; handlers log it and
//     return a generic message
//   - Login rejects unknown users and wrong secrets with one signal
package server
