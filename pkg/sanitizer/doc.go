// Package sanitizer normalizes free-text input before it reaches validation and the
// reservation store.
//
// All functions are idempotent: applying them twice yields the same result. They never
// fail; input that cannot be salvaged collapses to an empty string, which validation
// then rejects.
//
// Normalization includes:
//   - Guest names: drop control characters, collapse whitespace, trim, compose accents (NFC)
//   - Room types: collapse whitespace, trim (case is resolved against the inventory)
//   - Search queries: trim, compose accents, Unicode case fold
package sanitizer
