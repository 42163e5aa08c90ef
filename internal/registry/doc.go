// Package registry loads and validates the source tree of the decentralized
// agent registry. Each developer owns a folder of YAML documents (profile,
// agent identity, version set, per-version specifications); the package
// parses them, validates each file against its schema, and cross-checks the
// referential invariants that no single-file schema can express. Validation
// is scoped per developer: one developer's violations never block another's.
package registry
