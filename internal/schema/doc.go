// Package schema validates registry documents against the four embedded
// JSON Schemas (developer profile, agent identity, version set, and
// per-version specification). Schemas are compiled once per process and
// validation collects every violation for a document rather than stopping
// at the first.
package schema
