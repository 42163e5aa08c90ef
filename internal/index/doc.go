// Package index aggregates validated developer document sets into the
// flattened output tree that the registry serves statically: a global agent
// index, a developer list, and per-developer, per-agent, and per-version
// projections. The aggregate is fully regenerated each run and its
// serialization is deterministic: identical validated input yields
// byte-identical output regardless of on-disk iteration order.
package index
