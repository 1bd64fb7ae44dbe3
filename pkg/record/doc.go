// Package record provides Record, an immutable string-keyed value whose keys keep
// their insertion order.
//
// Records are the composite values that state features hold and that the deep
// package decomposes into per-field cells. Go maps have no stable iteration order,
// so anything that must enumerate keys deterministically goes through a Record:
//
//	r := record.Of("count", 0, "user", record.Of("name", "Ada"))
//	r.Keys()             // [count user]
//	r2 := r.With("count", 1) // r is unchanged
//
// Plain map[string]any values are accepted wherever a record is expected; their
// keys are ordered lexically.
package record
