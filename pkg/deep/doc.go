// Package deep decomposes a record-valued reactive node into a read-only tree
// of per-field nodes.
//
// Each field of a wrapped record is reachable through its own derived node, so
// a computation that reads user.address.city depends only on that path and not
// on unrelated siblings:
//
//	view := deep.Wrap(profile) // profile is a reactive.Readable[any] holding a record
//	city, _ := view.At("address.city")
//	city.Get()
//
// Fields whose value is a record when first navigated become nested views;
// other fields become read-only leaves. Nodes are created on first navigation
// and cached per path. A view never writes to the node it wraps.
package deep
