// Package store assembles reactive stores out of features.
//
// A store is three disjoint sets of named members: state (writable cells),
// properties (read-only derived cells) and methods (callables). Features are
// applied strictly in order; each one sees the state and properties produced by
// the features before it and returns an extension with new members.
//
//	s, err := store.Build(
//	    store.WithState(record.Of("count", 0)),
//	    store.WithLinkedState(func(v store.View) store.Source {
//	        return store.Value(record.Of("doubled", store.Read[int](v, "count")*2))
//	    }),
//	    store.WithMethods(func(s *store.MethodScope) store.Methods {
//	        return store.Methods{
//	            "increment": func(...any) (any, error) {
//	                return nil, s.Set("count", store.Read[int](s, "count")+1)
//	            },
//	        }
//	    }),
//	)
//
// # Visibility
//
// State and property producers never see methods, whatever order features are
// listed in; only WithMethods factories receive a MethodScope that can call
// earlier methods and write state.
//
// # Names
//
// Every member name is unique across all three kinds. A feature that proposes
// a taken name fails the whole build with *DuplicateMemberError and no store is
// returned.
//
// # Linked State
//
// WithLinkedState derives a record from earlier members and splits it into one
// linked cell per key. Each key can be overridden with Set independently; the
// override holds until the derived record changes again.
package store
