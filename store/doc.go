// Package store provides flat attribute storage for host objects.
//
// Every object kind (content items, taxonomy terms, accounts) has its own
// [AttributeStore] instance; keys never cross kinds. A store holds scalar or
// list values under string keys per object and can enumerate an object's keys
// matching a [Pattern].
//
// # Backends
//
//   - [DynamoStore] keeps one DynamoDB table per kind, partitioned by object id
//     with the attribute key as sort key.
//   - [PostgresStore] keeps one table per kind, with a kind-specific id column
//     (post_id, term_id, user_id) and JSON encoded values.
//   - [MemoryStore] keeps everything in process memory.
//
// Use [Stores] to route an object kind to its store:
//
//	stores := store.NewDynamoStores(client, store.DefaultConfig())
//	s, err := stores.For(store.KindPost)
//
// # Errors
//
//   - [ErrStoreUnavailable] - the backend could not be reached; wraps the cause
//   - [ErrUnknownKind] - no store is registered for an object kind
package store
