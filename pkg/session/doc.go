// Package session defines visitor sessions and their stores.
//
// Sessions are looked up by the opaque token carried in the session cookie.
// Three stores are provided:
//
//   - NewMemoryStore: process-local, backed by cache.Memory
//   - NewRedisStore: shared, backed by cache.Redis
//   - NewPostgresStore: durable; apply Migrations() with db.Migrate first
//
// Typed access goes through Value and ValueOr:
//
//	n := session.ValueOr(sess, "visits", 0.0)
//	sess.SetValue("visits", n+1)
package session
