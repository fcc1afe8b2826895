// Package store implements the local record store: one JSON-serialized slot
// per logical collection, written whole on every change and rehydrated at
// startup. There are no partial writes and no versioning of the persisted
// shape.
package store

// KeyPrefix namespaces every slot so unrelated data in a shared backend
// (Redis database, sqlite file) cannot collide with ours.
const KeyPrefix = "ecofuel_"

// Recognized collection keys.
const (
	KeyMachines = "machines"
	KeyUsers    = "users"
	KeyFuelings = "fuelings"
	KeyRefills  = "refills"
	KeyLogs     = "logs"
	KeyTank     = "tank"
	KeySession  = "user" // current-session pointer
)

// RecordStore persists one named slot at a time. Write replaces the slot's
// entire value; Read reports found=false when the slot has never been
// written, letting the caller fall back to a documented default.
type RecordStore interface {
	Read(key string, v any) (found bool, err error)
	Write(key string, v any) error
}
