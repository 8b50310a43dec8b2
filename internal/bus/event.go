package bus

import "time"

// Event kinds published by the state containers. Subscribers filter by
// namespace prefix ("auth." or "directory.").
const (
	KindLoggedIn  = "auth.logged_in"
	KindLoggedOut = "auth.logged_out"

	KindClientAdded     = "directory.client_added"
	KindClientUpdated   = "directory.client_updated"
	KindClientDeleted   = "directory.client_deleted"
	KindActivityAdded   = "directory.activity_added"
	KindQueryChanged    = "directory.query_changed"
	KindDirectorySeeded = "directory.seeded"
)

// Event represents a state change published on the bus.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}
