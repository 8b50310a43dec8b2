package directory

// Persister is the serialize-on-mutate hook behind the store. The store
// calls it synchronously inside every mutation; a persister failure
// aborts the mutation before the in-memory state changes.
type Persister interface {
	// UpsertClient writes the client row (not its activities).
	UpsertClient(c *Client) error
	// DeleteClient removes the client row and its activities.
	DeleteClient(id string) error
	// InsertActivity appends an activity under the given client.
	InsertActivity(clientID string, a *Activity) error
	// LoadClients returns all clients with activities, in insertion order.
	LoadClients() ([]Client, error)

	// SaveQuery / LoadQuery mirror the UI query state. LoadQuery returns
	// (nil, nil) when no state has been saved yet.
	SaveQuery(q *Query) error
	LoadQuery() (*Query, error)

	// Seeded / MarkSeeded track whether the demo data was ever written,
	// so an intentionally emptied directory stays empty across restarts.
	Seeded() (bool, error)
	MarkSeeded() error
}
