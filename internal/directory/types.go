package directory

import "time"

// ActivityType is the closed set of interaction kinds.
type ActivityType string

const (
	ActivityCall    ActivityType = "call"
	ActivityEmail   ActivityType = "email"
	ActivityMeeting ActivityType = "meeting"
	ActivityNote    ActivityType = "note"
)

// Valid reports whether t is one of the four known kinds.
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityCall, ActivityEmail, ActivityMeeting, ActivityNote:
		return true
	}
	return false
}

// ActivityTypes lists the valid kinds in display order.
func ActivityTypes() []ActivityType {
	return []ActivityType{ActivityCall, ActivityEmail, ActivityMeeting, ActivityNote}
}

// Activity is an interaction recorded against a client. Activities are
// append-only; they are never updated or deleted.
type Activity struct {
	ID          string       `json:"id"`
	Type        ActivityType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Date        time.Time    `json:"date"`
}

// Client is a record in the directory.
type Client struct {
	ID         string     `json:"id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Company    string     `json:"company,omitempty"`
	Position   string     `json:"position,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	Tags       []string   `json:"tags"`
	CreatedAt  time.Time  `json:"created_at"`
	Activities []Activity `json:"activities"`
}

// FullName returns "FirstName LastName", the sort key for name ordering.
func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

// HasTag reports whether the client carries the given tag.
func (c *Client) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy, so snapshots handed to views cannot alias
// store-owned slices.
func (c *Client) Clone() Client {
	out := *c
	out.Tags = append([]string(nil), c.Tags...)
	out.Activities = append([]Activity(nil), c.Activities...)
	return out
}

// ClientInput is the caller-supplied part of a new client. ID,
// CreatedAt and Activities are assigned by the store.
type ClientInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Company   string
	Position  string
	Notes     string
	Tags      []string
}

// ClientUpdate carries a partial update; nil fields are left untouched.
type ClientUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Company   *string
	Position  *string
	Notes     *string
	Tags      *[]string
}

// ActivityInput is the caller-supplied part of a new activity. ID and
// Date are assigned by the store.
type ActivityInput struct {
	Type        ActivityType
	Title       string
	Description string
}

// SortField selects the projection sort key.
type SortField string

const (
	SortByName    SortField = "name"
	SortByEmail   SortField = "email"
	SortByCreated SortField = "created_at"
)

// SortOrder selects the projection sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Query is the UI-facing query state layered over the collection.
type Query struct {
	SearchTerm   string    `json:"search_term"`
	SelectedTags []string  `json:"selected_tags"`
	SortBy       SortField `json:"sort_by"`
	SortOrder    SortOrder `json:"sort_order"`
	CurrentPage  int       `json:"current_page"`
	ItemsPerPage int       `json:"items_per_page"`
}

// DefaultQuery returns the initial query state: newest first, page 1.
func DefaultQuery(itemsPerPage int) Query {
	if itemsPerPage <= 0 {
		itemsPerPage = 10
	}
	return Query{
		SortBy:       SortByCreated,
		SortOrder:    SortDesc,
		CurrentPage:  1,
		ItemsPerPage: itemsPerPage,
	}
}
