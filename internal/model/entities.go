package model

import "time"

// Owner is the embedded view of a ticket's owning client as the API
// returns it inside a request payload.
type Owner struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Response is a message appended to a ticket. Responses are append-only:
// once created they are never edited, reordered, or deleted.
type Response struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    string    `json:"userId,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
}

// Request is a support ticket. The owning user is set at creation and
// immutable afterward. Responses may be empty but are always present.
type Request struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    Category   `json:"category"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	User        *Owner     `json:"user,omitempty"`
	Responses   []Response `json:"responses"`
}

// OwnedBy reports whether the ticket belongs to the given user ID.
func (r *Request) OwnedBy(userID string) bool {
	return r.User != nil && r.User.ID == userID
}

// User is a server-owned account record as listed by the admin endpoints.
// Active gates authentication server-side; the client only displays and
// toggles it.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session is the locally held identity of the authenticated user plus the
// opaque bearer credential obtained at login. Absence of a session means
// anonymous.
type Session struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Role    Role      `json:"role"`
	Token   string    `json:"token"`
	SavedAt time.Time `json:"saved_at"`
}
