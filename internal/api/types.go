package api

import "github.com/helpdesk-tools/deskctl/internal/model"

// Wire envelopes for the ticket API. Every endpoint answers with a
// success flag and an optional human message alongside its payload.

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    struct {
		ID    string     `json:"id"`
		Email string     `json:"email"`
		Name  string     `json:"name"`
		Role  model.Role `json:"role"`
	} `json:"user"`
}

type requestsResponse struct {
	envelope
	Requests []model.Request `json:"requests"`
}

type requestResponse struct {
	envelope
	Request *model.Request `json:"request"`
}

// CreateRequestInput is the body for creating a ticket. The server
// initializes the status to PENDING.
type CreateRequestInput struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    model.Category `json:"category"`
	Priority    model.Priority `json:"priority"`
}

type statusPatch struct {
	Status model.Status `json:"status"`
}

type createResponseRequest struct {
	RequestID string `json:"requestId"`
	Content   string `json:"content"`
}

type responseResponse struct {
	envelope
	Response *model.Response `json:"response"`
}

type usersResponse struct {
	envelope
	Users []model.User `json:"users"`
}

type userResponse struct {
	envelope
	User *model.User `json:"user"`
}

// CreateUserInput is the admin body for creating an account.
type CreateUserInput struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

// UpdateUserInput carries only the fields being changed; nil means leave
// as is.
type UpdateUserInput struct {
	Name     *string     `json:"name,omitempty"`
	Password *string     `json:"password,omitempty"`
	Role     *model.Role `json:"role,omitempty"`
	Active   *bool       `json:"active,omitempty"`
}

type passwordChange struct {
	NewPassword string `json:"newPassword"`
}
