package models

import "time"

// Document is the summary representation returned by the documents API.
// Section content, multimedia and analytics stay server-side; the client
// only lists, opens and manages documents.
type Document struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Status       string    `json:"status"`
	Organization string    `json:"organization"`
	OwnerID      string    `json:"owner_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// DocumentCreate is the request body for POST /documents.
type DocumentCreate struct {
	Title        string `json:"title"`
	Organization string `json:"organization,omitempty"`
	Content      string `json:"content,omitempty"`
}

// DocumentUpdate carries partial document fields for PUT /documents/{id}.
type DocumentUpdate struct {
	Title  *string `json:"title,omitempty"`
	Status *string `json:"status,omitempty"`
}

// ListParams narrows GET /documents results.
type ListParams struct {
	Status string
	Search string
	Limit  int
}
