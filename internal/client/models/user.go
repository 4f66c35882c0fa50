// Package models defines the payload shapes exchanged with the effyDOC API.
package models

import "time"

// User is the server's representation of an account. It is owned by the
// auth session; feature code reads it and mutates it only through the
// profile-update operation.
type User struct {
	ID                   string                `json:"id"`
	Email                string                `json:"email"`
	FullName             string                `json:"full_name"`
	Role                 string                `json:"role"`
	Organization         string                `json:"organization"`
	AvatarURL            string                `json:"avatar_url,omitempty"`
	CreatedAt            time.Time             `json:"created_at"`
	LastLogin            *time.Time            `json:"last_login,omitempty"`
	NotificationSettings *NotificationSettings `json:"notification_settings,omitempty"`
	EmailSignature       string                `json:"email_signature,omitempty"`
}

// NotificationSettings mirrors the per-user notification preferences.
type NotificationSettings struct {
	DocumentViewed bool `json:"document_viewed"`
	DocumentSigned bool `json:"document_signed"`
	CommentAdded   bool `json:"comment_added"`
	WeeklyDigest   bool `json:"weekly_digest"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the register request body.
type Registration struct {
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Organization string `json:"organization,omitempty"`
	Role         string `json:"role,omitempty"`
}

// ProfileUpdate carries partial profile fields for PUT /users/me.
// Nil fields are omitted and left unchanged by the server.
type ProfileUpdate struct {
	FullName       *string `json:"full_name,omitempty"`
	Role           *string `json:"role,omitempty"`
	Organization   *string `json:"organization,omitempty"`
	AvatarURL      *string `json:"avatar_url,omitempty"`
	EmailSignature *string `json:"email_signature,omitempty"`
}

// AuthResponse is the envelope returned by login and register.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	User        User   `json:"user"`
}
