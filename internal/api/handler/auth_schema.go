package handler

import "time"

// AuthTokenHeader carries the session token on a successful login.
const AuthTokenHeader = "auth-token"

// --- Request / Response types ---

// Request fields are pointers so an omitted key stays nil.

type registerRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type loginRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// envelope is the success body: {"error": null, "data": ...}.
type envelope struct {
	Error *string `json:"error"`
	Data  any     `json:"data"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type profileResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
