// internal/app/features/auth/types.go
package auth

import "go.mongodb.org/mongo-driver/bson/primitive"

type registerRequest struct {
	FullName         string `json:"fullname"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	RepeatedPassword string `json:"repeated_password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// credentialResponse is returned by both registration and login: the
// opaque bearer token plus enough identity for the client to render
// the signed-in state.
type credentialResponse struct {
	Token    string             `json:"token"`
	FullName string             `json:"fullname"`
	Email    string             `json:"email"`
	UserID   primitive.ObjectID `json:"user_id"`
}

// Password hashing is bcrypt; 72 bytes is bcrypt's input ceiling.
const (
	minPasswordLen = 8
	maxPasswordLen = 72
)
