package request

// SignInRequest is the request body for signing in.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
