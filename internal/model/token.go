package model

// TokenUser is the user summary embedded in a token response.
type TokenUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenResponse represents a successful POST /token response.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	User        TokenUser `json:"user"`
}
