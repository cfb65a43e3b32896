package dto

// AccountResponse is the minimal account identity the gateway's auth layer
// issues and verifies tokens for. Account management itself lives outside
// this service; the gateway only trusts tokens minted for accounts it is
// told about.
type AccountResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
