package model

type Share struct {
	ID         string `json:"id"`
	DocumentID string `json:"document_id"`
	Email      string `json:"email"`
	Token      string `json:"token"`
	ExpiresAt  int64  `json:"expires_at"`
	Revoked    int    `json:"revoked"`
	Ctime      int64  `json:"ctime"`
}
