package model

type Asset struct {
	ID               string `json:"id"`
	UserID           string `json:"user_id"`
	Filename         string `json:"filename"`
	OriginalFilename string `json:"original_filename"`
	MimeType         string `json:"mime_type"`
	SizeBytes        int64  `json:"size_bytes"`
	StoreKey         string `json:"store_key"`
	Ctime            int64  `json:"ctime"`
}
