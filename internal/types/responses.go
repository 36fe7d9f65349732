package types

type AuthResponse struct {
	AccessToken string `json:"accessToken"`
}

type FileItemResponse struct {
	S3Key string `json:"s3Key"`
	URL   string `json:"url"`
}
