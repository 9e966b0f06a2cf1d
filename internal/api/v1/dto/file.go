package dto

// FileUploadResponseDTO is returned after a direct file upload
type FileUploadResponseDTO struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// FileDeleteDTO identifies an object by public URL or by key
type FileDeleteDTO struct {
	URL string `json:"url,omitempty" validate:"required_without=Key"`
	Key string `json:"key,omitempty" validate:"required_without=URL"`
}

// SignedURLResponseDTO carries a presigned GET URL
type SignedURLResponseDTO struct {
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expires_in"`
}

// ErrorResponseDTO is the JSON body of failed requests
type ErrorResponseDTO struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
