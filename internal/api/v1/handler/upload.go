package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
)

const defaultContentType = "application/octet-stream"

// formFile limits the request body, parses the multipart form and returns the named file.
// The caller closes the file.
func formFile(w http.ResponseWriter, r *http.Request, field string, maxBytes int64) (multipart.File, *multipart.FileHeader, int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			return nil, nil, http.StatusRequestEntityTooLarge, errors.New("file exceeds the upload size limit")
		}
		return nil, nil, http.StatusBadRequest, errors.New("invalid multipart form: " + err.Error())
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, nil, http.StatusBadRequest, errors.New("missing form file \"" + field + "\"")
	}
	return file, header, 0, nil
}

func contentTypeOf(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return defaultContentType
}
