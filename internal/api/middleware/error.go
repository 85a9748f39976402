package middleware

import (
	"github.com/emicklei/go-restful/v3"
)

// ErrorResponse is the JSON body returned for non-200 responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func HandleError(resp *restful.Response, err error, status int) {
	resp.WriteHeaderAndEntity(status, ErrorResponse{Error: err.Error()})
}
