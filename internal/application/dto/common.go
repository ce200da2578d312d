package dto

// ErrorResponse cuerpo de error HTTP genérico.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
