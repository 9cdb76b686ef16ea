package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse estado del servicio y de sus tablas de referencia.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
