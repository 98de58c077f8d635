package dto

// CursorQuery paginación por cursor para listados. El cursor es opaco
// para el cliente: el id del último elemento de la página anterior.
type CursorQuery struct {
	Cursor string `query:"cursor"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
