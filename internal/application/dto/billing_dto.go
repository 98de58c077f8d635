package dto

// CheckoutSessionResponse URL de redirección al checkout del proveedor.
type CheckoutSessionResponse struct {
	URL string `json:"url"`
}

// UploadResponse resultado de la subida de una imagen. Attached indica
// si la URL quedó ligada a la solicitud; puede ser false con la subida
// exitosa (inconsistencia aceptada, ver manejo de errores).
type UploadResponse struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Attached bool   `json:"attached"`
}
