package dto

import "time"

// CodeResponse código de invitación serializado.
type CodeResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	CompanyID string    `json:"companyId"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CodesPage página de códigos emitidos por la empresa.
type CodesPage struct {
	Codes      []CodeResponse `json:"codes"`
	NextCursor *string        `json:"nextCursor"`
}
