package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SupplierRequest struct {
	Name          string  `json:"name"           validate:"required,min=1,max=200"`
	AFM           string  `json:"afm"            validate:"required,min=1,max=20"`
	Phone         *string `json:"phone"          validate:"omitempty,max=50"`
	Email         *string `json:"email"          validate:"omitempty,email"`
	Address       *string `json:"address"        validate:"omitempty,max=300"`
	ContactPerson *string `json:"contact_person" validate:"omitempty,max=200"`
	PaymentTerms  *string `json:"payment_terms"  validate:"omitempty,max=200"`
	Notes         *string `json:"notes"          validate:"omitempty,max=1000"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SupplierResponse struct {
	ID            uint    `json:"id"`
	OrgID         uint    `json:"org_id"`
	Name          string  `json:"name"`
	AFM           string  `json:"afm"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
	ContactPerson *string `json:"contact_person"`
	PaymentTerms  *string `json:"payment_terms"`
	Notes         *string `json:"notes"`
	IsActive      bool    `json:"is_active"`
}
