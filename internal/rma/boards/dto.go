package boards

import "github.com/shopspring/decimal"

// List / detail payloads keep the field names the frontend already binds to.

type RmaListItem struct {
	ID            int64   `json:"id"`
	RmaNo         string  `json:"rmaNo"`
	Customer      *string `json:"customer"`
	Serial        string  `json:"serial"`
	Model         *string `json:"model"`
	Status        string  `json:"status"`
	CreatedDate   string  `json:"createdDate"`
	Technician    *string `json:"technician"`
	Board         *string `json:"board"`
	Face          *string `json:"face"`
	DefectSymptom *string `json:"defectSymptom"`
}

type RmaListResponse struct {
	Data  []RmaListItem `json:"data"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

type RmaDetail struct {
	ID               int64                `json:"id"`
	RmaNo            string               `json:"rmaNo"`
	Customer         *string              `json:"customer"`
	Serial           string               `json:"serial"`
	Model            *string              `json:"model"`
	Board            *string              `json:"board"`
	Status           string               `json:"status"`
	Technician       *string              `json:"technician"`
	CreatedDate      string               `json:"createdDate"`
	Qty              int                  `json:"qty"`
	DefectSymptomRaw *string              `json:"defectSymptomRaw"`
	DefectSymptomFin *string              `json:"defectSymptomFin"`
	ClearType        *string              `json:"clearType"`
	PaymentStatus    *string              `json:"paymentStatus"`
	InvoiceNo        *string              `json:"invoiceNo"`
	ClearDate        *string              `json:"clearDate"`
	CostUSD          *decimal.Decimal     `json:"costUsd,omitempty"`
}

type CreateRmaRequest struct {
	Customer string `json:"customer" binding:"required"`
	Serial   string `json:"serial" binding:"required"`
	Model    string `json:"model" binding:"required"`
	Status   string `json:"status,omitempty"`
}

type UpdateRmaRequest struct {
	Customer      *string          `json:"customer,omitempty"`
	Serial        *string          `json:"serial,omitempty"`
	Model         *string          `json:"model,omitempty"`
	Status        *string          `json:"status,omitempty"`
	ClearDate     *string          `json:"clearDate,omitempty"`
	ClearType     *string          `json:"clearType,omitempty"`
	PaymentStatus *string          `json:"paymentStatus,omitempty"`
	InvoiceNo     *string          `json:"invoiceNo,omitempty"`
	CostUSD       *decimal.Decimal `json:"costUsd,omitempty"`
}

// ValidateRequest carries the ordered serial batch from a scan/import session.
type ValidateRequest struct {
	Serials []string `json:"serials"`
}

// ValidatedBoard is the per-match projection the validation lookup returns.
// Unmatched serials simply have no entry.
type ValidatedBoard struct {
	ID          int64   `json:"id"`
	Serial      string  `json:"serial"`
	Model       *string `json:"model"`
	Customer    *string `json:"customer"`
	Status      string  `json:"status"`
	CreatedDate *string `json:"createdDate"`
}

type ConfirmClearRequest struct {
	IDs []int64 `json:"ids"`
}

type ConfirmClearResponse struct {
	Message string `json:"message"`
	Count   int64  `json:"count"`
}
