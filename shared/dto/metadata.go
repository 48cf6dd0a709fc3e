package dto

import (
	"rental/shared/constant"
	"rental/shared/model"
	"rental/shared/timezone"
)

// Metadata is the audit block of every resource response. ModifiedAt is
// empty until the record is first changed.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at,omitempty"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(source model.Metadata) {
	m.CreatedAt = timezone.Format(source.CreatedAt, constant.DateFormat)
	m.CreatedBy = source.CreatedBy
	m.ModifiedBy = source.ModifiedBy
	m.ModifiedAt = ""

	if !source.ModifiedAt.IsZero() {
		m.ModifiedAt = timezone.Format(source.ModifiedAt, constant.DateFormat)
	}
}
