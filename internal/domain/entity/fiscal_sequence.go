package entity

import "time"

// FiscalSequence is the last number handed out for a numbering series
// (invoice numbers per year, NCF per prefix).
type FiscalSequence struct {
	Series    string    `gorm:"size:50;primaryKey" json:"series"`
	LastValue int64     `gorm:"not null;default:0" json:"last_value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the FiscalSequence model
func (FiscalSequence) TableName() string {
	return "fiscal_sequences"
}
