package reports

import "gallery-admin/internal/domain/record"

const (
	StatusPending  = "pending"
	StatusResolved = "resolved"
)

// Report is a user complaint about a published artwork.
type Report struct {
	ID         int    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	ArtworkID  int    `gorm:"index" json:"artwork_id"`
	UserID     int    `json:"user_id"`
	Reason     string `json:"reason"`
	Details    string `json:"details,omitempty"`
	Status     string `json:"status"`
	CreatedAt  string `gorm:"column:created_at" json:"created_at,omitempty"`
	ResolvedAt string `json:"resolved_at,omitempty"`

	Extra record.Fields `gorm:"column:extra;serializer:json" json:"-"`
}

type reportJSON Report

func (r *Report) UnmarshalJSON(b []byte) error {
	var plain reportJSON
	extra, err := record.Decode(b, &plain)
	if err != nil {
		return err
	}
	*r = Report(plain)
	r.Extra = extra
	return nil
}

func (r Report) MarshalJSON() ([]byte, error) {
	return record.Encode(reportJSON(r), r.Extra)
}

func (Report) TableName() string { return "reports" }

func NextID(list []Report) int {
	highest := 0
	for _, r := range list {
		if r.ID > highest {
			highest = r.ID
		}
	}
	return highest + 1
}

func FindByID(list []Report, id int) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
