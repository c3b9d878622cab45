package works

import "gallery-admin/internal/domain/record"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Artwork is one user submission as stored in submissions.json.
// Optional text fields decode to "" when absent.
type Artwork struct {
	ID     int `gorm:"primaryKey;autoIncrement:false" json:"id"`
	UserID int `gorm:"index" json:"user_id,omitempty"`

	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	ArtistName  string `gorm:"column:artist_name" json:"artist_name,omitempty"`
	Type        string `json:"type,omitempty"`
	Period      string `json:"period,omitempty"`

	Status Status `gorm:"type:varchar(20);index" json:"status,omitempty"`

	Location          string `json:"location,omitempty"` // "lat,lng"
	LocationSensitive bool   `json:"location_sensitive"`
	LocationNotes     string `json:"location_notes,omitempty"`

	ImageURL string   `gorm:"column:image_url" json:"image_url,omitempty"`
	Images   []string `gorm:"serializer:json" json:"images,omitempty"`

	CreatedAt  string `gorm:"column:created_at" json:"created_at,omitempty"`
	ApprovedAt string `json:"approved_at,omitempty"`
	ApprovedBy int    `json:"approved_by,omitempty"`
	RejectedAt string `json:"rejected_at,omitempty"`

	// Extra holds the keys this struct does not model so they survive a rewrite.
	Extra record.Fields `gorm:"column:extra;serializer:json" json:"-"`
}

type artworkJSON Artwork

func (a *Artwork) UnmarshalJSON(b []byte) error {
	var plain artworkJSON
	extra, err := record.Decode(b, &plain)
	if err != nil {
		return err
	}
	*a = Artwork(plain)
	a.Extra = extra
	return nil
}

func (a Artwork) MarshalJSON() ([]byte, error) {
	return record.Encode(artworkJSON(a), a.Extra)
}

func (Artwork) TableName() string { return "submissions" }

// EffectiveStatus treats a record without a status as pending.
func (a Artwork) EffectiveStatus() Status {
	if a.Status == "" {
		return StatusPending
	}
	return a.Status
}

func (a Artwork) IsApproved() bool {
	return a.Status == StatusApproved
}
