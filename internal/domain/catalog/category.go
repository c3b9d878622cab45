package catalog

import (
	"strings"
	"time"

	"gallery-admin/internal/domain/record"
)

// CreatedAtLayout is the layout categories.json has always used.
const CreatedAtLayout = "2006-01-02 15:04:05"

type Category struct {
	ID        int    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name      string `gorm:"not null" json:"name"`
	CreatedAt string `gorm:"column:created_at" json:"created_at,omitempty"`

	Extra record.Fields `gorm:"column:extra;serializer:json" json:"-"`
}

type categoryJSON Category

func (c *Category) UnmarshalJSON(b []byte) error {
	var plain categoryJSON
	extra, err := record.Decode(b, &plain)
	if err != nil {
		return err
	}
	*c = Category(plain)
	c.Extra = extra
	return nil
}

func (c Category) MarshalJSON() ([]byte, error) {
	return record.Encode(categoryJSON(c), c.Extra)
}

func (Category) TableName() string { return "categories" }

// NextID is one past the highest id in use, or 1 for an empty list.
func NextID(list []Category) int {
	highest := 0
	for _, c := range list {
		if c.ID > highest {
			highest = c.ID
		}
	}
	return highest + 1
}

func New(list []Category, name string, at time.Time) Category {
	return Category{
		ID:        NextID(list),
		Name:      strings.TrimSpace(name),
		CreatedAt: at.Format(CreatedAtLayout),
	}
}

func FindByID(list []Category, id int) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
