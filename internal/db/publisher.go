package db

// Publisher 出版方
type Publisher struct {
	UUIDModel
	Name    string `gorm:"size:200;not null" json:"name"`
	Slug    string `gorm:"size:200;uniqueIndex;not null" json:"slug"`
	Website string `gorm:"size:255" json:"website,omitempty"`
}
