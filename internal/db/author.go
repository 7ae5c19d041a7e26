package db

// Author links a marketplace identity to the books they write.
// UserUID is the identity that owns the author's releases.
type Author struct {
	UUIDModel
	PublisherID *string    `gorm:"type:char(36);index" json:"publisherId,omitempty"`
	Publisher   *Publisher `json:"-"`
	UserUID     string     `gorm:"size:64;index" json:"userUid"`
	Name        string     `gorm:"size:200;not null" json:"name"`
	Bio         string     `gorm:"type:text" json:"bio,omitempty"`
}
