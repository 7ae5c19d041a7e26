package db

// StoreBook 状态
const (
	StoreBookStatusDraft     = "draft"
	StoreBookStatusInReview  = "in_review"
	StoreBookStatusPublished = "published"
	StoreBookStatusHidden    = "hidden"
)

// StoreBook is the parent work a release belongs to.
type StoreBook struct {
	UUIDModel
	Title       string    `gorm:"size:255;not null" json:"title"`
	Subtitle    string    `gorm:"size:255" json:"subtitle,omitempty"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	AuthorID    string    `gorm:"type:char(36);index" json:"authorId"`
	Author      *Author   `json:"-"`
	PublisherID *string   `gorm:"type:char(36);index" json:"publisherId,omitempty"`
	CategoryID  *string   `gorm:"type:char(36);index" json:"categoryId,omitempty"`
	Category    *Category `json:"-"`
	Status      string    `gorm:"size:20;index;default:draft" json:"status"`
	Releases    []Release `json:"-"`
}

// AllowsReleasePublication reports whether releases of this book may go live.
// Books still in draft or review block publication.
func (b StoreBook) AllowsReleasePublication() bool {
	return b.Status == StoreBookStatusPublished || b.Status == StoreBookStatusHidden
}
