package db

import "time"

// ReleaseStatus is the publication state of a release.
type ReleaseStatus string

// Release 状态。旧数据可能没有记录状态，按 unpublished 处理。
const (
	ReleaseStatusUnpublished ReleaseStatus = "unpublished"
	ReleaseStatusPublished   ReleaseStatus = "published"
)

// Release 是 StoreBook 的一个可发布版本。
// PrintCoverID 与 PrintFileID 只在提供实体书时存在，且必须成对出现。
type Release struct {
	UUIDModel
	StoreBookID  string        `gorm:"type:char(36);index;not null" json:"storeBookId"`
	StoreBook    *StoreBook    `json:"-"`
	Status       ReleaseStatus `gorm:"size:20;index" json:"status"`
	ReleaseName  string        `gorm:"size:255" json:"releaseName"`
	ReleaseNotes string        `gorm:"type:text" json:"releaseNotes"`
	PublishedAt  *time.Time    `json:"publishedAt"`
	CoverID      *string       `gorm:"size:64" json:"coverId"`
	FileID       *string       `gorm:"size:64" json:"fileId"`
	PrintCoverID *string       `gorm:"size:64" json:"printCoverId"`
	PrintFileID  *string       `gorm:"size:64" json:"printFileId"`
	OwnerID      string        `gorm:"size:64;index" json:"ownerId"`
}

// CurrentStatus returns the status, treating an unrecorded one as unpublished.
func (r Release) CurrentStatus() ReleaseStatus {
	if r.Status == "" {
		return ReleaseStatusUnpublished
	}
	return r.Status
}

// IsPublished reports whether the release reached its terminal state.
func (r Release) IsPublished() bool {
	return r.CurrentStatus() == ReleaseStatusPublished
}
