package db

import (
	"errors"

	"gorm.io/gorm"
)

const demoPublisherSlug = "folioshelf-demo"

// Seed 写入一套本地调试用的示例数据：出版社、作者、分类、图书和一个未发布版本。
// 已存在示例出版社时直接返回其第一个版本。
func Seed(gdb *gorm.DB, ownerUID string) (*Release, error) {
	var release Release
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var publisher Publisher
		err := tx.Where("slug = ?", demoPublisherSlug).First(&publisher).Error
		if err == nil {
			return tx.Joins("JOIN store_books ON store_books.id = releases.store_book_id").
				Where("store_books.publisher_id = ?", publisher.ID).
				Order("releases.created_at asc").
				First(&release).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		publisher = Publisher{Name: "Folioshelf Demo Press", Slug: demoPublisherSlug, Website: "https://example.com"}
		if err := tx.Create(&publisher).Error; err != nil {
			return err
		}

		author := Author{PublisherID: &publisher.ID, UserUID: ownerUID, Name: "Demo Author", Bio: "Writes sample books."}
		if err := tx.Create(&author).Error; err != nil {
			return err
		}

		category := Category{Name: "Demo", Slug: "demo"}
		if err := tx.Where("slug = ?", category.Slug).FirstOrCreate(&category).Error; err != nil {
			return err
		}

		book := StoreBook{
			Title:       "A Sample Voyage",
			Description: "Seed data for local testing.",
			AuthorID:    author.ID,
			PublisherID: &publisher.ID,
			CategoryID:  &category.ID,
			Status:      StoreBookStatusPublished,
		}
		if err := tx.Create(&book).Error; err != nil {
			return err
		}

		release = Release{
			StoreBookID:  book.ID,
			Status:       ReleaseStatusUnpublished,
			ReleaseName:  "First Edition",
			ReleaseNotes: "Initial release.",
			OwnerID:      ownerUID,
		}
		return tx.Create(&release).Error
	})
	if err != nil {
		return nil, err
	}
	return &release, nil
}
