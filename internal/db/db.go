package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DB 是一个全局的数据库连接实例
var DB *gorm.DB

// Models lists every table the service owns, in migration order.
func Models() []interface{} {
	return []interface{}{
		&User{},
		&Publisher{},
		&Author{},
		&Category{},
		&StoreBook{},
		&Release{},
	}
}

// Init 初始化数据库连接并执行自动迁移。
// databasePath 为空时将回退到默认值 folioshelf.db。
func Init(databasePath string) error {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = "folioshelf.db"
	}

	if err := ensureParentDir(path); err != nil {
		return err
	}

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return err
	}

	// sqlite 只允许单个写入者
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(gdb); err != nil {
		return err
	}

	DB = gdb
	return nil
}

// Migrate 自动迁移模式，并修补旧数据。
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(Models()...); err != nil {
		return err
	}

	// 早期导入的版本没有记录状态
	if err := gdb.Model(&Release{}).
		Where("status = '' OR status IS NULL").
		Update("status", ReleaseStatusUnpublished).Error; err != nil {
		return err
	}

	// 已发布的版本必须带有发布时间
	if err := gdb.Model(&Release{}).
		Where("status = ? AND published_at IS NULL", ReleaseStatusPublished).
		Update("published_at", gorm.Expr("updated_at")).Error; err != nil {
		return err
	}

	return nil
}

func ensureParentDir(path string) error {
	if strings.HasPrefix(path, "file:") {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
