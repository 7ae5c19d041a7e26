package db

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User 定义了用户模型
// UID 是对外使用的身份标识，Release.OwnerID 与 Author.UserUID 均引用它。
type User struct {
	gorm.Model
	UID      string `gorm:"size:64;uniqueIndex;not null"`
	Username string `gorm:"unique;not null"`
	Password string `gorm:"not null"`
}

// BeforeCreate assigns a UID when none was provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if strings.TrimSpace(u.UID) == "" {
		u.UID = uuid.NewString()
	}
	return nil
}

// EnsureUser 存在性检查：若提供的用户名与密码均非空且不存在对应账号，则创建一个 bcrypt 哈希的用户。
// uid 为空时自动生成。
func EnsureUser(username, password, uid string) (*User, error) {
	trimmedUser := strings.TrimSpace(username)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedUser == "" || trimmedPassword == "" {
		return nil, errors.New("username and password are required")
	}

	if DB == nil {
		return nil, errors.New("database not initialized")
	}

	var existing User
	if err := DB.Where("username = ?", trimmedUser).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}

		user := User{UID: strings.TrimSpace(uid), Username: trimmedUser, Password: string(hashed)}
		if err := DB.Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}

	return &existing, nil
}
