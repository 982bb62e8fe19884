package storage

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Cookie is one persisted session cookie, keyed by the host that set it.
type Cookie struct {
	ID        uint   `gorm:"primaryKey"`
	Host      string `gorm:"uniqueIndex:idx_cookie_key"`
	Name      string `gorm:"uniqueIndex:idx_cookie_key"`
	Path      string `gorm:"uniqueIndex:idx_cookie_key"`
	Value     string
	Domain    string
	Expires   time.Time
	Secure    bool
	HttpOnly  bool
	UpdatedAt time.Time
}

type Setting struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

const SettingLastUsername = "last_username"

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(path string, log *logrus.Logger) (*GormStore, error) {
	config := &gorm.Config{}
	if log != nil {
		config.Logger = gormlogger.New(
			log,
			gormlogger.Config{
				IgnoreRecordNotFoundError: true,
				LogLevel:                  gormlogger.Error,
			},
		)
	} else {
		config.Logger = gormlogger.Discard
	}

	db, err := gorm.Open(sqlite.Open(path), config)
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&Cookie{}, &Setting{}); err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return &GormStore{db: db}, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *GormStore) SaveCookie(host string, c *http.Cookie) error {
	path := c.Path
	if path == "" {
		path = "/"
	}

	var row Cookie
	return s.db.
		Where(Cookie{Host: host, Name: c.Name, Path: path}).
		Assign(map[string]interface{}{
			"value":     c.Value,
			"domain":    c.Domain,
			"expires":   c.Expires,
			"secure":    c.Secure,
			"http_only": c.HttpOnly,
		}).
		FirstOrCreate(&row).Error
}

func (s *GormStore) DeleteCookie(host, name, path string) error {
	if path == "" {
		path = "/"
	}
	return s.db.Where("host = ? AND name = ? AND path = ?", host, name, path).Delete(&Cookie{}).Error
}

// ListCookies returns the unexpired cookies stored for host and prunes the
// expired ones.
func (s *GormStore) ListCookies(host string) ([]*http.Cookie, error) {
	var rows []Cookie
	if err := s.db.Where("host = ?", host).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	var expired []uint
	cookies := make([]*http.Cookie, 0, len(rows))
	for _, r := range rows {
		if !r.Expires.IsZero() && r.Expires.Before(now) {
			expired = append(expired, r.ID)
			continue
		}
		cookies = append(cookies, &http.Cookie{
			Name:     r.Name,
			Value:    r.Value,
			Path:     r.Path,
			Domain:   r.Domain,
			Expires:  r.Expires,
			Secure:   r.Secure,
			HttpOnly: r.HttpOnly,
		})
	}

	if len(expired) > 0 {
		if err := s.db.Delete(&Cookie{}, expired).Error; err != nil {
			return nil, err
		}
	}
	return cookies, nil
}

func (s *GormStore) ClearCookies(host string) error {
	return s.db.Where("host = ?", host).Delete(&Cookie{}).Error
}

func (s *GormStore) GetSetting(key string) (string, error) {
	var setting Setting
	result := s.db.First(&setting, "key = ?", key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", result.Error
	}
	return setting.Value, nil
}

func (s *GormStore) SetSetting(key, value string) error {
	return s.db.Save(&Setting{Key: key, Value: value}).Error
}
