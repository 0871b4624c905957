// Package dao implements the repository contracts on gorm.
package dao

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/skyring/file-explorer-service/pkg/fileurl"
	"github.com/skyring/file-explorer-service/pkg/writequeue"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// DBConfig is the engine-level subset of the application database
// configuration, kept here so the container can hand it down without
// an import cycle.
type DBConfig struct {
	Type         string
	Path         string
	UserName     string
	Password     string
	Host         string
	Name         string
	TablePrefix  string
	Charset      string
	ParseTime    bool
	MaxIdleConns int
	MaxOpenConns int
	RunMode      string
}

type Dao struct {
	Db *gorm.DB
	wq *writequeue.Manager
}

// New wraps a gorm handle. A non-nil write queue serializes all
// repository writes through it, which SQLite needs.
func New(db *gorm.DB, wq *writequeue.Manager) *Dao {
	return &Dao{Db: db, wq: wq}
}

func (d *Dao) DB() *gorm.DB {
	return d.Db
}

// ExecuteWrite funnels fn through the write queue when one is
// attached, otherwise runs it inline.
func (d *Dao) ExecuteWrite(ctx context.Context, fn func(db *gorm.DB) error) error {
	if d.wq == nil {
		return fn(d.Db.WithContext(ctx))
	}
	return d.wq.Execute(ctx, func() error {
		return fn(d.Db.WithContext(ctx))
	})
}

func NewDBEngine(c DBConfig) (*gorm.DB, error) {

	db, err := gorm.Open(dialector(c), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, err
	}
	if c.RunMode == "debug" {
		db.Config.Logger = logger.Default.LogMode(logger.Info)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Minute * 10)

	return db, nil
}

func dialector(c DBConfig) gorm.Dialector {
	if c.Type == "mysql" {
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName,
			c.Password,
			c.Host,
			c.Name,
			c.Charset,
			c.ParseTime,
		))
	} else if c.Type == "sqlite" {
		if !fileurl.IsExist(c.Path) {
			fileurl.CreatePath(c.Path, os.ModePerm)
		}
		return sqlite.Open(c.Path)
	}
	return nil
}
