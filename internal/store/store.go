// Package store persists the fill ledger to PostgreSQL. The engine
// runs without it; a run only writes at shutdown when a target
// database is configured.
package store

import (
	"fmt"
	"net/url"

	"github.com/yanun0323/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/iamsayanmandal/High-Frequency-Trading/internal/model"
)

const (
	_defaultHost    = "localhost"
	_defaultPort    = 5432
	_defaultSSLMode = "disable"
)

type Config struct {
	// DSN overrides the field-by-field connection settings when set.
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
	SSLMode  string `json:"ssl_mode"`
}

// Enabled reports whether the config points at a database at all.
func (c Config) Enabled() bool {
	return c.DSN != "" || c.Database != ""
}

func (c Config) dsn() string {
	if c.DSN != "" {
		return c.DSN
	}

	host := c.Host
	if host == "" {
		host = _defaultHost
	}
	port := c.Port
	if port == 0 {
		port = _defaultPort
	}
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = _defaultSSLMode
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", host, port),
	}
	if c.User != "" {
		if c.Password != "" {
			u.User = url.UserPassword(c.User, c.Password)
		} else {
			u.User = url.User(c.User)
		}
	}
	if c.Database != "" {
		u.Path = "/" + c.Database
	}

	query := url.Values{}
	query.Set("sslmode", sslMode)
	u.RawQuery = query.Encode()

	return u.String()
}

// Fill is one executed order as stored in the fills table.
type Fill struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	OrderID  uint64
	Strategy string
	Symbol   string
	Side     string
	Price    float64
	Qty      float64
	Ts       int64
}

func (Fill) TableName() string {
	return "fills"
}

// Store wraps the connection pool.
type Store struct {
	db *gorm.DB
}

func Open(cfg Config) (*Store, error) {
	db, err := gorm.Open(postgres.Open(cfg.dsn()), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	if err := db.AutoMigrate(&Fill{}); err != nil {
		return nil, errors.Wrap(err, "migrate fills table")
	}
	return &Store{db: db}, nil
}

// SaveFills bulk-inserts the ledger. An empty ledger is a no-op.
func (s *Store) SaveFills(orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}

	fills := make([]Fill, 0, len(orders))
	for _, o := range orders {
		fills = append(fills, Fill{
			OrderID:  o.ID,
			Strategy: o.Strategy,
			Symbol:   o.Symbol,
			Side:     o.Side.String(),
			Price:    o.Price,
			Qty:      o.Qty,
			Ts:       o.Ts,
		})
	}
	if err := s.db.Create(&fills).Error; err != nil {
		return errors.Wrap(err, "insert fills")
	}
	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
