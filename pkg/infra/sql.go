package infra

import (
	"errors"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// SQLConfig represents the configuration for a SQL database connection.
type SQLConfig struct {
	Host     string
	Port     int
	DBName   string
	Username string
	Password string
}

// SQLConnection encapsulates a MySQL database connection.
type SQLConnection struct {
	db     *gorm.DB
	dbName string
}

// NewSQLConnection opens a MySQL connection from the given config.
func NewSQLConnection(config SQLConfig) (*SQLConnection, error) {
	if config.Host == "" || config.DBName == "" {
		return nil, errors.New("sql config requires host and db name")
	}
	db, err := createMySQLConnection(config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mysql at %s:%d: %w", config.Host, config.Port, err)
	}
	return &SQLConnection{db: db, dbName: config.DBName}, nil
}

// GetConn returns the database session.
func (c *SQLConnection) GetConn() (*gorm.DB, error) {
	if c.db == nil {
		return nil, errors.New("connection is nil")
	}
	return c.db, nil
}

// GetDBName returns the connected database name.
func (c *SQLConnection) GetDBName() string {
	return c.dbName
}

func createMySQLConnection(config SQLConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		config.Username, config.Password, config.Host, config.Port, config.DBName)
	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}
