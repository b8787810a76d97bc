package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the test database. It expects a MySQL database named
// 'backoffice_test' on localhost:3306 and skips the test otherwise.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/backoffice_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties the test tables and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"Orders", "Product"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the tables the repositories need.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createProductTable := `
	CREATE TABLE IF NOT EXISTS Product (
		id CHAR(36) NOT NULL PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		discount DECIMAL(10,2),
		category VARCHAR(100) NOT NULL,
		isNewArrival TINYINT(1) NOT NULL DEFAULT 0,
		variantKind VARCHAR(16) NOT NULL,
		stock INT,
		color JSON,
		createdAt DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
		updatedAt DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
		INDEX idx_category (category)
	)`

	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS Orders (
		id CHAR(36) NOT NULL PRIMARY KEY,
		firstName VARCHAR(100) NOT NULL,
		lastName VARCHAR(100) NOT NULL,
		email VARCHAR(150) NOT NULL,
		phone VARCHAR(30),
		address VARCHAR(255),
		totalPrice DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		paid TINYINT(1) NOT NULL DEFAULT 0,
		fulfillment TINYINT(1) NOT NULL DEFAULT 0,
		createdAt DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
		updatedAt DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6)
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"Product", createProductTable},
		{"Orders", createOrdersTable},
	}

	for _, tbl := range tables {
		_, err := db.Exec(tbl.query)
		if err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
