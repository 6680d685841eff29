package db

import (
	"database/sql"
	"fmt"
	"intern-portal/config"
	"intern-portal/logger"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

var DB *sql.DB

func InitDB() error {
	var err error
	connStr := config.GetDBConnString()

	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}

	// Test the connection
	err = DB.Ping()
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}

	// Create tables
	if err := createTables(); err != nil {
		return fmt.Errorf("error creating tables: %w", err)
	}

	// Seed the bootstrap admin account
	if err := seedAdmin(); err != nil {
		return fmt.Errorf("error seeding admin account: %w", err)
	}

	return nil
}

func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

func createTables() error {
	adminTable := `
	CREATE TABLE IF NOT EXISTS admins (
		id SERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	internTable := `
	CREATE TABLE IF NOT EXISTS interns (
		id SERIAL PRIMARY KEY,
		full_name TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		mobile TEXT,
		qualification TEXT,
		role TEXT,
		duration TEXT,
		college TEXT,
		status TEXT DEFAULT 'PENDING',
		intern_id TEXT UNIQUE,
		start_date TIMESTAMP,
		end_date TIMESTAMP,
		offer_letter_sent BOOLEAN DEFAULT FALSE,
		certificate_sent BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	taskLinkTable := `
	CREATE TABLE IF NOT EXISTS task_links (
		id SERIAL PRIMARY KEY,
		domain TEXT NOT NULL,
		url TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	whatsappLinkTable := `
	CREATE TABLE IF NOT EXISTS whatsapp_links (
		id SERIAL PRIMARY KEY,
		url TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	deadLetterTable := `
	CREATE TABLE IF NOT EXISTS dead_letters (
		id SERIAL PRIMARY KEY,
		topic TEXT NOT NULL,
		key TEXT,
		payload BYTEA,
		last_error TEXT,
		status TEXT DEFAULT 'PENDING',
		retry_count INTEGER DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	tables := []struct {
		name string
		ddl  string
	}{
		{"admins", adminTable},
		{"interns", internTable},
		{"task_links", taskLinkTable},
		{"whatsapp_links", whatsappLinkTable},
		{"dead_letters", deadLetterTable},
	}

	for _, t := range tables {
		if _, err := DB.Exec(t.ddl); err != nil {
			return fmt.Errorf("error creating %s table: %w", t.name, err)
		}
	}

	return nil
}

// seedAdmin inserts the bootstrap admin from ADMIN_USERNAME/ADMIN_PASSWORD
// when no account with that username exists. The password is stored as a
// bcrypt hash, never plaintext.
func seedAdmin() error {
	username := config.AppConfig.AdminUsername
	password := config.AppConfig.AdminPassword

	if password == "" {
		logger.Warn("ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var exists bool
	err := DB.QueryRow("SELECT EXISTS (SELECT 1 FROM admins WHERE username = $1)", username).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing admin password: %w", err)
	}

	if _, err := DB.Exec("INSERT INTO admins (username, password_hash) VALUES ($1, $2)", username, string(hash)); err != nil {
		return err
	}

	logger.Info("Seeded admin account: %s", username)
	return nil
}
