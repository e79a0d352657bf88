package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/sabahotel/backoffice/internal/auth"
)

// schema lists the CREATE TABLE statements run at startup.  Statements
// are idempotent; existing tables are left untouched.  Money columns
// hold integer cents.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS guests (
		guest_id    BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name        VARCHAR(50)  NOT NULL,
		family      VARCHAR(50)  NOT NULL,
		national_id VARCHAR(20)  NULL,
		passport    VARCHAR(20)  NULL,
		birthdate   DATE         NOT NULL,
		email       VARCHAR(100) NOT NULL UNIQUE,
		CONSTRAINT chk_guest_identity CHECK (national_id IS NOT NULL OR passport IS NOT NULL)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS guest_phones (
		phone_id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		guest_id BIGINT UNSIGNED NOT NULL,
		phone    VARCHAR(20) NOT NULL,
		UNIQUE KEY uq_guest_phone (guest_id, phone),
		CONSTRAINT fk_phone_guest FOREIGN KEY (guest_id) REFERENCES guests (guest_id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS guest_addresses (
		address_id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		guest_id   BIGINT UNSIGNED NOT NULL,
		province   VARCHAR(50)  NOT NULL,
		city       VARCHAR(50)  NOT NULL,
		street     VARCHAR(100) NOT NULL,
		plaque     VARCHAR(10)  NOT NULL,
		CONSTRAINT fk_address_guest FOREIGN KEY (guest_id) REFERENCES guests (guest_id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS rooms (
		room_id     BIGINT UNSIGNED PRIMARY KEY,
		type        VARCHAR(20) NOT NULL,
		capacity    INT UNSIGNED NOT NULL,
		price_cents BIGINT NOT NULL,
		features    TEXT NULL,
		floor       INT NOT NULL,
		bed_type    VARCHAR(20) NOT NULL,
		smoking     BOOLEAN NOT NULL DEFAULT FALSE,
		status      VARCHAR(10) NOT NULL DEFAULT 'available',
		CONSTRAINT chk_room_capacity CHECK (capacity > 0),
		CONSTRAINT chk_room_price CHECK (price_cents >= 0),
		CONSTRAINT chk_room_status CHECK (status IN ('available','reserved','occupied','cleaning'))
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS employees (
		emp_id       BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name         VARCHAR(50) NOT NULL,
		family       VARCHAR(50) NOT NULL,
		national_id  VARCHAR(20) NOT NULL UNIQUE,
		birthdate    DATE        NOT NULL,
		position     VARCHAR(50) NOT NULL,
		username     VARCHAR(50) NOT NULL UNIQUE,
		password     VARCHAR(255) NOT NULL,
		access_level TINYINT UNSIGNED NOT NULL DEFAULT 1,
		CONSTRAINT chk_emp_access CHECK (access_level BETWEEN 1 AND 5)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS employee_tokens (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		emp_id     BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL UNIQUE,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_token_employee FOREIGN KEY (emp_id) REFERENCES employees (emp_id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS reservations (
		res_id           BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		guest_id         BIGINT UNSIGNED NOT NULL,
		emp_id           BIGINT UNSIGNED NOT NULL,
		check_in         DATE NOT NULL,
		check_out        DATE NOT NULL,
		booking_date     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		num_people       INT UNSIGNED NOT NULL,
		status           VARCHAR(10) NOT NULL DEFAULT 'active',
		total_cost_cents BIGINT NOT NULL DEFAULT 0,
		payment_cents    BIGINT NOT NULL DEFAULT 0,
		discount_cents   BIGINT NOT NULL DEFAULT 0,
		CONSTRAINT chk_res_dates CHECK (check_out > check_in),
		CONSTRAINT chk_res_people CHECK (num_people > 0),
		CONSTRAINT chk_res_status CHECK (status IN ('active','canceled','finished')),
		CONSTRAINT fk_res_guest FOREIGN KEY (guest_id) REFERENCES guests (guest_id),
		CONSTRAINT fk_res_employee FOREIGN KEY (emp_id) REFERENCES employees (emp_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS reservation_rooms (
		res_id  BIGINT UNSIGNED NOT NULL,
		room_id BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (res_id, room_id),
		CONSTRAINT fk_rr_reservation FOREIGN KEY (res_id) REFERENCES reservations (res_id) ON DELETE CASCADE,
		CONSTRAINT fk_rr_room FOREIGN KEY (room_id) REFERENCES rooms (room_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Init ensures all tables exist.
func Init(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// EnsureDefaultAdmin seeds an admin account when no employee with the
// configured username exists, so a fresh install can log in.  The seed
// secret is stored hashed.
func EnsureDefaultAdmin(ctx context.Context, db *sql.DB, username, password string) error {
	var n int
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM employees WHERE username = ?`, username).Scan(&n); err != nil {
		return fmt.Errorf("check admin: %w", err)
	}
	if n > 0 {
		return nil
	}
	record, err := auth.HashSecret(password)
	if err != nil {
		return fmt.Errorf("hash admin secret: %w", err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO employees (name, family, national_id, birthdate, position, username, password, access_level)
		 VALUES ('System', 'Admin', '0000000000', '1970-01-01', 'manager', ?, ?, 5)`,
		username, record)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	log.Printf("database: seeded default admin %q", username)
	return nil
}
