package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied in order; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id    BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name  VARCHAR(255) NOT NULL,
		email VARCHAR(512) NOT NULL,
		CONSTRAINT uq_user_email UNIQUE (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS requests (
		id           BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		description  VARCHAR(512) NOT NULL,
		requestor_id BIGINT UNSIGNED NOT NULL,
		created      DATETIME NOT NULL,
		INDEX idx_requests_requestor (requestor_id, created),
		CONSTRAINT fk_requests_requestor FOREIGN KEY (requestor_id) REFERENCES users (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS items (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name        VARCHAR(255) NOT NULL,
		description VARCHAR(512) NOT NULL,
		available   BOOLEAN NOT NULL,
		owner_id    BIGINT UNSIGNED NOT NULL,
		request_id  BIGINT UNSIGNED NULL,
		INDEX idx_items_owner (owner_id, id),
		INDEX idx_items_request (request_id),
		CONSTRAINT fk_items_owner FOREIGN KEY (owner_id) REFERENCES users (id),
		CONSTRAINT fk_items_request FOREIGN KEY (request_id) REFERENCES requests (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id        BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		item_id   BIGINT UNSIGNED NOT NULL,
		booker_id BIGINT UNSIGNED NOT NULL,
		start_at  DATETIME NOT NULL,
		end_at    DATETIME NOT NULL,
		status    ENUM('WAITING','APPROVED','REJECTED') NOT NULL DEFAULT 'WAITING',
		INDEX idx_bookings_item (item_id, start_at),
		INDEX idx_bookings_booker (booker_id, start_at),
		CONSTRAINT fk_bookings_item FOREIGN KEY (item_id) REFERENCES items (id),
		CONSTRAINT fk_bookings_booker FOREIGN KEY (booker_id) REFERENCES users (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS comments (
		id        BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		text      VARCHAR(1000) NOT NULL,
		item_id   BIGINT UNSIGNED NOT NULL,
		author_id BIGINT UNSIGNED NOT NULL,
		created   DATETIME NOT NULL,
		INDEX idx_comments_item (item_id, created),
		CONSTRAINT fk_comments_item FOREIGN KEY (item_id) REFERENCES items (id),
		CONSTRAINT fk_comments_author FOREIGN KEY (author_id) REFERENCES users (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates the shareit tables when they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
