package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"triago/internal/shared/logger"
)

// Generator handles creation of new migration files
type Generator struct {
	scriptsPath string
	logger      logger.Interface
}

// NewGenerator creates a new migration generator
func NewGenerator(scriptsPath string, log logger.Interface) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		logger:      log.With("component", "migration.generator"),
	}
}

// CreateMigration creates a new empty goose migration file
func (g *Generator) CreateMigration(name string) error {
	g.logger.Infow("creating new migration", "name", name)

	timestamp := time.Now().Format("20060102150405")
	fileName := fmt.Sprintf("%s_%s.sql", timestamp, name)
	filePath := filepath.Join(g.scriptsPath, fileName)

	if err := os.MkdirAll(g.scriptsPath, 0755); err != nil {
		return fmt.Errorf("failed to create scripts directory: %w", err)
	}

	content := g.generateMigrationTemplate(name)
	if err := g.writeFile(filePath, content); err != nil {
		return fmt.Errorf("failed to create migration file: %w", err)
	}

	g.logger.Infow("migration file created successfully", "file", filePath)

	return nil
}

func (g *Generator) writeFile(filePath, content string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(content)
	return err
}

func (g *Generator) generateMigrationTemplate(name string) string {
	return fmt.Sprintf(`-- Migration: %s
-- Created: %s

-- +goose Up
-- Add your SQL statements here

-- +goose Down
-- Add your rollback SQL statements here
`, name, time.Now().Format("2006-01-02 15:04:05"))
}

// CreateTriageTablesMigration creates the initial schema migration for
// the tickets, suggestions, reviews, audit, replies, kb, notifications
// and settings tables.
func (g *Generator) CreateTriageTablesMigration() error {
	g.logger.Infow("creating initial triage tables migration")

	fileName := "00001_create_triage_tables.sql"
	filePath := filepath.Join(g.scriptsPath, fileName)

	if err := os.MkdirAll(g.scriptsPath, 0755); err != nil {
		return fmt.Errorf("failed to create scripts directory: %w", err)
	}

	if err := g.writeFile(filePath, triageTablesMigration); err != nil {
		return fmt.Errorf("failed to create triage tables migration: %w", err)
	}

	g.logger.Infow("triage tables migration created successfully", "file", filePath)

	return nil
}

const triageTablesMigration = `-- Migration: Create triage tables
-- Description: Initial schema for tickets, agent suggestions, reviews and the audit log

-- +goose Up
CREATE TABLE IF NOT EXISTS tickets (
    id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    number VARCHAR(50) NOT NULL UNIQUE,
    title VARCHAR(200) NOT NULL,
    description TEXT NOT NULL,
    category VARCHAR(50) NOT NULL,
    status VARCHAR(20) NOT NULL,
    attachments JSON,
    creator_id BIGINT UNSIGNED NOT NULL,
    assignee_id BIGINT UNSIGNED NULL,
    suggestion_id BIGINT UNSIGNED NULL,
    version INT NOT NULL DEFAULT 1,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL,
    resolved_at BIGINT NULL,
    closed_at BIGINT NULL,
    INDEX idx_tickets_category (category),
    INDEX idx_tickets_status (status),
    INDEX idx_tickets_creator_id (creator_id),
    INDEX idx_tickets_assignee_id (assignee_id),
    INDEX idx_tickets_suggestion_id (suggestion_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;

CREATE TABLE IF NOT EXISTS agent_suggestions (
    id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    ticket_id BIGINT UNSIGNED NOT NULL,
    predicted_category VARCHAR(50) NOT NULL,
    citations JSON,
    draft_reply TEXT,
    confidence DOUBLE NOT NULL,
    original_confidence DOUBLE NOT NULL,
    auto_closed BOOLEAN NOT NULL DEFAULT FALSE,
    model_provider VARCHAR(50),
    model_name VARCHAR(100),
    prompt_version VARCHAR(50),
    latency_ms BIGINT,
    attempts INT,
    reviewed BOOLEAN NOT NULL DEFAULT FALSE,
    review_result VARCHAR(20),
    reviewer_id BIGINT UNSIGNED NULL,
    reviewed_at BIGINT NULL,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL,
    INDEX idx_agent_suggestions_ticket_id (ticket_id),
    INDEX idx_agent_suggestions_reviewed (reviewed),
    INDEX idx_agent_suggestions_reviewer_id (reviewer_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;

CREATE TABLE IF NOT EXISTS review_records (
    id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    ticket_id BIGINT UNSIGNED NOT NULL,
    agent_id BIGINT UNSIGNED NOT NULL,
    agent_name VARCHAR(100),
    action VARCHAR(20) NOT NULL,
    final_reply TEXT,
    confidence DOUBLE NOT NULL,
    send_now BOOLEAN NOT NULL DEFAULT FALSE,
    close_ticket BOOLEAN NOT NULL DEFAULT FALSE,
    accepted BOOLEAN NOT NULL DEFAULT FALSE,
    rejected BOOLEAN NOT NULL DEFAULT FALSE,
    closed BOOLEAN NOT NULL DEFAULT FALSE,
    trace_id VARCHAR(64) NOT NULL,
    feedback TEXT,
    assigned_at BIGINT NOT NULL,
    responded_at BIGINT NULL,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL,
    UNIQUE INDEX idx_review_ticket_agent (ticket_id, agent_id),
    INDEX idx_review_records_accepted (accepted),
    INDEX idx_review_records_trace_id (trace_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;

CREATE TABLE IF NOT EXISTS audit_entries (
    id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    ticket_id BIGINT UNSIGNED NOT NULL,
    trace_id VARCHAR(64) NOT NULL,
    actor VARCHAR(20) NOT NULL,
    actor_id BIGINT UNSIGNED NULL,
    action VARCHAR(64) NOT NULL,
    metadata JSON,
    created_at BIGINT NOT NULL,
    INDEX idx_audit_entries_ticket_id (ticket_id),
    INDEX idx_audit_entries_trace_id (trace_id),
    INDEX idx_audit_entries_action (action),
    INDEX idx_audit_entries_created_at (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;

CREATE TABLE IF NOT EXISTS ticket_replies (
    id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    ticket_id BIGINT UNSIGNED NOT NULL,
    author_id BIGINT UNSIGNED NOT NULL,
    author_type VARCHAR(20) NOT NULL,
    body TEXT NOT NULL,
    citations JSON,
    created_at BIGINT NOT NULL,
    INDEX idx_ticket_replies_ticket_id (ticket_id),
    INDEX idx_ticket_replies_author_id (author_id),
    INDEX idx_ticket_replies_created_at (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;

CREATE TABLE IF NOT EXISTS kb_articles (
    id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    slug VARCHAR(100) NOT NULL UNIQUE,
    title VARCHAR(200) NOT NULL,
    body TEXT NOT NULL,
    tags JSON,
    published BOOLEAN NOT NULL DEFAULT FALSE,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL,
    INDEX idx_kb_articles_published (published)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;

CREATE TABLE IF NOT EXISTS notifications (
    id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    user_id BIGINT UNSIGNED NOT NULL,
    type VARCHAR(50) NOT NULL,
    title VARCHAR(200) NOT NULL,
    content TEXT,
    ticket_id BIGINT UNSIGNED NULL,
    ` + "`read`" + ` BOOLEAN NOT NULL DEFAULT FALSE,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL,
    INDEX idx_user_read (user_id, ` + "`read`" + `),
    INDEX idx_notifications_ticket_id (ticket_id),
    INDEX idx_notifications_created_at (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;

CREATE TABLE IF NOT EXISTS triage_settings (
    id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    auto_close_enabled BOOLEAN NOT NULL DEFAULT FALSE,
    confidence_threshold DOUBLE NOT NULL,
    sla_hours INT NOT NULL,
    updated_by BIGINT UNSIGNED,
    version INT NOT NULL DEFAULT 1,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;

-- +goose Down
DROP TABLE IF EXISTS triage_settings;
DROP TABLE IF EXISTS notifications;
DROP TABLE IF EXISTS kb_articles;
DROP TABLE IF EXISTS ticket_replies;
DROP TABLE IF EXISTS audit_entries;
DROP TABLE IF EXISTS review_records;
DROP TABLE IF EXISTS agent_suggestions;
DROP TABLE IF EXISTS tickets;
`
