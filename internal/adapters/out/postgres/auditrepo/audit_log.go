// Package auditrepo appends audit entries to audit_logs.
package auditrepo

import (
	"context"
	"encoding/json"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditLogDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ActorID    uuid.UUID  `gorm:"type:uuid;not null"`
	TeamID     *uuid.UUID `gorm:"type:uuid"`
	Action     string
	EntityType string
	EntityID   string
	Details    string    `gorm:"type:jsonb"`
	CreatedAt  time.Time `gorm:"autoCreateTime:false"`
}

func (AuditLogDTO) TableName() string {
	return "audit_logs"
}

type GormAuditLog struct {
	db *gorm.DB
}

func NewGormAuditLog(db *gorm.DB) *GormAuditLog {
	return &GormAuditLog{db: db}
}

func (l *GormAuditLog) Record(ctx context.Context, entry ports.AuditEntry) error {
	details := entry.Details
	if details == nil {
		details = map[string]any{}
	}
	raw, err := json.Marshal(details)
	if err != nil {
		return err
	}

	var teamID *uuid.UUID
	if entry.TeamID != nil {
		id := entry.TeamID.Bytes()
		teamID = &id
	}

	dto := AuditLogDTO{
		ID:         kernel.NewUUID().Bytes(),
		ActorID:    entry.Actor.Bytes(),
		TeamID:     teamID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Details:    string(raw),
		CreatedAt:  entry.At,
	}
	return l.db.WithContext(ctx).Create(&dto).Error
}
