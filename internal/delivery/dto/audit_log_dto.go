package dto

import (
	"bed-admission-service/internal/domain/entity"
	"time"
)

// Response DTOs

type AuditLogResponse struct {
	ID        int64       `json:"id"`
	Actor     string      `json:"actor"`
	Action    string      `json:"action"`
	Metadata  entity.JSON `json:"metadata"`
	CreatedAt time.Time   `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int64              `json:"total"`
}
