package service

import (
	"context"

	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// ICascadeCoordinator detaches the notes of a folder that is about to be deleted.
// It must run on the same unit of work as the folder delete.
type ICascadeCoordinator interface {
	DetachNotes(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, folderId uuid.UUID) (int64, error)
}

type cascadeCoordinator struct {
	logger logger.ILogger
}

func NewCascadeCoordinator(log logger.ILogger) ICascadeCoordinator {
	return &cascadeCoordinator{logger: log}
}

func (c *cascadeCoordinator) DetachNotes(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, folderId uuid.UUID) (int64, error) {
	detached, err := uow.NoteRepository().DetachFolder(ctx, userId, folderId)
	if err != nil {
		c.logger.Error("FolderCascade", "Failed to detach notes", map[string]interface{}{
			"user_id":   userId.String(),
			"folder_id": folderId.String(),
			"error":     err.Error(),
		})
		return 0, err
	}

	c.logger.Info("FolderCascade", "Detached notes from folder", map[string]interface{}{
		"user_id":   userId.String(),
		"folder_id": folderId.String(),
		"detached":  detached,
	})
	return detached, nil
}
