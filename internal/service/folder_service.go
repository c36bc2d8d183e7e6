// FILE: internal/service/folder_service.go
package service

import (
	"context"
	"time"

	"notekeeper-be/internal/config"
	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/pkg/apperror"
	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/repository/specification"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/pkg/events"

	"github.com/google/uuid"
)

const (
	msgFolderNotFound = "Folder not found"
	msgFolderExists   = "A folder with this name already exists"
)

type IFolderService interface {
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.FolderResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowFolderResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateFolderRequest) (*dto.FolderResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateFolderRequest) (*dto.FolderResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.DeleteFolderResponse, error)
	ListNotes(ctx context.Context, userId uuid.UUID, id uuid.UUID, query *dto.ListNotesQuery) ([]*dto.NoteResponse, error)
}

type folderService struct {
	uowFactory       unitofwork.RepositoryFactory
	noteService      INoteService
	cascade          ICascadeCoordinator
	publisherService IPublisherService
	defaults         config.FolderDefaults
	logger           logger.ILogger
	now              func() time.Time
}

func NewFolderService(
	uowFactory unitofwork.RepositoryFactory,
	noteService INoteService,
	cascade ICascadeCoordinator,
	publisherService IPublisherService,
	defaults config.FolderDefaults,
	log logger.ILogger,
) IFolderService {
	return &folderService{
		uowFactory:       uowFactory,
		noteService:      noteService,
		cascade:          cascade,
		publisherService: publisherService,
		defaults:         defaults,
		logger:           log,
		now:              time.Now,
	}
}

func (c *folderService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.FolderResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	folders, err := uow.FolderRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "name"},
	)
	if err != nil {
		return nil, storeError(err, "")
	}

	res := make([]*dto.FolderResponse, 0, len(folders))
	for _, folder := range folders {
		res = append(res, toFolderResponse(folder))
	}
	return res, nil
}

func (c *folderService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowFolderResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	folder, err := c.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	noteCount, err := uow.NoteRepository().Count(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByFolderID{FolderID: id},
	)
	if err != nil {
		return nil, storeError(err, "")
	}

	return &dto.ShowFolderResponse{
		FolderResponse: *toFolderResponse(folder),
		NoteCount:      noteCount,
	}, nil
}

func (c *folderService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateFolderRequest) (*dto.FolderResponse, error) {
	if req.Name == "" {
		return nil, apperror.Validation("Folder name is required")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := c.ensureNameFree(ctx, uow, userId, req.Name, uuid.Nil); err != nil {
		return nil, err
	}

	description := req.Description
	if description == "" {
		description = c.defaults.DefaultDescription
	}
	color := req.Color
	if color == "" {
		color = c.defaults.DefaultColor
	}

	now := c.now()
	folder := entity.Folder{
		Id:          uuid.New(),
		Name:        req.Name,
		Description: description,
		Color:       color,
		UserId:      userId,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// The unique index covers a concurrent create that slipped past the pre-check.
	if err := uow.FolderRepository().Create(ctx, &folder); err != nil {
		return nil, storeError(err, msgFolderExists)
	}

	publishQuietly(ctx, c.publisherService, c.logger,
		events.NewChangeEvent(events.FolderCreated, userId, folder.Id, nil))

	return toFolderResponse(&folder), nil
}

func (c *folderService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateFolderRequest) (*dto.FolderResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	folder, err := c.findOwned(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}

	changed := false
	if req.Name != nil {
		if *req.Name == "" {
			return nil, apperror.Validation("Folder name cannot be empty")
		}
		if *req.Name != folder.Name {
			if err := c.ensureNameFree(ctx, uow, userId, *req.Name, folder.Id); err != nil {
				return nil, err
			}
			folder.Name = *req.Name
			changed = true
		}
	}
	if req.Description != nil {
		folder.Description = *req.Description
		changed = true
	}
	if req.Color != nil {
		if *req.Color == "" {
			return nil, apperror.Validation("Folder color cannot be empty")
		}
		folder.Color = *req.Color
		changed = true
	}

	if !changed {
		return toFolderResponse(folder), nil
	}

	folder.UpdatedAt = c.now()
	if err := uow.FolderRepository().Update(ctx, folder); err != nil {
		return nil, storeError(err, msgFolderExists)
	}

	publishQuietly(ctx, c.publisherService, c.logger,
		events.NewChangeEvent(events.FolderUpdated, userId, folder.Id, nil))

	return toFolderResponse(folder), nil
}

// Delete detaches the folder's notes and removes the folder in one transaction.
// If either step fails nothing changes.
func (c *folderService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.DeleteFolderResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal("failed to begin transaction", err)
	}
	defer uow.Rollback()

	if _, err := c.findOwned(ctx, uow, userId, id); err != nil {
		return nil, err
	}

	detached, err := c.cascade.DetachNotes(ctx, uow, userId, id)
	if err != nil {
		return nil, apperror.Internal("failed to detach notes from folder", err)
	}

	deleted, err := uow.FolderRepository().Delete(ctx, id, userId)
	if err != nil {
		return nil, storeError(err, "")
	}
	if deleted == 0 {
		return nil, apperror.NotFound(msgFolderNotFound)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal("failed to commit folder delete", err)
	}

	publishQuietly(ctx, c.publisherService, c.logger,
		events.NewChangeEvent(events.FolderDeleted, userId, id, map[string]interface{}{
			"detached_notes": detached,
		}))

	return &dto.DeleteFolderResponse{
		Message:       "Folder deleted successfully",
		DetachedNotes: detached,
	}, nil
}

// ListNotes does not require the folder to exist; an unknown id lists nothing.
func (c *folderService) ListNotes(ctx context.Context, userId uuid.UUID, id uuid.UUID, query *dto.ListNotesQuery) ([]*dto.NoteResponse, error) {
	scoped := dto.ListNotesQuery{}
	if query != nil {
		scoped = *query
	}
	scoped.Folder = id.String()
	return c.noteService.GetAll(ctx, userId, &scoped)
}

func (c *folderService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.Folder, error) {
	folder, err := uow.FolderRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, storeError(err, "")
	}
	if folder == nil {
		return nil, apperror.NotFound(msgFolderNotFound)
	}
	return folder, nil
}

func (c *folderService) ensureNameFree(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, name string, exceptId uuid.UUID) error {
	existing, err := uow.FolderRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByName{Name: name},
	)
	if err != nil {
		return storeError(err, "")
	}
	if existing != nil && existing.Id != exceptId {
		return apperror.Conflict(msgFolderExists)
	}
	return nil
}

func toFolderResponse(folder *entity.Folder) *dto.FolderResponse {
	return &dto.FolderResponse{
		Id:          folder.Id,
		Name:        folder.Name,
		Description: folder.Description,
		Color:       folder.Color,
		IsDefault:   folder.IsDefault,
		User:        folder.UserId,
		CreatedAt:   folder.CreatedAt,
		UpdatedAt:   folder.UpdatedAt,
	}
}
