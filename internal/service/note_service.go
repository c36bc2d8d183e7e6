// FILE: internal/service/note_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

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
	msgNoteNotFound      = "Note not found"
	msgFolderRefNotFound = "Folder not found"
	msgInvalidFolderId   = "Invalid folder id"
)

type INoteService interface {
	GetAll(ctx context.Context, userId uuid.UUID, query *dto.ListNotesQuery) ([]*dto.NoteResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	logger           logger.ILogger
	now              func() time.Time
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		logger:           log,
		now:              time.Now,
	}
}

func (c *noteService) GetAll(ctx context.Context, userId uuid.UUID, query *dto.ListNotesQuery) ([]*dto.NoteResponse, error) {
	if query == nil {
		query = &dto.ListNotesQuery{}
	}

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.WithFolder{},
	}

	if search := strings.TrimSpace(query.Search); search != "" {
		specs = append(specs, specification.NoteSearchQuery{Query: search})
	}

	switch folder := strings.TrimSpace(query.Folder); folder {
	case "":
	case dto.FolderFilterNone:
		specs = append(specs, specification.Unfiled{})
	default:
		folderId, err := uuid.Parse(folder)
		if err != nil {
			return nil, apperror.Validation("Invalid folder filter")
		}
		specs = append(specs, specification.ByFolderID{FolderID: folderId})
	}

	order, err := specification.NoteOrder(query.SortBy, query.SortOrder)
	if err != nil {
		if errors.Is(err, specification.ErrUnsupportedSortField) {
			return nil, apperror.Validation("Unsupported sortBy value: " + query.SortBy)
		}
		return nil, err
	}
	specs = append(specs, order...)

	uow := c.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, storeError(err, "")
	}

	res := make([]*dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		res = append(res, toNoteResponse(note))
	}
	return res, nil
}

func (c *noteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := c.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}

func (c *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	folderId, err := c.resolveFolder(ctx, uow, userId, req.Folder)
	if err != nil {
		return nil, err
	}

	now := c.now()
	note := entity.Note{
		Id:        uuid.New(),
		Title:     req.Title,
		Content:   req.Content,
		UserId:    userId,
		FolderId:  folderId,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, storeError(err, "")
	}

	created, err := c.findOwned(ctx, uow, userId, note.Id)
	if err != nil {
		return nil, err
	}

	publishQuietly(ctx, c.publisherService, c.logger,
		events.NewChangeEvent(events.NoteCreated, userId, note.Id, nil))

	return toNoteResponse(created), nil
}

func (c *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := c.findOwned(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}

	changed := false
	if req.Title != nil {
		if *req.Title == "" {
			return nil, apperror.Validation("Title cannot be empty")
		}
		note.Title = *req.Title
		changed = true
	}
	if req.Content != nil {
		if *req.Content == "" {
			return nil, apperror.Validation("Content cannot be empty")
		}
		note.Content = *req.Content
		changed = true
	}
	if req.Folder.Set {
		folderId, err := c.resolveFolder(ctx, uow, userId, req.Folder)
		if err != nil {
			return nil, err
		}
		note.FolderId = folderId
		changed = true
	}

	if !changed {
		return toNoteResponse(note), nil
	}

	note.UpdatedAt = c.now()
	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, storeError(err, "")
	}

	updated, err := c.findOwned(ctx, uow, userId, note.Id)
	if err != nil {
		return nil, err
	}

	publishQuietly(ctx, c.publisherService, c.logger,
		events.NewChangeEvent(events.NoteUpdated, userId, note.Id, nil))

	return toNoteResponse(updated), nil
}

func (c *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	deleted, err := uow.NoteRepository().Delete(ctx, id, userId)
	if err != nil {
		return storeError(err, "")
	}
	if deleted == 0 {
		return apperror.NotFound(msgNoteNotFound)
	}

	publishQuietly(ctx, c.publisherService, c.logger,
		events.NewChangeEvent(events.NoteDeleted, userId, id, nil))

	return nil
}

func (c *noteService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.Note, error) {
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
		specification.WithFolder{},
	)
	if err != nil {
		return nil, storeError(err, "")
	}
	if note == nil {
		return nil, apperror.NotFound(msgNoteNotFound)
	}
	return note, nil
}

// resolveFolder checks a requested folder reference. nil means unfiled.
func (c *noteService) resolveFolder(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, ref dto.OptionalID) (*uuid.UUID, error) {
	if ref.Invalid {
		return nil, apperror.Validation(msgInvalidFolderId)
	}
	if ref.Value == nil {
		return nil, nil
	}

	count, err := uow.FolderRepository().Count(ctx,
		specification.ByID{ID: *ref.Value},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, storeError(err, "")
	}
	if count == 0 {
		return nil, apperror.Validation(msgFolderRefNotFound)
	}

	folderId := *ref.Value
	return &folderId, nil
}

func toNoteResponse(note *entity.Note) *dto.NoteResponse {
	res := &dto.NoteResponse{
		Id:        note.Id,
		Title:     note.Title,
		Content:   note.Content,
		User:      note.UserId,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
	if note.Folder != nil {
		res.Folder = &dto.NoteFolderResponse{
			Id:    note.Folder.Id,
			Name:  note.Folder.Name,
			Color: note.Folder.Color,
		}
	}
	return res
}
