package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/skyring/file-explorer-service/internal/domain"
	"github.com/skyring/file-explorer-service/internal/dto"
	"github.com/skyring/file-explorer-service/internal/preview"
	"github.com/skyring/file-explorer-service/pkg/code"
	"github.com/skyring/file-explorer-service/pkg/logger"
	"github.com/skyring/file-explorer-service/pkg/timex"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// FolderService answers folder aggregates and mutations. An empty
// parent id addresses the synthetic root.
type FolderService interface {
	// ResolveChildren returns self plus immediate subfolders (with
	// hasChildren) and immediate files (with previews)
	ResolveChildren(ctx context.Context, parentID string) (*dto.FolderDTO, error)

	// ResolveDirectSubfolders is the folder-only variant, skipping
	// files and preview work
	ResolveDirectSubfolders(ctx context.Context, parentID string) ([]*dto.FolderDTO, error)

	Get(ctx context.Context, id string) (*dto.FolderDTO, error)
	Create(ctx context.Context, params *dto.FolderCreateRequest) (*dto.FolderDTO, error)
	Rename(ctx context.Context, id string, name string) error
	Delete(ctx context.Context, id string) error
}

type folderService struct {
	folderRepo domain.FolderRepository
	fileRepo   domain.FileRepository
	previews   *preview.Cache
	logger     *zap.Logger
	sf         singleflight.Group
}

func NewFolderService(folderRepo domain.FolderRepository, fileRepo domain.FileRepository, previews *preview.Cache, lg *zap.Logger) FolderService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &folderService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		previews:   previews,
		logger:     lg,
	}
}

func (s *folderService) domainToDTO(f *domain.Folder) *dto.FolderDTO {
	if f == nil {
		return nil
	}
	return &dto.FolderDTO{
		ID:        f.ID,
		Name:      f.Name,
		ParentID:  f.ParentID,
		UpdatedAt: timex.Time(f.UpdatedAt),
		CreatedAt: timex.Time(f.CreatedAt),
	}
}

func (s *folderService) fileToDTO(f *domain.File, artifact preview.Artifact) *dto.FileDTO {
	return &dto.FileDTO{
		ID:          f.ID,
		Name:        f.Name,
		FolderID:    f.FolderID,
		Mime:        f.Mime,
		Size:        f.Size,
		PreviewKind: int(artifact.Kind),
		Preview:     artifact.Bytes,
		PreviewMime: artifact.Mime,
		UpdatedAt:   timex.Time(f.UpdatedAt),
		CreatedAt:   timex.Time(f.CreatedAt),
	}
}

// ResolveChildren aggregates one level of the tree. Concurrent calls
// for the same parent are coalesced into a single pass; a missing
// parent yields an empty aggregate, not an error; any storage
// failure fails the whole aggregation with nothing partially built.
func (s *folderService) ResolveChildren(ctx context.Context, parentID string) (*dto.FolderDTO, error) {
	v, err, _ := s.sf.Do("children:"+parentID, func() (any, error) {
		return s.resolveChildren(ctx, parentID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*dto.FolderDTO), nil
}

func (s *folderService) resolveChildren(ctx context.Context, parentID string) (*dto.FolderDTO, error) {
	self, found, err := s.resolveSelf(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if !found {
		return self, nil
	}

	subs, files, err := s.fetchLevel(ctx, parentID)
	if err != nil {
		return nil, err
	}

	subDTOs, err := s.annotateHasChildren(ctx, subs)
	if err != nil {
		return nil, err
	}

	fileDTOs := make([]*dto.FileDTO, 0, len(files))
	for _, f := range files {
		artifact := s.previews.GetOrCreate(f.ID, f.Content, f.Mime)
		fileDTOs = append(fileDTOs, s.fileToDTO(f, artifact))
	}

	self.SubFolders = subDTOs
	self.Files = fileDTOs
	self.HasChildren = len(subDTOs)+len(fileDTOs) > 0
	return self, nil
}

func (s *folderService) ResolveDirectSubfolders(ctx context.Context, parentID string) ([]*dto.FolderDTO, error) {
	_, found, err := s.resolveSelf(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if !found {
		return []*dto.FolderDTO{}, nil
	}

	var subs []*domain.Folder
	if parentID == domain.RootFolderID {
		subs, err = s.folderRepo.ListRoots(ctx)
	} else {
		subs, err = s.folderRepo.ListSubfolders(ctx, parentID)
	}
	if err != nil {
		s.logger.Error("subfolder list failed", zap.String(logger.FieldParentID, parentID), zap.Error(err))
		return nil, code.ErrorFolderListFailed.WithDetails(err.Error())
	}

	return s.annotateHasChildren(ctx, subs)
}

// resolveSelf maps parentID to its folder. found=false means the id
// does not exist (the synthetic root always exists).
func (s *folderService) resolveSelf(ctx context.Context, parentID string) (*dto.FolderDTO, bool, error) {
	if parentID == domain.RootFolderID {
		root := domain.SyntheticRoot()
		return &dto.FolderDTO{
			ID:         root.ID,
			Name:       root.Name,
			ParentID:   root.ParentID,
			SubFolders: []*dto.FolderDTO{},
			Files:      []*dto.FileDTO{},
		}, true, nil
	}

	f, err := s.folderRepo.GetByID(ctx, parentID)
	if err != nil {
		s.logger.Error("folder fetch failed", zap.String(logger.FieldFolderID, parentID), zap.Error(err))
		return nil, false, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if f == nil {
		// gone or never existed: an empty aggregate, not an error
		return &dto.FolderDTO{
			ID:         parentID,
			SubFolders: []*dto.FolderDTO{},
			Files:      []*dto.FileDTO{},
		}, false, nil
	}

	d := s.domainToDTO(f)
	d.SubFolders = []*dto.FolderDTO{}
	d.Files = []*dto.FileDTO{}
	return d, true, nil
}

func (s *folderService) fetchLevel(ctx context.Context, parentID string) ([]*domain.Folder, []*domain.File, error) {
	var subs []*domain.Folder
	var err error
	if parentID == domain.RootFolderID {
		subs, err = s.folderRepo.ListRoots(ctx)
	} else {
		subs, err = s.folderRepo.ListSubfolders(ctx, parentID)
	}
	if err != nil {
		s.logger.Error("subfolder list failed", zap.String(logger.FieldParentID, parentID), zap.Error(err))
		return nil, nil, code.ErrorFolderListFailed.WithDetails(err.Error())
	}

	files, err := s.fileRepo.ListByFolder(ctx, parentID)
	if err != nil {
		s.logger.Error("file list failed", zap.String(logger.FieldParentID, parentID), zap.Error(err))
		return nil, nil, code.ErrorFolderListFailed.WithDetails(err.Error())
	}
	return subs, files, nil
}

// annotateHasChildren computes hasChildren for every fetched
// subfolder in two grouped queries total, regardless of fan-out.
func (s *folderService) annotateHasChildren(ctx context.Context, subs []*domain.Folder) ([]*dto.FolderDTO, error) {
	ids := make([]string, 0, len(subs))
	for _, f := range subs {
		ids = append(ids, f.ID)
	}

	subCounts, err := s.folderRepo.CountSubfoldersGroupedByParent(ctx, ids)
	if err != nil {
		s.logger.Error("subfolder count failed", zap.Error(err))
		return nil, code.ErrorFolderListFailed.WithDetails(err.Error())
	}
	fileCounts, err := s.fileRepo.CountFilesGroupedByFolder(ctx, ids)
	if err != nil {
		s.logger.Error("file count failed", zap.Error(err))
		return nil, code.ErrorFolderListFailed.WithDetails(err.Error())
	}

	res := make([]*dto.FolderDTO, 0, len(subs))
	for _, f := range subs {
		d := s.domainToDTO(f)
		d.HasChildren = subCounts[f.ID] > 0 || fileCounts[f.ID] > 0
		d.SubFolders = []*dto.FolderDTO{}
		d.Files = []*dto.FileDTO{}
		res = append(res, d)
	}
	return res, nil
}

func (s *folderService) Get(ctx context.Context, id string) (*dto.FolderDTO, error) {
	f, err := s.folderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if f == nil {
		return nil, code.ErrorFolderNotFound
	}
	return s.domainToDTO(f), nil
}

func (s *folderService) Create(ctx context.Context, params *dto.FolderCreateRequest) (*dto.FolderDTO, error) {
	if params.ParentID != domain.RootFolderID {
		parent, err := s.folderRepo.GetByID(ctx, params.ParentID)
		if err != nil {
			return nil, code.ErrorDBQuery.WithDetails(err.Error())
		}
		if parent == nil {
			return nil, code.ErrorFolderNotFound.WithDetails(fmt.Sprintf("parent %s", params.ParentID))
		}
	}

	created, err := s.folderRepo.Create(ctx, &domain.Folder{
		Name:     params.Name,
		ParentID: params.ParentID,
	})
	if err != nil {
		s.logger.Error("folder create failed", zap.String(logger.FieldName, params.Name), zap.Error(err))
		return nil, code.ErrorFolderCreateFailed.WithDetails(err.Error())
	}

	s.logger.Info("folder created",
		zap.String(logger.FieldFolderID, created.ID),
		zap.String(logger.FieldParentID, created.ParentID),
		zap.String(logger.FieldName, created.Name))
	return s.domainToDTO(created), nil
}

func (s *folderService) Rename(ctx context.Context, id string, name string) error {
	err := s.folderRepo.Rename(ctx, id, name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return code.ErrorFolderNotFound
	}
	if err != nil {
		s.logger.Error("folder rename failed", zap.String(logger.FieldFolderID, id), zap.Error(err))
		return code.ErrorFolderRenameFailed.WithDetails(err.Error())
	}
	return nil
}

func (s *folderService) Delete(ctx context.Context, id string) error {
	err := s.folderRepo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return code.ErrorFolderNotFound
	}
	if err != nil {
		s.logger.Error("folder delete failed", zap.String(logger.FieldFolderID, id), zap.Error(err))
		return code.ErrorFolderDeleteFailed.WithDetails(err.Error())
	}
	s.logger.Info("folder deleted", zap.String(logger.FieldFolderID, id))
	return nil
}
