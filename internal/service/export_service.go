package service

import (
	"context"
	"fmt"
	"time"

	"github.com/skyring/file-explorer-service/internal/domain"
	"github.com/skyring/file-explorer-service/pkg/code"
	"github.com/skyring/file-explorer-service/pkg/logger"
	"github.com/skyring/file-explorer-service/pkg/storage"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// ExportService writes a JSON snapshot of the whole tree to a blob
// target. Snapshots carry structure and metadata, not file content.
type ExportService interface {
	// ExportSnapshot walks the tree and uploads one snapshot,
	// returning the blob key it was stored under
	ExportSnapshot(ctx context.Context) (string, error)
}

// ExportFolder snapshot node
type ExportFolder struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	ParentID   string          `json:"parentFolderId"`
	SubFolders []*ExportFolder `json:"subFolders"`
	Files      []*ExportFile   `json:"files"`
}

// ExportFile snapshot leaf
type ExportFile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Mime string `json:"mime"`
	Size int64  `json:"size"`
}

// ExportSnapshotDoc snapshot envelope
type ExportSnapshotDoc struct {
	ExportedAt  time.Time       `json:"exportedAt"`
	FolderCount int             `json:"folderCount"`
	FileCount   int             `json:"fileCount"`
	Roots       []*ExportFolder `json:"roots"`
	RootFiles   []*ExportFile   `json:"rootFiles"`
}

type exportService struct {
	folderRepo domain.FolderRepository
	fileRepo   domain.FileRepository
	store      storage.Storager
	logger     *zap.Logger
}

func NewExportService(folderRepo domain.FolderRepository, fileRepo domain.FileRepository, store storage.Storager, lg *zap.Logger) ExportService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &exportService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		store:      store,
		logger:     lg,
	}
}

func (s *exportService) ExportSnapshot(ctx context.Context) (string, error) {
	doc := &ExportSnapshotDoc{ExportedAt: time.Now()}

	roots, err := s.exportLevel(ctx, domain.RootFolderID, doc)
	if err != nil {
		return "", err
	}
	doc.Roots = roots

	rootFiles, err := s.exportFiles(ctx, domain.RootFolderID, doc)
	if err != nil {
		return "", err
	}
	doc.RootFiles = rootFiles

	payload, err := sonic.Marshal(doc)
	if err != nil {
		return "", code.ErrorExportFailed.WithDetails(err.Error())
	}

	key := fmt.Sprintf("%s/tree-%s.json",
		doc.ExportedAt.Format("2006/01"),
		doc.ExportedAt.Format("20060102-150405"))

	if _, err := s.store.SendContent(key, payload, doc.ExportedAt); err != nil {
		s.logger.Error("snapshot upload failed", zap.String(logger.FieldFileKey, key), zap.Error(err))
		return "", code.ErrorExportFailed.WithDetails(err.Error())
	}

	s.logger.Info("snapshot exported",
		zap.String(logger.FieldFileKey, key),
		zap.Int("folders", doc.FolderCount),
		zap.Int("files", doc.FileCount))
	return key, nil
}

func (s *exportService) exportLevel(ctx context.Context, parentID string, doc *ExportSnapshotDoc) ([]*ExportFolder, error) {
	var folders []*domain.Folder
	var err error
	if parentID == domain.RootFolderID {
		folders, err = s.folderRepo.ListRoots(ctx)
	} else {
		folders, err = s.folderRepo.ListSubfolders(ctx, parentID)
	}
	if err != nil {
		return nil, code.ErrorExportFailed.WithDetails(err.Error())
	}

	res := make([]*ExportFolder, 0, len(folders))
	for _, f := range folders {
		doc.FolderCount++
		node := &ExportFolder{ID: f.ID, Name: f.Name, ParentID: f.ParentID}

		node.SubFolders, err = s.exportLevel(ctx, f.ID, doc)
		if err != nil {
			return nil, err
		}
		node.Files, err = s.exportFiles(ctx, f.ID, doc)
		if err != nil {
			return nil, err
		}
		res = append(res, node)
	}
	return res, nil
}

func (s *exportService) exportFiles(ctx context.Context, folderID string, doc *ExportSnapshotDoc) ([]*ExportFile, error) {
	files, err := s.fileRepo.ListByFolder(ctx, folderID)
	if err != nil {
		return nil, code.ErrorExportFailed.WithDetails(err.Error())
	}
	res := make([]*ExportFile, 0, len(files))
	for _, f := range files {
		doc.FileCount++
		res = append(res, &ExportFile{ID: f.ID, Name: f.Name, Mime: f.Mime, Size: f.Size})
	}
	return res, nil
}
