package service

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"github.com/skyring/file-explorer-service/internal/domain"
	"github.com/skyring/file-explorer-service/internal/dto"
	"github.com/skyring/file-explorer-service/internal/preview"
	"github.com/skyring/file-explorer-service/pkg/code"
	"github.com/skyring/file-explorer-service/pkg/fileurl"
	"github.com/skyring/file-explorer-service/pkg/logger"
	"github.com/skyring/file-explorer-service/pkg/timex"
	"github.com/skyring/file-explorer-service/pkg/workerpool"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FileService file operations. Content is immutable after upload;
// only the name can change.
type FileService interface {
	Get(ctx context.Context, id string) (*dto.FileContentDTO, error)
	GetPreview(ctx context.Context, id string) (*dto.FilePreviewDTO, error)

	// Upload stores the accepted multipart files under parentID.
	// Files failing the extension, mime or size constraints are
	// skipped, not fatal.
	Upload(ctx context.Context, parentID string, headers []*multipart.FileHeader) ([]*dto.FileDTO, error)

	Rename(ctx context.Context, id string, name string) error
	Delete(ctx context.Context, id string) error
}

type fileService struct {
	fileRepo   domain.FileRepository
	folderRepo domain.FolderRepository
	previews   *preview.Cache
	pool       *workerpool.Pool
	upload     UploadConfig
	logger     *zap.Logger
}

func NewFileService(fileRepo domain.FileRepository, folderRepo domain.FolderRepository, previews *preview.Cache, pool *workerpool.Pool, upload UploadConfig, lg *zap.Logger) FileService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &fileService{
		fileRepo:   fileRepo,
		folderRepo: folderRepo,
		previews:   previews,
		pool:       pool,
		upload:     upload,
		logger:     lg,
	}
}

func (s *fileService) domainToDTO(f *domain.File, artifact preview.Artifact) *dto.FileDTO {
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

func (s *fileService) Get(ctx context.Context, id string) (*dto.FileContentDTO, error) {
	f, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if f == nil {
		return nil, code.ErrorFileNotFound
	}

	artifact := s.previews.GetOrCreate(f.ID, f.Content, f.Mime)
	return &dto.FileContentDTO{
		FileDTO: *s.domainToDTO(f, artifact),
		Content: f.Content,
	}, nil
}

func (s *fileService) GetPreview(ctx context.Context, id string) (*dto.FilePreviewDTO, error) {
	f, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if f == nil {
		return nil, code.ErrorFileNotFound
	}

	artifact := s.previews.GetOrCreate(f.ID, f.Content, f.Mime)
	return &dto.FilePreviewDTO{
		ID:          f.ID,
		PreviewKind: int(artifact.Kind),
		Preview:     artifact.Bytes,
		PreviewMime: artifact.Mime,
	}, nil
}

func (s *fileService) Upload(ctx context.Context, parentID string, headers []*multipart.FileHeader) ([]*dto.FileDTO, error) {
	if s.upload.MaxFiles > 0 && len(headers) > s.upload.MaxFiles {
		return nil, code.ErrorUploadFileFailed.WithDetails("too many files in one request")
	}

	if parentID != domain.RootFolderID {
		parent, err := s.folderRepo.GetByID(ctx, parentID)
		if err != nil {
			return nil, code.ErrorDBQuery.WithDetails(err.Error())
		}
		if parent == nil {
			return nil, code.ErrorFolderNotFound
		}
	}

	res := make([]*dto.FileDTO, 0, len(headers))
	for _, h := range headers {
		if !s.accepts(h) {
			s.logger.Info("upload skipped",
				zap.String(logger.FieldName, h.Filename),
				zap.Int64(logger.FieldSize, h.Size))
			continue
		}

		content, err := readHeader(h)
		if err != nil {
			s.logger.Error("upload read failed", zap.String(logger.FieldName, h.Filename), zap.Error(err))
			return nil, code.ErrorUploadFileFailed.WithDetails(err.Error())
		}

		created, err := s.fileRepo.Create(ctx, &domain.File{
			Name:     h.Filename,
			FolderID: parentID,
			Mime:     headerMime(h),
			Content:  content,
		})
		if err != nil {
			s.logger.Error("upload store failed", zap.String(logger.FieldName, h.Filename), zap.Error(err))
			return nil, code.ErrorDBWrite.WithDetails(err.Error())
		}

		s.warmPreview(created)
		res = append(res, s.domainToDTO(created, preview.None))
	}

	s.logger.Info("upload finished",
		zap.String(logger.FieldParentID, parentID),
		zap.Int("accepted", len(res)),
		zap.Int("received", len(headers)))
	return res, nil
}

// warmPreview derives the preview off the request path. The pool
// completes the work even when the uploader goes away, so the first
// reader gets a cache hit.
func (s *fileService) warmPreview(f *domain.File) {
	if s.pool == nil {
		s.previews.GetOrCreate(f.ID, f.Content, f.Mime)
		return
	}
	id, content, mime := f.ID, f.Content, f.Mime
	err := s.pool.SubmitAsync(context.Background(), func(context.Context) error {
		s.previews.GetOrCreate(id, content, mime)
		return nil
	})
	if err != nil {
		// pool saturated: derive lazily on first preview request
		s.logger.Warn("preview warm skipped", zap.String(logger.FieldFileID, id), zap.Error(err))
	}
}

func (s *fileService) accepts(h *multipart.FileHeader) bool {
	if limit := s.upload.MaxSizeBytes(); limit > 0 && h.Size > limit {
		return false
	}
	if len(s.upload.AllowExts) > 0 {
		ext := strings.ToLower(fileurl.GetFileExt(h.Filename))
		ok := false
		for _, allowed := range s.upload.AllowExts {
			if strings.EqualFold(ext, allowed) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if len(s.upload.AllowMimes) > 0 {
		mime := headerMime(h)
		ok := false
		for _, allowed := range s.upload.AllowMimes {
			if strings.HasPrefix(mime, allowed) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func (s *fileService) Rename(ctx context.Context, id string, name string) error {
	err := s.fileRepo.Rename(ctx, id, name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return code.ErrorFileNotFound
	}
	if err != nil {
		s.logger.Error("file rename failed", zap.String(logger.FieldFileID, id), zap.Error(err))
		return code.ErrorFileRenameFailed.WithDetails(err.Error())
	}
	return nil
}

func (s *fileService) Delete(ctx context.Context, id string) error {
	err := s.fileRepo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return code.ErrorFileNotFound
	}
	if err != nil {
		s.logger.Error("file delete failed", zap.String(logger.FieldFileID, id), zap.Error(err))
		return code.ErrorFileDeleteFailed.WithDetails(err.Error())
	}
	s.logger.Info("file deleted", zap.String(logger.FieldFileID, id))
	return nil
}

func readHeader(h *multipart.FileHeader) ([]byte, error) {
	f, err := h.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func headerMime(h *multipart.FileHeader) string {
	return h.Header.Get("Content-Type")
}
