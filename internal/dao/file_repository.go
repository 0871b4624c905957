package dao

import (
	"context"
	"errors"

	"github.com/skyring/file-explorer-service/internal/domain"
	"github.com/skyring/file-explorer-service/internal/model"
	"github.com/skyring/file-explorer-service/pkg/convert"
	"github.com/skyring/file-explorer-service/pkg/timex"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fileRepository struct {
	*Dao
}

func NewFileRepository(d *Dao) domain.FileRepository {
	return &fileRepository{Dao: d}
}

func (r *fileRepository) GetByID(ctx context.Context, id string) (*domain.File, error) {
	var m model.File
	err := r.Db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.modelToDomain(&m), nil
}

func (r *fileRepository) ListByFolder(ctx context.Context, folderID string) ([]*domain.File, error) {
	var ms []*model.File
	err := r.Db.WithContext(ctx).Where("folder_id = ?", folderID).Find(&ms).Error
	if err != nil {
		return nil, err
	}
	res := make([]*domain.File, 0, len(ms))
	for _, m := range ms {
		res = append(res, r.modelToDomain(m))
	}
	return res, nil
}

// CountFilesGroupedByFolder is the file half of the batched
// has-children computation, one grouped query for any number of ids.
func (r *fileRepository) CountFilesGroupedByFolder(ctx context.Context, folderIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64)
	if len(folderIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		FolderID string `gorm:"column:folder_id"`
		Total    int64  `gorm:"column:total"`
	}
	err := r.Db.WithContext(ctx).
		Model(&model.File{}).
		Select("folder_id, count(*) as total").
		Where("folder_id IN ?", folderIDs).
		Group("folder_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.FolderID] = row.Total
	}
	return counts, nil
}

func (r *fileRepository) Create(ctx context.Context, file *domain.File) (*domain.File, error) {
	var result *domain.File
	err := r.ExecuteWrite(ctx, func(db *gorm.DB) error {
		m := r.domainToModel(file)
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		m.Size = int64(len(m.Content))
		m.CreatedAt = timex.Now()
		m.UpdatedAt = timex.Now()
		if err := db.Create(m).Error; err != nil {
			return err
		}
		result = r.modelToDomain(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *fileRepository) Rename(ctx context.Context, id string, name string) error {
	return r.ExecuteWrite(ctx, func(db *gorm.DB) error {
		tx := db.Model(&model.File{}).Where("id = ?", id).Updates(map[string]any{
			"name":       name,
			"updated_at": timex.Now(),
		})
		if tx.Error != nil {
			return tx.Error
		}
		if tx.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *fileRepository) Delete(ctx context.Context, id string) error {
	return r.ExecuteWrite(ctx, func(db *gorm.DB) error {
		tx := db.Where("id = ?", id).Delete(&model.File{})
		if tx.Error != nil {
			return tx.Error
		}
		if tx.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *fileRepository) modelToDomain(m *model.File) *domain.File {
	d := convert.StructAssign(m, &domain.File{}).(*domain.File)
	d.CreatedAt = m.CreatedAt.Time()
	d.UpdatedAt = m.UpdatedAt.Time()
	return d
}

func (r *fileRepository) domainToModel(d *domain.File) *model.File {
	return convert.StructAssign(d, &model.File{}).(*model.File)
}
