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

type folderRepository struct {
	*Dao
}

func NewFolderRepository(d *Dao) domain.FolderRepository {
	return &folderRepository{Dao: d}
}

func (r *folderRepository) GetByID(ctx context.Context, id string) (*domain.Folder, error) {
	var m model.Folder
	err := r.Db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.modelToDomain(&m), nil
}

func (r *folderRepository) ListRoots(ctx context.Context) ([]*domain.Folder, error) {
	return r.list(ctx, domain.RootFolderID)
}

func (r *folderRepository) ListSubfolders(ctx context.Context, parentID string) ([]*domain.Folder, error) {
	return r.list(ctx, parentID)
}

func (r *folderRepository) list(ctx context.Context, parentID string) ([]*domain.Folder, error) {
	var ms []*model.Folder
	err := r.Db.WithContext(ctx).Where("parent_id = ?", parentID).Find(&ms).Error
	if err != nil {
		return nil, err
	}
	res := make([]*domain.Folder, 0, len(ms))
	for _, m := range ms {
		res = append(res, r.modelToDomain(m))
	}
	return res, nil
}

// CountSubfoldersGroupedByParent answers "which of these folders have
// subfolders, and how many" in a single grouped query regardless of
// how many ids are asked about.
func (r *folderRepository) CountSubfoldersGroupedByParent(ctx context.Context, parentIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64)
	if len(parentIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ParentID string `gorm:"column:parent_id"`
		Total    int64  `gorm:"column:total"`
	}
	err := r.Db.WithContext(ctx).
		Model(&model.Folder{}).
		Select("parent_id, count(*) as total").
		Where("parent_id IN ?", parentIDs).
		Group("parent_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.ParentID] = row.Total
	}
	return counts, nil
}

func (r *folderRepository) Create(ctx context.Context, folder *domain.Folder) (*domain.Folder, error) {
	var result *domain.Folder
	err := r.ExecuteWrite(ctx, func(db *gorm.DB) error {
		m := r.domainToModel(folder)
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
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

func (r *folderRepository) Rename(ctx context.Context, id string, name string) error {
	return r.ExecuteWrite(ctx, func(db *gorm.DB) error {
		tx := db.Model(&model.Folder{}).Where("id = ?", id).Updates(map[string]any{
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

// Delete removes the folder, every folder below it and every file in
// the removed subtree, all within one transaction.
func (r *folderRepository) Delete(ctx context.Context, id string) error {
	return r.ExecuteWrite(ctx, func(db *gorm.DB) error {
		return db.Transaction(func(tx *gorm.DB) error {
			ids, err := collectSubtreeIDs(tx, id)
			if err != nil {
				return err
			}
			if err := tx.Where("folder_id IN ?", ids).Delete(&model.File{}).Error; err != nil {
				return err
			}
			res := tx.Where("id IN ?", ids).Delete(&model.Folder{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return nil
		})
	})
}

// collectSubtreeIDs walks the tree breadth-first, one query per
// level, and returns id plus every descendant folder id.
func collectSubtreeIDs(tx *gorm.DB, id string) ([]string, error) {
	ids := []string{id}
	frontier := []string{id}

	for len(frontier) > 0 {
		var next []string
		err := tx.Model(&model.Folder{}).
			Where("parent_id IN ?", frontier).
			Pluck("id", &next).Error
		if err != nil {
			return nil, err
		}
		ids = append(ids, next...)
		frontier = next
	}
	return ids, nil
}

func (r *folderRepository) modelToDomain(m *model.Folder) *domain.Folder {
	d := convert.StructAssign(m, &domain.Folder{}).(*domain.Folder)
	d.CreatedAt = m.CreatedAt.Time()
	d.UpdatedAt = m.UpdatedAt.Time()
	return d
}

func (r *folderRepository) domainToModel(d *domain.Folder) *model.Folder {
	return convert.StructAssign(d, &model.Folder{}).(*model.Folder)
}
