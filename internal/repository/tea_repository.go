package repository

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/records-service/internal/domain"
	"github.com/spec-kit/records-service/internal/multipart"
	"github.com/spec-kit/records-service/internal/store"
	apperrors "github.com/spec-kit/records-service/pkg/util"
)

const teaStoreRoot = "resources/tea"

// PartitionPath returns the store file for one category/subcategory pair.
// Callers must validate both components first; the join itself does not.
func PartitionPath(category, subcategory string) string {
	return filepath.Join(teaStoreRoot, category+"_tea", subcategory+"_tea", "tea.json")
}

func teaImageDir(category string) string {
	return filepath.Join("tea", category+"_tea")
}

// validPartition rejects category/subcategory values that would escape the
// store root once joined into a partition or image path.
func validPartition(category, subcategory string) error {
	for field, value := range map[string]string{"category": category, "subcategory": subcategory} {
		if value == "" || strings.Contains(value, "..") || strings.ContainsAny(value, `/\`) {
			return apperrors.NewMalformedInput("invalid "+field, map[string]any{field: value})
		}
	}
	return nil
}

// TeaRepository defines persistence access for catalog items. Items are
// partitioned across one store per category/subcategory pair; the aggregate
// listing walks every partition.
type TeaRepository interface {
	Add(ctx context.Context, item domain.TeaItem, image multipart.File) error
	Delete(ctx context.Context, category, subcategory, name string) (bool, error)
	ListAll(ctx context.Context) ([]domain.TeaListing, error)
}

type teaRepository struct {
	store  *store.Store
	assets *store.Assets
	logger *zap.Logger
}

// NewTeaRepository returns a file-store-backed implementation.
func NewTeaRepository(st *store.Store, assets *store.Assets, logger *zap.Logger) TeaRepository {
	return &teaRepository{store: st, assets: assets, logger: logger}
}

func (r *teaRepository) Add(_ context.Context, item domain.TeaItem, image multipart.File) error {
	if err := validPartition(item.Category, item.Subcategory); err != nil {
		return err
	}
	partition := PartitionPath(item.Category, item.Subcategory)

	exists, err := r.store.Exists(partition, "name", item.Name)
	if err != nil {
		return err
	}
	if exists {
		return errDuplicate("name", item.Name)
	}

	imagePath, err := r.assets.Save(teaImageDir(item.Category), image.Filename, image.Data)
	if err != nil {
		return err
	}
	item.ImagePath = imagePath

	doc, err := toDocument(item)
	if err != nil {
		r.assets.Remove(imagePath)
		return err
	}
	if _, err := r.store.Insert(partition, doc); err != nil {
		r.assets.Remove(imagePath)
		return err
	}
	return nil
}

func (r *teaRepository) Delete(_ context.Context, category, subcategory, name string) (bool, error) {
	if err := validPartition(category, subcategory); err != nil {
		return false, err
	}
	partition := PartitionPath(category, subcategory)

	doc, err := r.store.FindByField(partition, "name", name)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	var item domain.TeaItem
	if err := fromDocument(doc, &item); err != nil {
		return false, err
	}

	removed, err := r.store.Delete(partition, "name", name)
	if err != nil {
		return false, err
	}
	if removed {
		r.assets.Remove(item.ImagePath)
	}
	return removed, nil
}

// ListAll aggregates every partition under the tea store root. Partitions
// that self-healed to empty contribute nothing.
func (r *teaRepository) ListAll(_ context.Context) ([]domain.TeaListing, error) {
	root := filepath.Join(r.store.Root(), teaStoreRoot)

	var partitions []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == "tea.json" {
			rel, err := filepath.Rel(r.store.Root(), path)
			if err != nil {
				return err
			}
			partitions = append(partitions, rel)
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.TeaListing{}, nil
		}
		return nil, fmt.Errorf("walk tea partitions: %w", err)
	}

	listings := make([]domain.TeaListing, 0)
	for _, partition := range partitions {
		docs, recovered, err := r.store.List(partition)
		if err != nil {
			return nil, err
		}
		if recovered {
			r.logger.Warn("tea partition recovered as empty", zap.String("path", partition))
		}
		for _, doc := range docs {
			var item domain.TeaItem
			if err := fromDocument(doc, &item); err != nil {
				r.logger.Warn("skipping undecodable tea record", zap.Error(err))
				continue
			}
			listings = append(listings, domain.TeaListing{
				Name:        item.Name,
				Category:    item.Category,
				Subcategory: item.Subcategory,
				Description: item.Description,
				Price:       item.Price,
				Quantity:    item.Quantity,
				ImageURL:    ImageURL(item.ImagePath),
			})
		}
	}
	return listings, nil
}

// ImageURL derives the servable URL for a stored image path.
func ImageURL(imagePath string) string {
	if imagePath == "" {
		return ""
	}
	return "/images/" + filepath.ToSlash(imagePath)
}
