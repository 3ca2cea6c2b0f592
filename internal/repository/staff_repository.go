package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/records-service/internal/domain"
	"github.com/spec-kit/records-service/internal/multipart"
	"github.com/spec-kit/records-service/internal/store"
)

// StaffStorePath is the single store holding all staff records.
const StaffStorePath = "resources/staff/staff.json"

const staffImageDir = "staff"

// StaffRepository defines persistence access for staff records. The image
// file referenced by a record lives and dies with it.
type StaffRepository interface {
	Add(ctx context.Context, staff domain.Staff, image multipart.File) error
	Delete(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]domain.Staff, bool, error)
}

type staffRepository struct {
	store  *store.Store
	assets *store.Assets
	logger *zap.Logger
}

// NewStaffRepository returns a file-store-backed implementation.
func NewStaffRepository(st *store.Store, assets *store.Assets, logger *zap.Logger) StaffRepository {
	return &staffRepository{store: st, assets: assets, logger: logger}
}

func (r *staffRepository) Add(_ context.Context, staff domain.Staff, image multipart.File) error {
	exists, err := r.store.Exists(StaffStorePath, "name", staff.Name)
	if err != nil {
		return err
	}
	if exists {
		return errDuplicate("name", staff.Name)
	}

	// Asset first, record second. If the record cannot be committed the asset
	// is removed so no orphan survives the failure.
	imagePath, err := r.assets.Save(staffImageDir, image.Filename, image.Data)
	if err != nil {
		return err
	}
	staff.ImagePath = imagePath

	doc, err := toDocument(staff)
	if err != nil {
		r.assets.Remove(imagePath)
		return err
	}
	if _, err := r.store.Insert(StaffStorePath, doc); err != nil {
		r.assets.Remove(imagePath)
		return err
	}
	return nil
}

func (r *staffRepository) Delete(_ context.Context, name string) (bool, error) {
	doc, err := r.store.FindByField(StaffStorePath, "name", name)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	var staff domain.Staff
	if err := fromDocument(doc, &staff); err != nil {
		return false, err
	}

	removed, err := r.store.Delete(StaffStorePath, "name", name)
	if err != nil {
		return false, err
	}
	if removed {
		r.assets.Remove(staff.ImagePath)
	}
	return removed, nil
}

func (r *staffRepository) List(_ context.Context) ([]domain.Staff, bool, error) {
	docs, recovered, err := r.store.List(StaffStorePath)
	if err != nil {
		return nil, false, err
	}

	list := make([]domain.Staff, 0, len(docs))
	for _, doc := range docs {
		var staff domain.Staff
		if err := fromDocument(doc, &staff); err != nil {
			r.logger.Warn("skipping undecodable staff record", zap.Error(err))
			continue
		}
		list = append(list, staff)
	}
	return list, recovered, nil
}
