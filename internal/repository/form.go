package repository

import (
	"github.com/fieldopskit/fieldops-go/internal/domain/form"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FormRepo interface {
	Create(f *form.Form) error
	Save(f *form.Form) error
	FindByID(id uint) (*form.Form, error)
	FindAll() ([]form.Form, error)
	Delete(id uint) error
	WithTx(tx *gorm.DB) FormRepo
}

type DBFormRepo struct {
	db *gorm.DB
}

func NewFormRepo(db *gorm.DB) *DBFormRepo {
	return &DBFormRepo{db: db}
}

func (r *DBFormRepo) Create(f *form.Form) error {
	return r.db.Create(f).Error
}

func (r *DBFormRepo) Save(f *form.Form) error {
	return r.db.Save(f).Error
}

func (r *DBFormRepo) FindByID(id uint) (*form.Form, error) {
	var f form.Form
	if err := r.db.First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *DBFormRepo) FindAll() ([]form.Form, error) {
	var forms []form.Form
	err := r.db.Order("created_at desc").Find(&forms).Error
	return forms, err
}

// Delete soft-deletes; submissions keep referencing the row.
func (r *DBFormRepo) Delete(id uint) error {
	return r.db.Delete(&form.Form{}, id).Error
}

func (r *DBFormRepo) WithTx(tx *gorm.DB) FormRepo {
	if tx == nil {
		return r
	}
	return &DBFormRepo{db: tx}
}

type AttachmentRepo interface {
	Upsert(a *form.FormAttachment) error
	Find(formID, agentID uint) (*form.FormAttachment, error)
	ListByForm(formID uint) ([]form.FormAttachment, error)
	Deactivate(formID, agentID uint) error
	WithTx(tx *gorm.DB) AttachmentRepo
}

type DBAttachmentRepo struct {
	db *gorm.DB
}

func NewAttachmentRepo(db *gorm.DB) *DBAttachmentRepo {
	return &DBAttachmentRepo{db: db}
}

// Upsert keeps the at-most-one-row-per-(form,agent) invariant: re-attaching
// an agent updates the existing row in place.
func (r *DBAttachmentRepo) Upsert(a *form.FormAttachment) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "form_id"}, {Name: "agent_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"criteria", "active", "updated_at"}),
	}).Create(a).Error
}

func (r *DBAttachmentRepo) Find(formID, agentID uint) (*form.FormAttachment, error) {
	var a form.FormAttachment
	err := r.db.Where("form_id = ? AND agent_id = ?", formID, agentID).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *DBAttachmentRepo) ListByForm(formID uint) ([]form.FormAttachment, error) {
	var atts []form.FormAttachment
	err := r.db.Where("form_id = ?", formID).Order("agent_id").Find(&atts).Error
	return atts, err
}

func (r *DBAttachmentRepo) Deactivate(formID, agentID uint) error {
	return r.db.Model(&form.FormAttachment{}).
		Where("form_id = ? AND agent_id = ?", formID, agentID).
		Update("active", false).Error
}

func (r *DBAttachmentRepo) WithTx(tx *gorm.DB) AttachmentRepo {
	if tx == nil {
		return r
	}
	return &DBAttachmentRepo{db: tx}
}
