package repository

import (
	"github.com/fieldopskit/fieldops-go/internal/domain/agent"
	"gorm.io/gorm"
)

type AgentRepo interface {
	Create(a *agent.Agent) error
	Save(a *agent.Agent) error
	FindByID(id uint) (*agent.Agent, error)
	FindAll() ([]agent.Agent, error)
	Delete(id uint) error
	WithTx(tx *gorm.DB) AgentRepo
}

type DBAgentRepo struct {
	db *gorm.DB
}

func NewAgentRepo(db *gorm.DB) *DBAgentRepo {
	return &DBAgentRepo{db: db}
}

func (r *DBAgentRepo) Create(a *agent.Agent) error {
	return r.db.Create(a).Error
}

func (r *DBAgentRepo) Save(a *agent.Agent) error {
	return r.db.Save(a).Error
}

func (r *DBAgentRepo) FindByID(id uint) (*agent.Agent, error) {
	var a agent.Agent
	if err := r.db.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *DBAgentRepo) FindAll() ([]agent.Agent, error) {
	var agents []agent.Agent
	err := r.db.Order("created_at desc").Find(&agents).Error
	return agents, err
}

func (r *DBAgentRepo) Delete(id uint) error {
	return r.db.Delete(&agent.Agent{}, id).Error
}

func (r *DBAgentRepo) WithTx(tx *gorm.DB) AgentRepo {
	if tx == nil {
		return r
	}
	return &DBAgentRepo{db: tx}
}
