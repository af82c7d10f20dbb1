package application

import (
	"github.com/fieldopskit/fieldops-go/internal/domain/agent"
	"github.com/fieldopskit/fieldops-go/internal/repository"
)

type AgentService struct {
	Repos *repository.Repos
}

func NewAgentService(repos *repository.Repos) *AgentService {
	return &AgentService{Repos: repos}
}

func (s *AgentService) CreateAgent(input agent.CreateAgentDTO) (*agent.Agent, error) {
	a := &agent.Agent{
		TenantID:     input.TenantID,
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Status:       agent.AgentStatusActive,
		ExternalCode: input.ExternalCode,
	}
	if input.Status != "" {
		a.Status = agent.AgentStatus(input.Status)
	}
	return a, s.Repos.Agent.Create(a)
}

func (s *AgentService) UpdateAgent(id uint, input agent.UpdateAgentDTO) (*agent.Agent, error) {
	a, err := s.Repos.Agent.FindByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		a.Name = *input.Name
	}
	if input.Email != nil {
		a.Email = *input.Email
	}
	if input.Phone != nil {
		a.Phone = *input.Phone
	}
	if input.Status != nil {
		a.Status = agent.AgentStatus(*input.Status)
	}
	if input.ExternalCode != nil {
		a.ExternalCode = *input.ExternalCode
	}

	return a, s.Repos.Agent.Save(a)
}

func (s *AgentService) GetAgent(id uint) (*agent.Agent, error) {
	return s.Repos.Agent.FindByID(id)
}

func (s *AgentService) ListAgents() ([]agent.Agent, error) {
	return s.Repos.Agent.FindAll()
}

func (s *AgentService) DeleteAgent(id uint) error {
	return s.Repos.Agent.Delete(id)
}
