package application

import (
	"encoding/json"
	"errors"

	"github.com/fieldopskit/fieldops-go/internal/domain/agent"
	"github.com/fieldopskit/fieldops-go/internal/domain/form"
	"github.com/fieldopskit/fieldops-go/internal/repository"
	"github.com/fieldopskit/fieldops-go/pkg/criteria"
)

var (
	ErrInvalidCyclesPerMonth  = errors.New("cycles_per_month must be between 1 and 4")
	ErrFreezeDurationRequired = errors.New("freeze_duration_seconds is required when freeze is enabled")
	ErrFreezeDurationSet      = errors.New("freeze_duration_seconds must not be set when freeze is disabled")
)

type FormService struct {
	Repos *repository.Repos
}

func NewFormService(repos *repository.Repos) *FormService {
	return &FormService{Repos: repos}
}

// validateCycleConfig rejects misconfiguration at save time; anything that
// slips past here would otherwise surface as a visibility-time error.
func validateCycleConfig(cycles int, freezeEnabled bool, freezeSeconds *int64) error {
	if cycles < 1 || cycles > 4 {
		return ErrInvalidCyclesPerMonth
	}
	if freezeEnabled && (freezeSeconds == nil || *freezeSeconds <= 0) {
		return ErrFreezeDurationRequired
	}
	if !freezeEnabled && freezeSeconds != nil {
		return ErrFreezeDurationSet
	}
	return nil
}

func (s *FormService) CreateForm(input form.CreateFormDTO) (*form.Form, error) {
	if err := validateCycleConfig(input.CyclesPerMonth, input.FreezeEnabled, input.FreezeDurationSeconds); err != nil {
		return nil, err
	}

	f := &form.Form{
		TenantID:               input.TenantID,
		Title:                  input.Title,
		Description:            input.Description,
		Department:             input.Department,
		Schema:                 input.Schema,
		AttachToSpecificAgents: input.AttachToSpecificAgents,
		CyclesPerMonth:         input.CyclesPerMonth,
		FreezeEnabled:          input.FreezeEnabled,
		FreezeDurationSeconds:  input.FreezeDurationSeconds,
		Active:                 true,
	}
	return f, s.Repos.Form.Create(f)
}

// UpdateForm edits the definition only. Months already in progress keep the
// settings snapshotted into their cycle log; the edit takes effect for each
// agent when their next month's log is created.
func (s *FormService) UpdateForm(id uint, input form.UpdateFormDTO) (*form.Form, error) {
	f, err := s.Repos.Form.FindByID(id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		f.Title = *input.Title
	}
	if input.Description != nil {
		f.Description = *input.Description
	}
	if input.Department != nil {
		f.Department = *input.Department
	}
	if input.Schema != nil {
		f.Schema = *input.Schema
	}
	if input.AttachToSpecificAgents != nil {
		f.AttachToSpecificAgents = *input.AttachToSpecificAgents
	}
	if input.CyclesPerMonth != nil {
		f.CyclesPerMonth = *input.CyclesPerMonth
	}
	if input.FreezeEnabled != nil {
		f.FreezeEnabled = *input.FreezeEnabled
		if !f.FreezeEnabled {
			f.FreezeDurationSeconds = nil
		}
	}
	if input.FreezeDurationSeconds != nil {
		f.FreezeDurationSeconds = input.FreezeDurationSeconds
	}
	if input.Active != nil {
		f.Active = *input.Active
	}

	if err := validateCycleConfig(f.CyclesPerMonth, f.FreezeEnabled, f.FreezeDurationSeconds); err != nil {
		return nil, err
	}

	return f, s.Repos.Form.Save(f)
}

func (s *FormService) GetForm(id uint) (*form.Form, error) {
	return s.Repos.Form.FindByID(id)
}

func (s *FormService) ListForms() ([]form.Form, error) {
	return s.Repos.Form.FindAll()
}

// AttachAgent links an agent to a form, replacing any previous attachment
// for the pair. Criteria are validated against the closed profile field set
// here so a bad rule is a save-time error, not a visibility-time surprise.
func (s *FormService) AttachAgent(formID uint, input form.AttachAgentDTO) (*form.FormAttachment, error) {
	if _, err := s.Repos.Form.FindByID(formID); err != nil {
		return nil, err
	}
	if _, err := s.Repos.Agent.FindByID(input.AgentID); err != nil {
		return nil, err
	}

	if err := criteria.Validate(input.Criteria, agent.ProfileFieldNames); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(input.Criteria)
	if err != nil {
		return nil, err
	}

	att := &form.FormAttachment{
		FormID:   formID,
		AgentID:  input.AgentID,
		Criteria: raw,
		Active:   true,
	}
	if err := s.Repos.Attachment.Upsert(att); err != nil {
		return nil, err
	}
	return s.Repos.Attachment.Find(formID, input.AgentID)
}

func (s *FormService) DetachAgent(formID, agentID uint) error {
	return s.Repos.Attachment.Deactivate(formID, agentID)
}

func (s *FormService) ListAttachments(formID uint) ([]form.FormAttachment, error) {
	return s.Repos.Attachment.ListByForm(formID)
}
