package repository

import (
	"gorm.io/gorm"
)

type Repos struct {
	Agent      AgentRepo
	Form       FormRepo
	Attachment AttachmentRepo
	CycleLog   CycleLogRepo
	Submission SubmissionRepo
	User       UserRepo
	Audit      AuditRepo

	db *gorm.DB
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		Agent:      NewAgentRepo(db),
		Form:       NewFormRepo(db),
		Attachment: NewAttachmentRepo(db),
		CycleLog:   NewCycleLogRepo(db),
		Submission: NewSubmissionRepo(db),
		User:       NewUserRepo(db),
		Audit:      NewAuditRepo(db),
		db:         db,
	}
}

func (r *Repos) Begin() *gorm.DB {
	return r.db.Begin()
}

func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		Agent:      r.Agent.WithTx(tx),
		Form:       r.Form.WithTx(tx),
		Attachment: r.Attachment.WithTx(tx),
		CycleLog:   r.CycleLog.WithTx(tx),
		Submission: r.Submission.WithTx(tx),
		User:       r.User.WithTx(tx),
		Audit:      r.Audit.WithTx(tx),
		db:         tx,
	}
}

func (r *Repos) ExecTx(fn func(*Repos) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepos := r.WithTx(tx)
		return fn(txRepos)
	})
}
