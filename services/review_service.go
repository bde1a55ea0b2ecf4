package services

import (
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MeiyuTech/aet-backend/entity"
	"github.com/MeiyuTech/aet-backend/repository"
)

var (
	ErrConflict          = errors.New("application changed since the change was staged")
	ErrInvalidTransition = errors.New("illegal status transition")
	ErrChangeNotStaged   = errors.New("change is not staged")
	ErrCompletedLocked   = errors.New("completed application requires override")
	ErrEmptyChange       = errors.New("change proposes nothing")
)

// Fields an admin may patch, mapped to their columns. Everything else on
// the application is workflow-owned and moves through status/payment
// transitions only.
var patchableFields = map[string]string{
	"firstName":      "first_name",
	"lastName":       "last_name",
	"email":          "email",
	"phone":          "phone",
	"office":         "office",
	"deliveryMethod": "delivery_method",
	"purpose":        "purpose",
	"purposeOther":   "purpose_other",
}

// ReviewService implements the two-step admin edit: propose stages a
// change with no side effect, confirm re-validates and applies it. The
// confirmation dialog in the CRM is a UX affordance; legality of the
// mutation is enforced here regardless.
type ReviewService struct {
	DB       *gorm.DB
	Repo     *repository.ApplicationRepository
	Changes  *repository.PendingChangeRepository
	Notifier *NotificationService
	Log      *zap.Logger
}

func NewReviewService(db *gorm.DB, repo *repository.ApplicationRepository, changes *repository.PendingChangeRepository, notifier *NotificationService, log *zap.Logger) *ReviewService {
	return &ReviewService{DB: db, Repo: repo, Changes: changes, Notifier: notifier, Log: log}
}

type ProposeChangeReq struct {
	Status   *string           `json:"status,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
	Override bool              `json:"override"`
	Note     string            `json:"note,omitempty"`
}

// Propose stages a change against the application's current revision.
func (s *ReviewService) Propose(code string, adminID uint, req *ProposeChangeReq) (*entity.PendingChange, error) {
	if req.Status == nil && len(req.Fields) == 0 {
		return nil, ErrEmptyChange
	}
	if req.Status != nil && !KnownStatus(*req.Status) {
		return nil, ErrInvalidTransition
	}
	for field := range req.Fields {
		if _, ok := patchableFields[field]; !ok {
			return nil, errors.New("field is not patchable: " + field)
		}
	}

	app, err := s.Repo.FindByCode(code)
	if err != nil {
		return nil, err
	}

	change := entity.PendingChange{
		ApplicationID:  app.ID,
		ProposedStatus: req.Status,
		Override:       req.Override,
		Note:           req.Note,
		BaseUpdatedAt:  app.UpdatedAt,
		Status:         entity.ChangeStaged,
		AdminID:        adminID,
	}
	if len(req.Fields) > 0 {
		raw, err := json.Marshal(req.Fields)
		if err != nil {
			return nil, err
		}
		change.PatchJSON = string(raw)
	}

	if err := s.Changes.Create(&change); err != nil {
		return nil, err
	}
	return &change, nil
}

// Confirm applies a staged change. Fails with ErrConflict when the
// application moved underneath the staging admin, with
// ErrInvalidTransition when the proposed status skips the canonical flow
// without override, and with ErrCompletedLocked when a completed
// application is edited without override.
func (s *ReviewService) Confirm(changeID, adminID uint) (*entity.Application, error) {
	change, err := s.Changes.FindByID(changeID)
	if err != nil {
		return nil, err
	}
	if change.Status != entity.ChangeStaged {
		return nil, ErrChangeNotStaged
	}

	app, err := s.Repo.FindByID(change.ApplicationID)
	if err != nil {
		return nil, err
	}
	if !app.UpdatedAt.Equal(change.BaseUpdatedAt) {
		return nil, ErrConflict
	}

	var patch map[string]string
	if change.PatchJSON != "" {
		if err := json.Unmarshal([]byte(change.PatchJSON), &patch); err != nil {
			return nil, err
		}
	}

	if app.Status == entity.StatusCompleted && !change.Override {
		return nil, ErrCompletedLocked
	}

	statusChanged := false
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if change.ProposedStatus != nil && *change.ProposedStatus != app.Status {
			to := *change.ProposedStatus
			if !change.Override && !ValidTransition(app.Status, to) {
				return ErrInvalidTransition
			}
			affected, err := s.Repo.UpdateStatusGuard(tx, app.ID, app.Status, to)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrConflict
			}
			statusChanged = true
		}

		if len(patch) > 0 {
			updates := map[string]any{}
			for field, value := range patch {
				updates[patchableFields[field]] = value
			}
			if err := s.Repo.ApplyFields(tx, app.ID, updates); err != nil {
				return err
			}
		}

		now := time.Now()
		if err := s.Repo.ApplyFields(tx, app.ID, map[string]any{
			"reviewed_at": now,
			"reviewed_by": adminID,
		}); err != nil {
			return err
		}

		return s.Changes.MarkApplied(tx, change.ID)
	})
	if err != nil {
		return nil, err
	}

	if change.Override {
		s.Log.Warn("admin override applied",
			zap.Uint("change", change.ID),
			zap.Uint("admin", adminID),
			zap.String("application", app.Code))
	}

	updated, err := s.Repo.FindByID(app.ID)
	if err != nil {
		return nil, err
	}

	if statusChanged {
		if err := s.Notifier.QueueStatusUpdate(updated); err != nil {
			s.Log.Error("queue status update failed",
				zap.String("application", updated.Code), zap.Error(err))
		}
	}

	return updated, nil
}

// Cancel discards a staged change.
func (s *ReviewService) Cancel(changeID uint) error {
	affected, err := s.Changes.MarkCancelled(changeID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrChangeNotStaged
	}
	return nil
}

func (s *ReviewService) ListStaged(code string) ([]entity.PendingChange, error) {
	app, err := s.Repo.FindByCode(code)
	if err != nil {
		return nil, err
	}
	return s.Changes.ListStaged(app.ID)
}
