package services

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MeiyuTech/aet-backend/entity"
	"github.com/MeiyuTech/aet-backend/repository"
)

// FieldErrors maps submission field names to human-readable problems.
// Returned as the error from Submit when validation fails; nothing is
// persisted in that case.
type FieldErrors map[string]string

func (e FieldErrors) Error() string { return "validation failed" }

type ApplicationService struct {
	DB       *gorm.DB
	Repo     *repository.ApplicationRepository
	Notifier *NotificationService
	Log      *zap.Logger
}

func NewApplicationService(db *gorm.DB, repo *repository.ApplicationRepository, notifier *NotificationService, log *zap.Logger) *ApplicationService {
	return &ApplicationService{DB: db, Repo: repo, Notifier: notifier, Log: log}
}

// ----- DTOs from Controller -----

type ServiceSelectionIn struct {
	ServiceType string `json:"serviceType"`
	SpeedTier   string `json:"speedTier"`
}

type AdditionalServiceIn struct {
	ServiceCode string `json:"serviceCode"`
	Quantity    int    `json:"quantity"`
}

type SubmitApplicationReq struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Office    string `json:"office"`

	DeliveryMethod string `json:"deliveryMethod"`
	Purpose        string `json:"purpose"`
	PurposeOther   string `json:"purposeOther"`

	ServiceSelections  []ServiceSelectionIn  `json:"serviceSelections"`
	AdditionalServices []AdditionalServiceIn `json:"additionalServices"`
}

type SubmitApplicationRes struct {
	Code          string `json:"code"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
	TotalCents    int64  `json:"totalCents"`
}

func validateSubmission(req *SubmitApplicationReq) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(req.FirstName) == "" {
		errs["firstName"] = "first name is required"
	}
	if strings.TrimSpace(req.LastName) == "" {
		errs["lastName"] = "last name is required"
	}
	if strings.TrimSpace(req.Email) == "" {
		errs["email"] = "email is required"
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		errs["email"] = "email is not a valid address"
	}
	if !validOffices[req.Office] {
		errs["office"] = "unknown office"
	}
	if _, ok := deliveryPrices[req.DeliveryMethod]; !ok {
		errs["deliveryMethod"] = "unknown delivery method"
	}
	if !validPurposes[req.Purpose] {
		errs["purpose"] = "unknown purpose"
	} else if req.Purpose == PurposeOther && strings.TrimSpace(req.PurposeOther) == "" {
		errs["purposeOther"] = "describe the purpose when choosing other"
	}

	if len(req.ServiceSelections) == 0 {
		errs["serviceSelections"] = "at least one service is required"
	}
	for _, sel := range req.ServiceSelections {
		tiers, ok := servicePrices[sel.ServiceType]
		if !ok {
			errs["serviceSelections"] = "unknown service type " + sel.ServiceType
			continue
		}
		if _, ok := tiers[sel.SpeedTier]; !ok {
			errs["serviceSelections"] = "unknown speed tier " + sel.SpeedTier
		}
	}
	for _, addon := range req.AdditionalServices {
		if _, ok := addonPrices[addon.ServiceCode]; !ok {
			errs["additionalServices"] = "unknown additional service " + addon.ServiceCode
			continue
		}
		if addon.Quantity < 1 {
			errs["additionalServices"] = "quantity must be at least 1"
		}
	}

	return errs
}

// Submit validates and creates the application with its children in one
// transaction. The confirmation email goes through the outbox after
// commit, so a notification problem can never undo the submission.
func (s *ApplicationService) Submit(req *SubmitApplicationReq) (*SubmitApplicationRes, error) {
	if errs := validateSubmission(req); len(errs) > 0 {
		return nil, errs
	}

	app := entity.Application{
		Code:           uuid.NewString(),
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Email:          strings.TrimSpace(req.Email),
		Phone:          strings.TrimSpace(req.Phone),
		Office:         req.Office,
		Status:         entity.StatusSubmitted,
		PaymentStatus:  entity.PaymentPending,
		SubmittedAt:    time.Now(),
		DeliveryMethod: req.DeliveryMethod,
		Purpose:        req.Purpose,
		PurposeOther:   strings.TrimSpace(req.PurposeOther),
	}
	for _, sel := range req.ServiceSelections {
		app.ServiceSelections = append(app.ServiceSelections, entity.ServiceSelection{
			ServiceType: sel.ServiceType,
			SpeedTier:   sel.SpeedTier,
		})
	}
	for _, addon := range req.AdditionalServices {
		app.AdditionalServices = append(app.AdditionalServices, entity.AdditionalService{
			ServiceCode: addon.ServiceCode,
			Quantity:    addon.Quantity,
		})
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.Create(tx, &app)
	})
	if err != nil {
		return nil, err
	}

	if err := s.Notifier.QueueSubmissionConfirmation(&app); err != nil {
		s.Log.Error("queue submission confirmation failed",
			zap.String("application", app.Code), zap.Error(err))
	}

	return &SubmitApplicationRes{
		Code:          app.Code,
		Status:        app.Status,
		PaymentStatus: app.PaymentStatus,
		TotalCents:    TotalCents(&app),
	}, nil
}

func (s *ApplicationService) GetByCode(code string) (*entity.Application, error) {
	return s.Repo.FindByCode(code)
}

func (s *ApplicationService) ListByStatus(status string) ([]entity.Application, error) {
	if status == "" {
		status = entity.StatusSubmitted
	}
	return s.Repo.FindByStatus(status)
}
