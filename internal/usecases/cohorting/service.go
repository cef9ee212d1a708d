// Package cohorting gerencia os cohorts monitorados de cada usuário,
// aplicando o limite de cohorts conforme o plano
package cohorting

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/jbiddulph/localseo/infrastructure/repository"
	"github.com/jbiddulph/localseo/internal/domain"
)

const (
	// FreePlanCohortLimit é o máximo de cohorts sem assinatura ativa
	FreePlanCohortLimit = 1
	// SubscribedCohortLimit é o máximo de cohorts com assinatura ativa
	SubscribedCohortLimit = 25
)

var (
	ErrCohortLimitReached = errors.New("limite de cohorts do plano atingido")
	ErrCohortNotFound     = errors.New("cohort não encontrado")
	ErrMissingName        = errors.New("nome do cohort é obrigatório")
	ErrMissingPostcode    = errors.New("postcode do cohort é obrigatório")
)

type CohortService interface {
	CreateCohort(ownerID int, req domain.CreateCohortRequest) (*domain.Cohort, error)
	UpdateCohort(ownerID int, req domain.UpdateCohortRequest) (*domain.Cohort, error)
	GetCohort(ownerID int, cohortID string) (*domain.Cohort, error)
	ListCohorts(ownerID int) ([]*domain.Cohort, error)
	DeleteCohort(ownerID int, cohortID string) error
	CohortLimit(ownerID int) int
}

type Service struct {
	cohortRepo  repository.CohortRepository
	billingRepo repository.BillingRepository
}

func NewService(cohortRepo repository.CohortRepository, billingRepo repository.BillingRepository) CohortService {
	return &Service{
		cohortRepo:  cohortRepo,
		billingRepo: billingRepo,
	}
}

// CohortLimit retorna o limite de cohorts do usuário conforme o estado da
// assinatura. Erro ao consultar a assinatura rebaixa para o plano gratuito.
func (s *Service) CohortLimit(ownerID int) int {
	subscription, err := s.billingRepo.GetSubscriptionByOwnerID(ownerID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"owner_id": ownerID,
			"error":    err.Error(),
		}).Warn("cohorting: erro ao consultar assinatura, assumindo plano gratuito")
		return FreePlanCohortLimit
	}

	if subscription.IsEntitled(time.Now()) {
		return SubscribedCohortLimit
	}

	return FreePlanCohortLimit
}

func (s *Service) CreateCohort(ownerID int, req domain.CreateCohortRequest) (*domain.Cohort, error) {
	if req.Name == "" {
		return nil, ErrMissingName
	}

	if req.Postcode == "" {
		return nil, ErrMissingPostcode
	}

	count, err := s.cohortRepo.CountCohorts(ownerID)
	if err != nil {
		return nil, err
	}

	if count >= s.CohortLimit(ownerID) {
		return nil, ErrCohortLimitReached
	}

	cohort := &domain.Cohort{
		OwnerID:      ownerID,
		Name:         req.Name,
		Postcode:     req.Postcode,
		Keyword:      req.Keyword,
		RadiusKm:     req.RadiusKm,
		BusinessName: req.BusinessName,
		Notes:        req.Notes,
	}

	cohort, err = s.cohortRepo.CreateCohort(cohort)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"cohort_id": cohort.ID,
		"owner_id":  ownerID,
	}).Info("cohorting: cohort criado")

	return cohort, nil
}

func (s *Service) UpdateCohort(ownerID int, req domain.UpdateCohortRequest) (*domain.Cohort, error) {
	existing, err := s.cohortRepo.GetCohortByID(req.ID, ownerID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCohortNotFound
	}

	if err := s.cohortRepo.UpdateCohort(req, ownerID); err != nil {
		return nil, err
	}

	return s.cohortRepo.GetCohortByID(req.ID, ownerID)
}

func (s *Service) GetCohort(ownerID int, cohortID string) (*domain.Cohort, error) {
	cohort, err := s.cohortRepo.GetCohortByID(cohortID, ownerID)
	if err != nil {
		return nil, err
	}
	if cohort == nil {
		return nil, ErrCohortNotFound
	}

	return cohort, nil
}

func (s *Service) ListCohorts(ownerID int) ([]*domain.Cohort, error) {
	return s.cohortRepo.ListCohorts(ownerID)
}

func (s *Service) DeleteCohort(ownerID int, cohortID string) error {
	cohort, err := s.cohortRepo.GetCohortByID(cohortID, ownerID)
	if err != nil {
		return err
	}
	if cohort == nil {
		return ErrCohortNotFound
	}

	return s.cohortRepo.DeleteCohort(cohortID, ownerID)
}
