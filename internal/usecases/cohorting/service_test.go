package cohorting

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/jbiddulph/localseo/infrastructure/repository/mocks"
	"github.com/jbiddulph/localseo/internal/domain"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func activeSubscription() *domain.Subscription {
	return &domain.Subscription{
		Status:           domain.SubscriptionActive,
		CurrentPeriodEnd: timePtr(time.Now().Add(30 * 24 * time.Hour)),
	}
}

func TestService_CohortLimit(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(billingRepo *mocks.MockBillingRepository)
		expected int
	}{
		{
			name: "Sem assinatura aplica o limite do plano gratuito",
			setup: func(billingRepo *mocks.MockBillingRepository) {
				billingRepo.EXPECT().
					GetSubscriptionByOwnerID(42).
					Return(nil, nil)
			},
			expected: FreePlanCohortLimit,
		},
		{
			name: "Assinatura ativa libera o limite do plano pago",
			setup: func(billingRepo *mocks.MockBillingRepository) {
				billingRepo.EXPECT().
					GetSubscriptionByOwnerID(42).
					Return(activeSubscription(), nil)
			},
			expected: SubscribedCohortLimit,
		},
		{
			name: "Assinatura em trial também libera o plano pago",
			setup: func(billingRepo *mocks.MockBillingRepository) {
				billingRepo.EXPECT().
					GetSubscriptionByOwnerID(42).
					Return(&domain.Subscription{
						Status:           domain.SubscriptionTrialing,
						CurrentPeriodEnd: timePtr(time.Now().Add(7 * 24 * time.Hour)),
					}, nil)
			},
			expected: SubscribedCohortLimit,
		},
		{
			name: "Assinatura cancelada volta ao plano gratuito",
			setup: func(billingRepo *mocks.MockBillingRepository) {
				billingRepo.EXPECT().
					GetSubscriptionByOwnerID(42).
					Return(&domain.Subscription{Status: domain.SubscriptionCanceled}, nil)
			},
			expected: FreePlanCohortLimit,
		},
		{
			name: "Período encerrado volta ao plano gratuito",
			setup: func(billingRepo *mocks.MockBillingRepository) {
				billingRepo.EXPECT().
					GetSubscriptionByOwnerID(42).
					Return(&domain.Subscription{
						Status:           domain.SubscriptionActive,
						CurrentPeriodEnd: timePtr(time.Now().Add(-time.Hour)),
					}, nil)
			},
			expected: FreePlanCohortLimit,
		},
		{
			name: "Erro na consulta rebaixa para o plano gratuito",
			setup: func(billingRepo *mocks.MockBillingRepository) {
				billingRepo.EXPECT().
					GetSubscriptionByOwnerID(42).
					Return(nil, errors.New("timeout"))
			},
			expected: FreePlanCohortLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			cohortRepo := mocks.NewMockCohortRepository(ctrl)
			billingRepo := mocks.NewMockBillingRepository(ctrl)
			tt.setup(billingRepo)

			service := &Service{cohortRepo: cohortRepo, billingRepo: billingRepo}

			assert.Equal(t, tt.expected, service.CohortLimit(42))
		})
	}
}

func TestService_CreateCohort(t *testing.T) {
	validReq := domain.CreateCohortRequest{
		Name:     "Barbearias centro",
		Postcode: "SW1A 1AA",
	}

	t.Run("Plano gratuito com cohort existente recusa o segundo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		cohortRepo := mocks.NewMockCohortRepository(ctrl)
		billingRepo := mocks.NewMockBillingRepository(ctrl)

		cohortRepo.EXPECT().CountCohorts(42).Return(1, nil)
		billingRepo.EXPECT().GetSubscriptionByOwnerID(42).Return(nil, nil)

		service := &Service{cohortRepo: cohortRepo, billingRepo: billingRepo}

		cohort, err := service.CreateCohort(42, validReq)
		assert.Nil(t, cohort)
		assert.ErrorIs(t, err, ErrCohortLimitReached)
	})

	t.Run("Assinante abaixo do limite cria normalmente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		cohortRepo := mocks.NewMockCohortRepository(ctrl)
		billingRepo := mocks.NewMockBillingRepository(ctrl)

		cohortRepo.EXPECT().CountCohorts(42).Return(10, nil)
		billingRepo.EXPECT().GetSubscriptionByOwnerID(42).Return(activeSubscription(), nil)
		cohortRepo.EXPECT().
			CreateCohort(gomock.Any()).
			DoAndReturn(func(cohort *domain.Cohort) (*domain.Cohort, error) {
				assert.Equal(t, 42, cohort.OwnerID)
				assert.Equal(t, "Barbearias centro", cohort.Name)
				cohort.ID = "cohort-1"
				return cohort, nil
			})

		service := &Service{cohortRepo: cohortRepo, billingRepo: billingRepo}

		cohort, err := service.CreateCohort(42, validReq)
		assert.NoError(t, err)
		assert.Equal(t, "cohort-1", cohort.ID)
	})

	t.Run("Assinante no limite do plano pago é recusado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		cohortRepo := mocks.NewMockCohortRepository(ctrl)
		billingRepo := mocks.NewMockBillingRepository(ctrl)

		cohortRepo.EXPECT().CountCohorts(42).Return(SubscribedCohortLimit, nil)
		billingRepo.EXPECT().GetSubscriptionByOwnerID(42).Return(activeSubscription(), nil)

		service := &Service{cohortRepo: cohortRepo, billingRepo: billingRepo}

		_, err := service.CreateCohort(42, validReq)
		assert.ErrorIs(t, err, ErrCohortLimitReached)
	})

	t.Run("Nome vazio é recusado antes de contar", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := &Service{
			cohortRepo:  mocks.NewMockCohortRepository(ctrl),
			billingRepo: mocks.NewMockBillingRepository(ctrl),
		}

		_, err := service.CreateCohort(42, domain.CreateCohortRequest{Postcode: "SW1A 1AA"})
		assert.ErrorIs(t, err, ErrMissingName)
	})

	t.Run("Postcode vazio é recusado antes de contar", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := &Service{
			cohortRepo:  mocks.NewMockCohortRepository(ctrl),
			billingRepo: mocks.NewMockBillingRepository(ctrl),
		}

		_, err := service.CreateCohort(42, domain.CreateCohortRequest{Name: "Barbearias"})
		assert.ErrorIs(t, err, ErrMissingPostcode)
	})
}

func TestService_GetCohort(t *testing.T) {
	t.Run("Cohort de outro dono é tratado como inexistente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		cohortRepo := mocks.NewMockCohortRepository(ctrl)
		cohortRepo.EXPECT().GetCohortByID("cohort-1", 7).Return(nil, nil)

		service := &Service{
			cohortRepo:  cohortRepo,
			billingRepo: mocks.NewMockBillingRepository(ctrl),
		}

		_, err := service.GetCohort(7, "cohort-1")
		assert.ErrorIs(t, err, ErrCohortNotFound)
	})
}
