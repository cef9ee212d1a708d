// Package reporting monta e compartilha relatórios somente-leitura do
// ranking de um cohort, identificados por slug público com validade
package reporting

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/jbiddulph/localseo/infrastructure/repository"
	"github.com/jbiddulph/localseo/internal/domain"
	"github.com/jbiddulph/localseo/pkg/utils"
)

const (
	// ShareExpiryDays é a validade de um link de relatório compartilhado
	ShareExpiryDays = 30
	// MaxReportItems limita os itens exibidos no relatório
	MaxReportItems = 20
	// MaxReportDeltas limita os destaques de movimentação
	MaxReportDeltas = 6

	// FreePlanReportLimit é o máximo de relatórios ativos no plano gratuito
	FreePlanReportLimit = 1
	// SubscribedReportLimit é o máximo de relatórios ativos com assinatura
	SubscribedReportLimit = 25
)

var (
	ErrReportNotFound     = errors.New("relatório não encontrado")
	ErrReportExpired      = errors.New("relatório expirado")
	ErrCohortNotFound     = errors.New("cohort não encontrado")
	ErrNoSnapshots        = errors.New("cohort sem snapshots para relatar")
	ErrReportLimitReached = errors.New("limite de relatórios do plano atingido")
)

type ReportService interface {
	CreateReport(ownerID int, cohortID string) (*domain.Report, error)
	GetReportData(slug string) (*domain.ReportData, error)
	ListReports(ownerID int, cohortID string) ([]*domain.Report, error)
	DeleteReport(ownerID int, reportID string) error
	RenderHTML(data *domain.ReportData) (string, error)
}

type Service struct {
	reportRepo   repository.ReportRepository
	cohortRepo   repository.CohortRepository
	snapshotRepo repository.SnapshotRepository
	billingRepo  repository.BillingRepository
}

func NewService(
	reportRepo repository.ReportRepository,
	cohortRepo repository.CohortRepository,
	snapshotRepo repository.SnapshotRepository,
	billingRepo repository.BillingRepository,
) ReportService {
	return &Service{
		reportRepo:   reportRepo,
		cohortRepo:   cohortRepo,
		snapshotRepo: snapshotRepo,
		billingRepo:  billingRepo,
	}
}

// reportLimit resolve o teto de relatórios ativos conforme o plano do
// usuário. Erro na consulta da assinatura rebaixa para o plano gratuito.
func (s *Service) reportLimit(ownerID int) int {
	subscription, err := s.billingRepo.GetSubscriptionByOwnerID(ownerID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"owner_id": ownerID,
			"error":    err.Error(),
		}).Warn("reporting: erro ao consultar assinatura, assumindo plano gratuito")
		return FreePlanReportLimit
	}

	if subscription.IsEntitled(time.Now()) {
		return SubscribedReportLimit
	}

	return FreePlanReportLimit
}

// CreateReport gera um link compartilhável para o estado atual do cohort. O
// slug é opaco e a validade é contada a partir da criação.
func (s *Service) CreateReport(ownerID int, cohortID string) (*domain.Report, error) {
	cohort, err := s.cohortRepo.GetCohortByID(cohortID, ownerID)
	if err != nil {
		return nil, err
	}
	if cohort == nil {
		return nil, ErrCohortNotFound
	}

	active, err := s.reportRepo.CountActiveReports(ownerID)
	if err != nil {
		return nil, err
	}
	if active >= s.reportLimit(ownerID) {
		return nil, ErrReportLimitReached
	}

	latest, err := s.snapshotRepo.GetLatestSnapshot(cohortID)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, ErrNoSnapshots
	}

	slug, err := utils.GenerateSlug()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar slug: %w", err)
	}

	report := &domain.Report{
		OwnerID:   ownerID,
		CohortID:  cohortID,
		Slug:      slug,
		ExpiresAt: time.Now().AddDate(0, 0, ShareExpiryDays),
	}

	report, err = s.reportRepo.CreateReport(report)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"report_id": report.ID,
		"cohort_id": cohortID,
		"slug":      slug,
	}).Info("reporting: relatório compartilhável criado")

	return report, nil
}

// GetReportData resolve o slug público e monta os dados do relatório: os
// itens do snapshot mais recente e as maiores movimentações em relação ao
// snapshot anterior. Acesso sem autenticação; a expiração é verificada aqui.
func (s *Service) GetReportData(slug string) (*domain.ReportData, error) {
	report, err := s.reportRepo.GetReportBySlug(slug)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}

	if time.Now().After(report.ExpiresAt) {
		return nil, ErrReportExpired
	}

	cohort, err := s.cohortRepo.GetCohortByID(report.CohortID, report.OwnerID)
	if err != nil {
		return nil, err
	}
	if cohort == nil {
		return nil, ErrCohortNotFound
	}

	infos, err := s.snapshotRepo.ListSnapshotInfos(report.CohortID, report.OwnerID, 2)
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		return nil, ErrNoSnapshots
	}

	data := &domain.ReportData{
		Cohort:         *cohort,
		LatestSnapshot: infos[0],
	}

	latest, err := s.snapshotRepo.GetSnapshotByID(infos[0].ID, report.OwnerID)
	if err != nil {
		return nil, err
	}

	items := latest.Items
	if len(items) > MaxReportItems {
		items = items[:MaxReportItems]
	}
	data.Items = items

	if len(infos) > 1 {
		data.PreviousSnapshot = infos[1]

		previous, err := s.snapshotRepo.GetSnapshotByID(infos[1].ID, report.OwnerID)
		if err != nil {
			return nil, err
		}

		// As movimentações consideram só o recorte de itens exibido no relatório
		data.Deltas = buildDeltas(previous.Items, items)
	}

	return data, nil
}

// buildDeltas calcula as movimentações entre os dois últimos snapshots e
// destaca as maiores em módulo. Empates mantêm a ordem do snapshot atual.
func buildDeltas(previous, current []domain.RankedPlace) []domain.RankMovement {
	prevByID := make(map[string]domain.RankedPlace, len(previous))
	for _, item := range previous {
		prevByID[item.PlaceID] = item
	}

	movements := make([]domain.RankMovement, 0)
	for _, item := range current {
		prev, ok := prevByID[item.PlaceID]
		if !ok {
			continue
		}

		// Delta zero também entra; o corte é só pelo módulo nas maiores
		movements = append(movements, domain.RankMovement{
			Name:  item.Name,
			Delta: prev.Rank - item.Rank,
		})
	}

	sort.SliceStable(movements, func(i, j int) bool {
		return abs(movements[i].Delta) > abs(movements[j].Delta)
	})

	if len(movements) > MaxReportDeltas {
		movements = movements[:MaxReportDeltas]
	}

	return movements
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (s *Service) ListReports(ownerID int, cohortID string) ([]*domain.Report, error) {
	return s.reportRepo.ListReports(ownerID, cohortID)
}

func (s *Service) DeleteReport(ownerID int, reportID string) error {
	return s.reportRepo.DeleteReport(reportID, ownerID)
}
