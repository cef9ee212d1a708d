// Package billing integra com o Stripe: checkout, portal do cliente e a
// sincronização do estado local da assinatura via webhooks
package billing

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v76"
	portalsession "github.com/stripe/stripe-go/v76/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v76/checkout/session"
	stripecustomer "github.com/stripe/stripe-go/v76/customer"
	stripesub "github.com/stripe/stripe-go/v76/subscription"
	"github.com/stripe/stripe-go/v76/webhook"
	"github.com/jbiddulph/localseo/infrastructure/repository"
	"github.com/jbiddulph/localseo/internal/config"
	"github.com/jbiddulph/localseo/internal/domain"
)

var (
	ErrBillingNotConfigured = errors.New("integração de cobrança não configurada")
	ErrInvalidPlan          = errors.New("plano inválido")
	ErrCustomerNotFound     = errors.New("cliente não encontrado no Stripe")
	ErrInvalidSignature     = errors.New("assinatura do webhook inválida")
)

type BillingService interface {
	CreateCheckoutSession(user *domain.User, plan domain.BillingPlan) (string, error)
	CreatePortalSession(userID int) (string, error)
	RefreshSubscription(userID int) (*domain.Subscription, error)
	GetSubscription(userID int) (*domain.Subscription, error)
	IsSubscribed(userID int) bool
	HandleWebhook(payload []byte, signature string) error
}

type Service struct {
	cfg         *config.Config
	billingRepo repository.BillingRepository
}

func NewService(cfg *config.Config, billingRepo repository.BillingRepository) BillingService {
	stripe.Key = cfg.Stripe.SecretKey

	return &Service{
		cfg:         cfg,
		billingRepo: billingRepo,
	}
}

func (s *Service) priceForPlan(plan domain.BillingPlan) (string, error) {
	switch plan {
	case domain.PlanMonthly:
		return s.cfg.Stripe.PriceMonthly, nil
	case domain.PlanYearly:
		return s.cfg.Stripe.PriceYearly, nil
	default:
		return "", ErrInvalidPlan
	}
}

// ensureCustomer devolve o cliente Stripe do usuário, criando um se necessário
func (s *Service) ensureCustomer(user *domain.User) (*domain.Customer, error) {
	existing, err := s.billingRepo.GetCustomerByUserID(user.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	params := &stripe.CustomerParams{
		Email: stripe.String(user.Email),
		Name:  stripe.String(fmt.Sprintf("%s %s", user.Name, user.Lastname)),
	}
	params.AddMetadata("user_id", fmt.Sprintf("%d", user.ID))

	created, err := stripecustomer.New(params)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar cliente no Stripe: %w", err)
	}

	customer := &domain.Customer{
		UserID:           user.ID,
		StripeCustomerID: created.ID,
	}

	if err := s.billingRepo.CreateCustomer(customer); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":            user.ID,
		"stripe_customer_id": created.ID,
	}).Info("billing: cliente Stripe criado")

	return customer, nil
}

// CreateCheckoutSession inicia o checkout de assinatura com período de teste
// e devolve a URL de redirecionamento
func (s *Service) CreateCheckoutSession(user *domain.User, plan domain.BillingPlan) (string, error) {
	if s.cfg.Stripe.SecretKey == "" {
		return "", ErrBillingNotConfigured
	}

	priceID, err := s.priceForPlan(plan)
	if err != nil {
		return "", err
	}

	customer, err := s.ensureCustomer(user)
	if err != nil {
		return "", err
	}

	params := &stripe.CheckoutSessionParams{
		Customer: stripe.String(customer.StripeCustomerID),
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(s.cfg.BaseURL + "/billing/success"),
		CancelURL:  stripe.String(s.cfg.BaseURL + "/billing/cancel"),
	}

	if s.cfg.Stripe.TrialDays > 0 {
		params.SubscriptionData = &stripe.CheckoutSessionSubscriptionDataParams{
			TrialPeriodDays: stripe.Int64(int64(s.cfg.Stripe.TrialDays)),
		}
	}

	session, err := checkoutsession.New(params)
	if err != nil {
		return "", fmt.Errorf("erro ao criar sessão de checkout: %w", err)
	}

	return session.URL, nil
}

// CreatePortalSession abre o portal do cliente para gerenciar a assinatura
func (s *Service) CreatePortalSession(userID int) (string, error) {
	if s.cfg.Stripe.SecretKey == "" {
		return "", ErrBillingNotConfigured
	}

	customer, err := s.billingRepo.GetCustomerByUserID(userID)
	if err != nil {
		return "", err
	}
	if customer == nil {
		return "", ErrCustomerNotFound
	}

	session, err := portalsession.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customer.StripeCustomerID),
		ReturnURL: stripe.String(s.cfg.BaseURL + "/settings/billing"),
	})
	if err != nil {
		return "", fmt.Errorf("erro ao criar sessão do portal: %w", err)
	}

	return session.URL, nil
}

// RefreshSubscription consulta o Stripe diretamente e regrava o estado local.
// Rota de reconciliação para quando um webhook se perde.
func (s *Service) RefreshSubscription(userID int) (*domain.Subscription, error) {
	if s.cfg.Stripe.SecretKey == "" {
		return nil, ErrBillingNotConfigured
	}

	customer, err := s.billingRepo.GetCustomerByUserID(userID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customer.StripeCustomerID),
		Status:   stripe.String("all"),
	}
	params.Limit = stripe.Int64(1)

	iter := stripesub.List(params)
	for iter.Next() {
		sub := iter.Subscription()
		local := s.toLocalSubscription(sub, userID)
		if err := s.billingRepo.UpsertSubscription(local); err != nil {
			return nil, err
		}
		return local, nil
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("erro ao listar assinaturas no Stripe: %w", err)
	}

	return s.billingRepo.GetSubscriptionByOwnerID(userID)
}

func (s *Service) GetSubscription(userID int) (*domain.Subscription, error) {
	return s.billingRepo.GetSubscriptionByOwnerID(userID)
}

// IsSubscribed responde se o usuário tem acesso às funcionalidades pagas
func (s *Service) IsSubscribed(userID int) bool {
	subscription, err := s.billingRepo.GetSubscriptionByOwnerID(userID)
	if err != nil {
		logrus.WithField("user_id", userID).WithError(err).
			Warn("billing: erro ao consultar assinatura local")
		return false
	}

	return subscription.IsEntitled(time.Now())
}

// HandleWebhook valida a assinatura do evento e sincroniza o estado local.
// Eventos não tratados são aceitos e ignorados.
func (s *Service) HandleWebhook(payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.cfg.Stripe.WebhookSecret)
	if err != nil {
		return ErrInvalidSignature
	}

	switch string(event.Type) {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return fmt.Errorf("erro ao decodificar evento de checkout: %w", err)
		}
		return s.handleCheckoutCompleted(&session)

	case "customer.subscription.updated", "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return fmt.Errorf("erro ao decodificar evento de assinatura: %w", err)
		}
		return s.handleSubscriptionChanged(&sub)

	default:
		logrus.WithField("event_type", event.Type).Debug("billing: evento de webhook ignorado")
		return nil
	}
}

func (s *Service) handleCheckoutCompleted(session *stripe.CheckoutSession) error {
	if session.Customer == nil || session.Subscription == nil {
		return nil
	}

	customer, err := s.billingRepo.GetCustomerByStripeID(session.Customer.ID)
	if err != nil {
		return err
	}
	if customer == nil {
		logrus.WithField("stripe_customer_id", session.Customer.ID).
			Warn("billing: checkout concluído para cliente desconhecido")
		return nil
	}

	// O objeto da sessão traz a assinatura só por referência
	sub, err := stripesub.Get(session.Subscription.ID, nil)
	if err != nil {
		return fmt.Errorf("erro ao buscar assinatura no Stripe: %w", err)
	}

	return s.billingRepo.UpsertSubscription(s.toLocalSubscription(sub, customer.UserID))
}

func (s *Service) handleSubscriptionChanged(sub *stripe.Subscription) error {
	if sub.Customer == nil {
		return nil
	}

	customer, err := s.billingRepo.GetCustomerByStripeID(sub.Customer.ID)
	if err != nil {
		return err
	}
	if customer == nil {
		logrus.WithField("stripe_customer_id", sub.Customer.ID).
			Warn("billing: evento de assinatura para cliente desconhecido")
		return nil
	}

	return s.billingRepo.UpsertSubscription(s.toLocalSubscription(sub, customer.UserID))
}

func (s *Service) toLocalSubscription(sub *stripe.Subscription, userID int) *domain.Subscription {
	local := &domain.Subscription{
		OwnerID:              userID,
		StripeSubscriptionID: sub.ID,
		Status:               domain.SubscriptionStatus(sub.Status),
		CancelAtPeriodEnd:    sub.CancelAtPeriodEnd,
	}

	if sub.CurrentPeriodEnd > 0 {
		periodEnd := time.Unix(sub.CurrentPeriodEnd, 0).UTC()
		local.CurrentPeriodEnd = &periodEnd
	}

	if sub.TrialEnd > 0 {
		trialEnd := time.Unix(sub.TrialEnd, 0).UTC()
		local.TrialEnd = &trialEnd
	}

	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		local.PriceID = stripe.String(sub.Items.Data[0].Price.ID)
	}

	return local
}
