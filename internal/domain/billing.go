package domain

import "time"

// Customer vincula um usuário local ao cliente correspondente no Stripe
type Customer struct {
	UserID           int       `json:"id"`
	StripeCustomerID string    `json:"stripe_customer_id"`
	CreatedAt        time.Time `json:"created_at"`
}

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionTrialing SubscriptionStatus = "trialing"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

// Subscription é o estado local da assinatura, sincronizado a partir dos
// webhooks do Stripe. O campo Status controla o acesso às funcionalidades.
type Subscription struct {
	OwnerID              int                `json:"owner_id"`
	StripeSubscriptionID string             `json:"stripe_subscription_id"`
	PriceID              *string            `json:"price_id"`
	Status               SubscriptionStatus `json:"status"`
	CurrentPeriodEnd     *time.Time         `json:"current_period_end"`
	CancelAtPeriodEnd    bool               `json:"cancel_at_period_end"`
	TrialEnd             *time.Time         `json:"trial_end"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

// IsEntitled retorna verdadeiro quando a assinatura libera as funcionalidades pagas
func (s *Subscription) IsEntitled(now time.Time) bool {
	if s == nil {
		return false
	}

	if s.Status != SubscriptionActive && s.Status != SubscriptionTrialing {
		return false
	}

	if s.CurrentPeriodEnd != nil && s.CurrentPeriodEnd.Before(now) {
		return false
	}

	return true
}

type BillingPlan string

const (
	PlanMonthly BillingPlan = "monthly"
	PlanYearly  BillingPlan = "yearly"
)
