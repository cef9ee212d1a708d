package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/jbiddulph/localseo/infrastructure/database/postgres"
	"github.com/jbiddulph/localseo/internal/domain"
)

const (
	customersTable     = "customers"
	subscriptionsTable = "subscriptions"
)

type BillingRepository interface {
	CreateCustomer(customer *domain.Customer) error
	GetCustomerByUserID(userID int) (*domain.Customer, error)
	GetCustomerByStripeID(stripeCustomerID string) (*domain.Customer, error)
	UpsertSubscription(subscription *domain.Subscription) error
	GetSubscriptionByOwnerID(ownerID int) (*domain.Subscription, error)
}

type billingRepository struct {
	conn *postgres.Connection
}

func NewBillingRepository(conn *postgres.Connection) BillingRepository {
	return &billingRepository{
		conn: conn,
	}
}

func (r *billingRepository) CreateCustomer(customer *domain.Customer) error {
	query, args, err := squirrel.
		Insert(customersTable).
		Columns("user_id", "stripe_customer_id").
		Values(customer.UserID, customer.StripeCustomerID).
		Suffix("ON CONFLICT (user_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *billingRepository) GetCustomerByUserID(userID int) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.conn.QueryRow(
		"SELECT user_id, stripe_customer_id, created_at FROM customers WHERE user_id = $1",
		userID,
	).Scan(&customer.UserID, &customer.StripeCustomerID, &customer.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &customer, nil
}

func (r *billingRepository) GetCustomerByStripeID(stripeCustomerID string) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.conn.QueryRow(
		"SELECT user_id, stripe_customer_id, created_at FROM customers WHERE stripe_customer_id = $1",
		stripeCustomerID,
	).Scan(&customer.UserID, &customer.StripeCustomerID, &customer.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &customer, nil
}

// UpsertSubscription sincroniza o estado local da assinatura com o que veio
// do Stripe. Cada usuário mantém no máximo uma linha.
func (r *billingRepository) UpsertSubscription(subscription *domain.Subscription) error {
	query, args, err := squirrel.StatementBuilder.
		Insert(subscriptionsTable).
		Columns("owner_id", "stripe_subscription_id", "price_id", "status", "current_period_end", "cancel_at_period_end", "trial_end").
		Values(
			subscription.OwnerID,
			subscription.StripeSubscriptionID,
			subscription.PriceID,
			subscription.Status,
			subscription.CurrentPeriodEnd,
			subscription.CancelAtPeriodEnd,
			subscription.TrialEnd,
		).
		Suffix(`
			ON CONFLICT (owner_id) DO UPDATE SET
				stripe_subscription_id = EXCLUDED.stripe_subscription_id,
				price_id = EXCLUDED.price_id,
				status = EXCLUDED.status,
				current_period_end = EXCLUDED.current_period_end,
				cancel_at_period_end = EXCLUDED.cancel_at_period_end,
				trial_end = EXCLUDED.trial_end,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *billingRepository) GetSubscriptionByOwnerID(ownerID int) (*domain.Subscription, error) {
	query, args, err := squirrel.
		Select("owner_id", "stripe_subscription_id", "price_id", "status", "current_period_end", "cancel_at_period_end", "trial_end", "updated_at").
		From(subscriptionsTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var subscription domain.Subscription
	err = r.conn.QueryRow(query, args...).Scan(
		&subscription.OwnerID,
		&subscription.StripeSubscriptionID,
		&subscription.PriceID,
		&subscription.Status,
		&subscription.CurrentPeriodEnd,
		&subscription.CancelAtPeriodEnd,
		&subscription.TrialEnd,
		&subscription.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &subscription, nil
}
