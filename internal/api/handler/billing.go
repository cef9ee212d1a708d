package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/jbiddulph/localseo/internal/domain"
	"github.com/jbiddulph/localseo/internal/usecases/authenticating"
	"github.com/jbiddulph/localseo/internal/usecases/billing"
	"github.com/jbiddulph/localseo/pkg/apiErrors"
)

// maxWebhookBodyBytes limita o corpo aceito no webhook do Stripe (64KB)
const maxWebhookBodyBytes = 65536

type CheckoutRequest struct {
	Plan domain.BillingPlan `json:"plan"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}

// CreateCheckout inicia uma sessão de checkout do Stripe para o plano escolhido
func CreateCheckout(service billing.BillingService, authService authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateCheckout")

		userClaims, ok := claimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req CheckoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		user, err := authService.GetUserProfile(userClaims.UserID)
		if err != nil || user == nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrUserNotFound, "Usuário não encontrado", nil)
			return
		}

		checkoutURL, err := service.CreateCheckoutSession(user, req.Plan)
		if err != nil {
			handleBillingError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(CheckoutResponse{URL: checkoutURL}); err != nil {
			logrus.Error(err)
		}
	}
}

// CreatePortal abre o portal de autoatendimento do Stripe para o usuário
func CreatePortal(service billing.BillingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreatePortal")

		userClaims, ok := claimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		portalURL, err := service.CreatePortalSession(userClaims.UserID)
		if err != nil {
			handleBillingError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(CheckoutResponse{URL: portalURL}); err != nil {
			logrus.Error(err)
		}
	}
}

// GetSubscription retorna o estado local da assinatura do usuário
func GetSubscription(service billing.BillingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := claimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		subscription, err := service.GetSubscription(userClaims.UserID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar assinatura", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{
			"subscription": subscription,
			"entitled":     service.IsSubscribed(userClaims.UserID),
		}); err != nil {
			logrus.Error(err)
		}
	}
}

// RefreshSubscription sincroniza a assinatura local com o estado no Stripe
func RefreshSubscription(service billing.BillingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RefreshSubscription")

		userClaims, ok := claimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		subscription, err := service.RefreshSubscription(userClaims.UserID)
		if err != nil {
			handleBillingError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(subscription); err != nil {
			logrus.Error(err)
		}
	}
}

// StripeWebhook recebe eventos do Stripe. A autenticidade é verificada pela
// assinatura do cabeçalho, não por token de usuário.
func StripeWebhook(service billing.BillingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodyBytes))
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao ler corpo da requisição", nil)
			return
		}

		signature := r.Header.Get("Stripe-Signature")
		if signature == "" {
			apiErrors.WriteError(w, apiErrors.ErrWebhookSignature, "Cabeçalho Stripe-Signature ausente", nil)
			return
		}

		if err := service.HandleWebhook(payload, signature); err != nil {
			handleBillingError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

func handleBillingError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	switch {
	case errors.Is(err, billing.ErrBillingNotConfigured):
		apiErrors.WriteError(w, apiErrors.ErrBillingUnavailable, "Integração de cobrança não configurada", nil)

	case errors.Is(err, billing.ErrInvalidPlan):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Plano inválido", nil)

	case errors.Is(err, billing.ErrCustomerNotFound):
		apiErrors.WriteError(w, apiErrors.ErrSubscriptionMissing, "Nenhuma assinatura encontrada para o usuário", nil)

	case errors.Is(err, billing.ErrInvalidSignature):
		apiErrors.WriteError(w, apiErrors.ErrWebhookSignature, "Assinatura do webhook inválida", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro na integração de cobrança", nil)
	}
}
