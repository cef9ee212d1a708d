package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/jbiddulph/localseo/infrastructure/integrator/googleplaces"
	"github.com/jbiddulph/localseo/pkg/apiErrors"
)

type PreviewPlacesRequest struct {
	Postcode string   `json:"postcode"`
	Keyword  string   `json:"keyword"`
	RadiusKm *float64 `json:"radius_km"`
}

// PreviewPlaces executa uma busca pontual de ranking sem persistir snapshot.
// Útil para o usuário validar postcode/keyword antes de criar um cohort.
func PreviewPlaces(service googleplaces.PlacesIntegrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - PreviewPlaces")

		var req PreviewPlacesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		if req.Postcode == "" || req.Keyword == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campos postcode e keyword são obrigatórios", nil)
			return
		}

		if req.RadiusKm != nil && *req.RadiusKm <= 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Campo radius_km inválido", nil)
			return
		}

		result, err := service.CollectRankedPlaces(req.Postcode, req.Keyword, req.RadiusKm)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao consultar o provedor de lugares", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{
			"center_lat": result.CenterLat,
			"center_lng": result.CenterLng,
			"items":      result.Items,
		}); err != nil {
			logrus.Error(err)
		}
	}
}
