package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"storeaudit/internal/model"
	"storeaudit/internal/scoring"
	"storeaudit/internal/service"
	"storeaudit/internal/transport/rest/middleware"
)

const (
	defaultListLimit        = 20
	defaultLeaderboardLimit = 10
	maxListLimit            = 200
)

// InspectionManager is the inspection service surface used by the handler
type InspectionManager interface {
	Preview(ctx context.Context, req *model.PreviewRequest) (*scoring.Breakdown, error)
	Create(ctx context.Context, inspectorID string, req *model.CreateInspectionRequest) (*model.Inspection, error)
	Get(ctx context.Context, id string) (*model.Inspection, error)
	ListByStore(ctx context.Context, storeID string, limit int64) ([]*model.Inspection, error)
	Leaderboard(ctx context.Context, templateID string, limit int) ([]model.LeaderboardEntry, error)
	Recompute(ctx context.Context, templateID string) ([]model.RecomputedScore, error)
}

// InspectionHandler handles inspection and scoring endpoints
type InspectionHandler struct {
	inspectionSvc InspectionManager
}

// NewInspectionHandler creates a new inspection handler
func NewInspectionHandler(inspectionSvc InspectionManager) *InspectionHandler {
	return &InspectionHandler{inspectionSvc: inspectionSvc}
}

// Preview handles POST /v1/inspections/preview
func (h *InspectionHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req model.PreviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	b, err := h.inspectionSvc.Preview(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	res := b.Result()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sectionScores": res.SectionScores,
		"finalScore":    res.FinalScore,
		"breakdown":     b,
	})
}

// Create handles POST /v1/inspections
func (h *InspectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	inspectorID := middleware.GetUserID(r.Context())
	if inspectorID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.CreateInspectionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	insp, err := h.inspectionSvc.Create(r.Context(), inspectorID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, insp)
}

// Get handles GET /v1/inspections/{inspectionId}
func (h *InspectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	insp, err := h.inspectionSvc.Get(r.Context(), mux.Vars(r)["inspectionId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !canAccessStore(r.Context(), insp.StoreID) {
		writeServiceError(w, service.ErrForbidden)
		return
	}
	writeJSON(w, http.StatusOK, insp)
}

// ListByStore handles GET /v1/stores/{storeId}/inspections?limit=N
func (h *InspectionHandler) ListByStore(w http.ResponseWriter, r *http.Request) {
	storeID := mux.Vars(r)["storeId"]
	if !canAccessStore(r.Context(), storeID) {
		writeServiceError(w, service.ErrForbidden)
		return
	}

	limit := queryInt(r, "limit", defaultListLimit)
	if limit > maxListLimit {
		limit = maxListLimit
	}

	inspections, err := h.inspectionSvc.ListByStore(r.Context(), storeID, int64(limit))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"inspections": inspections})
}

// Leaderboard handles GET /v1/templates/{templateId}/leaderboard?limit=N
func (h *InspectionHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultLeaderboardLimit)

	entries, err := h.inspectionSvc.Leaderboard(r.Context(), mux.Vars(r)["templateId"], limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"leaderboard": entries})
}

// Recompute handles GET /v1/templates/{templateId}/recompute
func (h *InspectionHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	scores, err := h.inspectionSvc.Recompute(r.Context(), mux.Vars(r)["templateId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"inspections": scores})
}

func canAccessStore(ctx context.Context, storeID string) bool {
	claims := middleware.GetClaims(ctx)
	return claims != nil && claims.CanAccessStore(storeID)
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
