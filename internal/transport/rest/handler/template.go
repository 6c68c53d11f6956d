package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"storeaudit/internal/model"
	"storeaudit/internal/transport/rest/middleware"
)

// TemplateManager is the template service surface used by the handler
type TemplateManager interface {
	Create(ctx context.Context, tpl *model.Template) (string, error)
	GetByID(ctx context.Context, id string) (*model.Template, error)
	List(ctx context.Context) ([]*model.Template, error)
	Update(ctx context.Context, tpl *model.Template) error
	Delete(ctx context.Context, id string) error
}

// TemplateHandler handles template endpoints
type TemplateHandler struct {
	templateSvc TemplateManager
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(templateSvc TemplateManager) *TemplateHandler {
	return &TemplateHandler{templateSvc: templateSvc}
}

// Create handles POST /v1/templates
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var tpl model.Template
	if !decodeAndValidate(w, r, &tpl) {
		return
	}
	tpl.ID = ""
	tpl.CreatedBy = middleware.GetUserID(r.Context())

	id, err := h.templateSvc.Create(r.Context(), &tpl)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"templateId": id})
}

// Update handles PUT /v1/templates/{templateId}
func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	templateID := mux.Vars(r)["templateId"]

	var tpl model.Template
	if !decodeAndValidate(w, r, &tpl) {
		return
	}
	tpl.ID = templateID

	if err := h.templateSvc.Update(r.Context(), &tpl); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, &tpl)
}

// Get handles GET /v1/templates/{templateId}
func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.templateSvc.GetByID(r.Context(), mux.Vars(r)["templateId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}

// List handles GET /v1/templates
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templateSvc.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"templates": templates})
}

// Delete handles DELETE /v1/templates/{templateId}
func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.templateSvc.Delete(r.Context(), mux.Vars(r)["templateId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
