package products

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/vendor-products/internal/attributes"
	"github.com/JaimeStill/vendor-products/internal/auth"
	"github.com/JaimeStill/vendor-products/internal/rules"
	"github.com/JaimeStill/vendor-products/pkg/handlers"
	"github.com/JaimeStill/vendor-products/pkg/routes"
	"github.com/JaimeStill/vendor-products/pkg/storage"
	"github.com/JaimeStill/vendor-products/pkg/upload"
	"github.com/JaimeStill/vendor-products/pkg/validate"
)

// Handler provides HTTP endpoints for vendor product operations. Request
// bodies, query parameters, ownership, and feature gates are enforced by the
// route middleware table before a handler runs.
type Handler struct {
	sys       System
	attrs     attributes.System
	store     storage.System
	rules     rules.Source
	validator *validate.Validator
	logger    *slog.Logger
}

// NewHandler creates a product handler.
func NewHandler(
	sys System,
	attrs attributes.System,
	store storage.System,
	src rules.Source,
	v *validate.Validator,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		sys:       sys,
		attrs:     attrs,
		store:     store,
		rules:     src,
		validator: v,
		logger:    logger.With("handler", "products"),
	}
}

// Routes returns the product endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/products",
		Tags:        []string{"Products"},
		Description: "Seller product catalog",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: Spec.Create},
			{Method: "POST", Pattern: "/export", Handler: h.Export, OpenAPI: Spec.Export},
			{Method: "POST", Pattern: "/import", Handler: h.Import, OpenAPI: Spec.Import},
			{Method: "GET", Pattern: "/{id}", Handler: h.Retrieve, OpenAPI: Spec.Retrieve},
			{Method: "POST", Pattern: "/{id}", Handler: h.Update, OpenAPI: Spec.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, OpenAPI: Spec.Delete},
			{Method: "POST", Pattern: "/{id}/brand", Handler: h.AssignBrand, OpenAPI: Spec.AssignBrand},
			{Method: "POST", Pattern: "/{id}/status", Handler: h.UpdateStatus, OpenAPI: Spec.UpdateStatus},
			{Method: "GET", Pattern: "/{id}/applicable-attributes", Handler: h.ApplicableAttributes, OpenAPI: Spec.ApplicableAttributes},
		},
		Children: []routes.Group{
			{
				Prefix:      "/{id}/variants",
				Tags:        []string{"Product Variants"},
				Description: "Variants of a seller product",
				Routes: []routes.Route{
					{Method: "POST", Pattern: "", Handler: h.CreateVariant, OpenAPI: Spec.CreateVariant},
					{Method: "POST", Pattern: "/{variant_id}", Handler: h.UpdateVariant, OpenAPI: Spec.UpdateVariant},
					{Method: "DELETE", Pattern: "/{variant_id}", Handler: h.DeleteVariant, OpenAPI: Spec.DeleteVariant},
				},
			},
			{
				Prefix:      "/{id}/options",
				Tags:        []string{"Product Options"},
				Description: "Options of a seller product",
				Routes: []routes.Route{
					{Method: "POST", Pattern: "", Handler: h.CreateOption, OpenAPI: Spec.CreateOption},
					{Method: "POST", Pattern: "/{option_id}", Handler: h.UpdateOption, OpenAPI: Spec.UpdateOption},
					{Method: "DELETE", Pattern: "/{option_id}", Handler: h.DeleteOption, OpenAPI: Spec.DeleteOption},
				},
			},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	lc, ok := validate.ListConfigFrom(r)
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, ErrMissingListConfig)
		return
	}

	result, err := h.sys.List(r.Context(), ListRequest{
		Filters:   FiltersFromList(lc),
		Order:     lc.Order,
		Window:    lc.Window(),
		Relations: relationsFor(lc.Fields),
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	items, err := ProjectAll(result.Data, lc.Fields)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"products": items,
		"count":    result.Count,
		"offset":   result.Offset,
		"limit":    result.Limit,
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFrom(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, auth.ErrMissingToken)
		return
	}

	cmd, ok := validate.BodyFrom[CreateProduct](r)
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, ErrMissingBody)
		return
	}

	status, err := h.initialStatus(r, cmd.Status)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	cmd.Status = status

	p, err := h.sys.Create(r.Context(), actor.SellerID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.respondProduct(w, r, http.StatusCreated, p)
}

func (h *Handler) Retrieve(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	h.respondFound(w, r, id)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	cmd, ok := validate.BodyFrom[UpdateProduct](r)
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, ErrMissingBody)
		return
	}

	if err := h.sys.Update(r.Context(), id, cmd); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	h.respondFound(w, r, id)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, DeleteResponse{ID: id.String(), Object: "product", Deleted: true})
}

func (h *Handler) AssignBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	cmd, ok := validate.BodyFrom[AssignBrand](r)
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, ErrMissingBody)
		return
	}

	if err := h.sys.AssignBrand(r.Context(), id, cmd.BrandName); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	h.respondFound(w, r, id)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	cmd, ok := validate.BodyFrom[UpdateStatus](r)
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, ErrMissingBody)
		return
	}

	status := cmd.Status
	if status == StatusPublished {
		snap, err := h.rules.Snapshot(r.Context())
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
			return
		}
		if snap.Enabled(rules.RequireProductApproval) {
			status = StatusProposed
		}
	}

	if err := h.sys.SetStatus(r.Context(), id, status); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	h.respondFound(w, r, id)
}

func (h *Handler) CreateVariant(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	cmd, ok := validate.BodyFrom[CreateVariant](r)
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, ErrMissingBody)
		return
	}

	if _, err := h.sys.CreateVariant(r.Context(), id, cmd); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	h.respondFound(w, r, id)
}

func (h *Handler) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	variantID, ok := h.pathID(w, r, "variant_id")
	if !ok {
		return
	}

	cmd, ok := validate.BodyFrom[UpdateVariant](r)
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, ErrMissingBody)
		return
	}

	if err := h.sys.UpdateVariant(r.Context(), id, variantID, cmd); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	h.respondFound(w, r, id)
}

func (h *Handler) DeleteVariant(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	variantID, ok := h.pathID(w, r, "variant_id")
	if !ok {
		return
	}

	if err := h.sys.DeleteVariant(r.Context(), id, variantID); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	h.respondDeletedChild(w, r, id, variantID, "variant")
}

func (h *Handler) CreateOption(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	cmd, ok := validate.BodyFrom[CreateOption](r)
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, ErrMissingBody)
		return
	}

	if _, err := h.sys.CreateOption(r.Context(), id, cmd); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	h.respondFound(w, r, id)
}

func (h *Handler) UpdateOption(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	optionID, ok := h.pathID(w, r, "option_id")
	if !ok {
		return
	}

	cmd, ok := validate.BodyFrom[UpdateOption](r)
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, ErrMissingBody)
		return
	}

	if err := h.sys.UpdateOption(r.Context(), id, optionID, cmd); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	h.respondFound(w, r, id)
}

func (h *Handler) DeleteOption(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	optionID, ok := h.pathID(w, r, "option_id")
	if !ok {
		return
	}

	if err := h.sys.DeleteOption(r.Context(), id, optionID); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	h.respondDeletedChild(w, r, id, optionID, "product_option")
}

// Export writes the seller's catalog as CSV into blob storage.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFrom(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, auth.ErrMissingToken)
		return
	}

	items, err := h.sys.BySeller(r.Context(), actor.SellerID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	data, err := WriteExport(items)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	key := fmt.Sprintf("exports/%s/%s.csv", actor.SellerID, uuid.NewString())
	if err := h.store.Store(r.Context(), key, data); err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}

	h.logger.Info("products exported", "seller_id", actor.SellerID, "count", len(items), "file_key", key)
	handlers.RespondJSON(w, http.StatusAccepted, map[string]string{"file_key": key})
}

// Import creates one product per distinct handle in the uploaded CSV.
// Rejected rows are reported without failing the request.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFrom(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, auth.ErrMissingToken)
		return
	}

	file, ok := upload.FileFrom(r)
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, upload.ErrMissingFile)
		return
	}

	rows, rowErrs, err := ParseImport(file.Reader())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	result := ImportResult{Created: []string{}, Errors: rowErrs}
	if result.Errors == nil {
		result.Errors = []ImportError{}
	}

	for _, row := range rows {
		cmd := row.Product
		cmd.Normalize()

		if err := h.validator.Struct(cmd); err != nil {
			result.Errors = append(result.Errors, ImportError{Line: row.Line, Handle: cmd.Handle, Message: err.Error()})
			continue
		}

		status, err := h.initialStatus(r, cmd.Status)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
			return
		}
		cmd.Status = status

		p, err := h.sys.Create(r.Context(), actor.SellerID, cmd)
		if err != nil {
			if MapHTTPStatus(err) == http.StatusInternalServerError {
				h.logger.Error("import row failed", "line", row.Line, "error", err)
			}
			result.Errors = append(result.Errors, ImportError{Line: row.Line, Handle: cmd.Handle, Message: err.Error()})
			continue
		}
		result.Created = append(result.Created, p.ID.String())
	}

	h.logger.Info("products imported",
		"seller_id", actor.SellerID,
		"file", file.Name,
		"created", len(result.Created),
		"errors", len(result.Errors),
	)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// ApplicableAttributes lists attributes that are global or linked to the
// product's categories.
func (h *Handler) ApplicableAttributes(w http.ResponseWriter, r *http.Request) {
	lc, ok := validate.ListConfigFrom(r)
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, ErrMissingListConfig)
		return
	}

	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.attrs.Applicable(r.Context(), id.String(), attributes.FiltersFromList(lc), lc.Order, lc.Window())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"attributes": result.Data,
		"count":      result.Count,
		"offset":     result.Offset,
		"limit":      result.Limit,
	})
}

// initialStatus applies the approval rule to a requested creation status.
func (h *Handler) initialStatus(r *http.Request, requested Status) (Status, error) {
	snap, err := h.rules.Snapshot(r.Context())
	if err != nil {
		return "", err
	}
	if snap.Enabled(rules.RequireProductApproval) {
		return StatusProposed, nil
	}
	if requested == "" {
		return StatusDraft, nil
	}
	return requested, nil
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %s", ErrInvalidID, name))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) fields(r *http.Request) []string {
	if lc, ok := validate.ListConfigFrom(r); ok {
		return lc.Fields
	}
	return defaultFields
}

func (h *Handler) respondFound(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	p, err := h.sys.Find(r.Context(), id, relationsFor(h.fields(r)))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	h.respondProduct(w, r, http.StatusOK, p)
}

func (h *Handler) respondProduct(w http.ResponseWriter, r *http.Request, status int, p *Product) {
	out, err := Project(*p, h.fields(r))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	handlers.RespondJSON(w, status, map[string]any{"product": out})
}

func (h *Handler) respondDeletedChild(w http.ResponseWriter, r *http.Request, productID, childID uuid.UUID, object string) {
	p, err := h.sys.Find(r.Context(), productID, Relations{Options: true, Variants: true})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	parent, err := Project(*p, defaultFields)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, DeleteResponse{
		ID:      childID.String(),
		Object:  object,
		Deleted: true,
		Parent:  parent,
	})
}
