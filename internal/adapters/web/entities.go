package web

import (
	"net/http"

	"accounting-backend/internal/core"
)

// ── Parties (cari) ────────────────────────────────────────────────────────────

func (h *Handler) apiListParties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.svc.ListParties(r.Context(), core.PartyFilter{
		Name:       q.Get("adi_soyadi"),
		NationalID: q.Get("tc_kimlik_no"),
	})
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeList(w, res.Parties, res.Total)
}

func (h *Handler) apiGetParty(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	p, err := h.svc.GetParty(r.Context(), id)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, p, "")
}

func (h *Handler) apiCreateParty(w http.ResponseWriter, r *http.Request) {
	var in core.PartyInput
	if !h.decodeJSON(w, r, &in) {
		return
	}
	p, err := h.svc.CreateParty(r.Context(), in)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, p, "party created")
}

func (h *Handler) apiUpdateParty(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var patch core.PartyPatch
	if !h.decodeJSON(w, r, &patch) {
		return
	}
	p, err := h.svc.UpdateParty(r.Context(), id, patch)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, p, "party updated")
}

func (h *Handler) apiDeleteParty(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteParty(r.Context(), id); err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "party deleted"})
}

// ── Products (urun) ───────────────────────────────────────────────────────────

func (h *Handler) apiListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.svc.ListProducts(r.Context(), core.ProductFilter{
		Barcode:   q.Get("barkod"),
		Name:      q.Get("adi"),
		ShortName: q.Get("kisa_adi"),
	})
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeList(w, res.Products, res.Total)
}

func (h *Handler) apiGetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	p, err := h.svc.GetProduct(r.Context(), id)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, p, "")
}

func (h *Handler) apiCreateProduct(w http.ResponseWriter, r *http.Request) {
	var in core.ProductInput
	if !h.decodeJSON(w, r, &in) {
		return
	}
	p, err := h.svc.CreateProduct(r.Context(), in)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, p, "product created")
}

func (h *Handler) apiUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var patch core.ProductPatch
	if !h.decodeJSON(w, r, &patch) {
		return
	}
	p, err := h.svc.UpdateProduct(r.Context(), id, patch)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, p, "product updated")
}

func (h *Handler) apiDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteProduct(r.Context(), id); err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "product deleted"})
}

// ── Units (birim) ─────────────────────────────────────────────────────────────

func (h *Handler) apiListUnits(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.svc.ListUnits(r.Context(), core.UnitFilter{
		Code: q.Get("kisa_adi"),
		Name: q.Get("adi"),
	})
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeList(w, res.Units, res.Total)
}

func (h *Handler) apiGetUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	u, err := h.svc.GetUnit(r.Context(), id)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, u, "")
}

func (h *Handler) apiCreateUnit(w http.ResponseWriter, r *http.Request) {
	var in core.UnitInput
	if !h.decodeJSON(w, r, &in) {
		return
	}
	u, err := h.svc.CreateUnit(r.Context(), in)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, u, "unit created")
}

func (h *Handler) apiUpdateUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var patch core.UnitPatch
	if !h.decodeJSON(w, r, &patch) {
		return
	}
	u, err := h.svc.UpdateUnit(r.Context(), id, patch)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, u, "unit updated")
}

func (h *Handler) apiDeleteUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteUnit(r.Context(), id); err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "unit deleted"})
}
