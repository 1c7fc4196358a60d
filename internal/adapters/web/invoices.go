package web

import (
	"net/http"
	"net/url"

	"accounting-backend/internal/app"
	"accounting-backend/internal/core"

	"github.com/shopspring/decimal"
)

// invoiceFilter reads the list filters shared by the API and the invoice page.
func invoiceFilter(q url.Values) (core.InvoiceFilter, error) {
	f := core.InvoiceFilter{
		Number:    q.Get("fatura_no"),
		PartyName: q.Get("cari_adi"),
	}
	if s := q.Get("baslangic_tarihi"); s != "" {
		d, err := core.ParseDate(s)
		if err != nil {
			return f, err
		}
		f.From = d
	}
	if s := q.Get("bitis_tarihi"); s != "" {
		d, err := core.ParseDate(s)
		if err != nil {
			return f, err
		}
		f.To = d
	}
	return f, nil
}

// apiListInvoices handles GET /api/fatura.
func (h *Handler) apiListInvoices(w http.ResponseWriter, r *http.Request) {
	f, err := invoiceFilter(r.URL.Query())
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	res, err := h.svc.ListInvoices(r.Context(), f)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeList(w, res.Invoices, res.Total)
}

// apiGetInvoice handles GET /api/fatura/{id}.
func (h *Handler) apiGetInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	inv, err := h.svc.GetInvoice(r.Context(), id)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, inv, "")
}

// apiCreateInvoice handles POST /api/fatura.
func (h *Handler) apiCreateInvoice(w http.ResponseWriter, r *http.Request) {
	var in core.CreateInvoiceInput
	if !h.decodeJSON(w, r, &in) {
		return
	}
	inv, err := h.svc.CreateInvoice(r.Context(), in)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, inv, "invoice created")
}

// apiDeleteInvoice handles DELETE /api/fatura/{id}.
func (h *Handler) apiDeleteInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteInvoice(r.Context(), id); err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "invoice deleted"})
}

// apiPreviewLine handles POST /api/fatura/hesapla. Nothing is stored.
func (h *Handler) apiPreviewLine(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity  decimal.Decimal `json:"miktar"`
		UnitPrice decimal.Decimal `json:"birim_fiyat"`
		VATRate   int             `json:"kdv_orani"`
	}
	if !h.decodeJSON(w, r, &req) {
		return
	}
	preview, err := h.svc.PreviewLine(r.Context(), app.PreviewLineRequest{
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		VATRate:   req.VATRate,
	})
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, preview, "")
}
