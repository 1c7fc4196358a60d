package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"accounting-backend/internal/app"
	"accounting-backend/internal/apperr"
	"accounting-backend/internal/core"
	webui "accounting-backend/web"
	"accounting-backend/web/templates/layouts"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var pageNames = []string{"login", "dashboard", "invoices", "invoice", "parties", "products", "units", "error"}

// flashMessages are the outcomes a redirect can announce through ?durum=.
var flashMessages = map[string]string{
	"kaydedildi": "Kayıt oluşturuldu.",
	"silindi":    "Fatura silindi.",
}

// parsePages pairs the base layout with every page template.
func parsePages() (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"money": func(d decimal.Decimal) string { return d.StringFixed(core.MoneyPlaces) },
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}
	out := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("base").Funcs(funcs).ParseFS(webui.Templates,
			"templates/layouts/base.html",
			"templates/pages/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}

// render executes a page into a buffer first so a template failure never
// leaves a half-written response.
func (h *Handler) render(w http.ResponseWriter, status int, name string, d layouts.AppLayoutData, data any) {
	var buf bytes.Buffer
	if err := h.pages[name].ExecuteTemplate(&buf, "base", layouts.Page{AppLayoutData: d, Data: data}); err != nil {
		h.log.Error("render page", zap.String("page", name), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// layoutData builds the page shell from the authenticated claims and any
// ?durum= flash carried by a redirect.
func layoutData(r *http.Request, title, activeNav string) layouts.AppLayoutData {
	d := layouts.AppLayoutData{Title: title, ActiveNav: activeNav}
	if claims := authFromContext(r.Context()); claims != nil {
		d.Username = claims.Username
	}
	if msg, ok := flashMessages[r.URL.Query().Get("durum")]; ok {
		d.FlashMsg, d.FlashKind = msg, "success"
	}
	return d
}

func withError(d layouts.AppLayoutData, err error) layouts.AppLayoutData {
	d.FlashMsg, d.FlashKind = apperr.Message(err), "error"
	return d
}

// errorPage renders err as a standalone page with the status of its classification.
func (h *Handler) errorPage(w http.ResponseWriter, r *http.Request, err error) {
	status, _ := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("page failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	h.render(w, status, "error", layoutData(r, apperr.Message(err), ""), nil)
}

// ── Login ─────────────────────────────────────────────────────────────────────

// loginPage handles GET /login. Already authenticated users go to the dashboard.
func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(authCookie); err == nil {
		if _, err := h.parseToken(cookie.Value); err == nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}
	h.render(w, http.StatusOK, "login", layouts.AppLayoutData{Title: "Giriş"}, nil)
}

// loginFormSubmit handles POST /login.
func (h *Handler) loginFormSubmit(w http.ResponseWriter, r *http.Request) {
	d := layouts.AppLayoutData{Title: "Giriş", FlashKind: "error"}
	if err := r.ParseForm(); err != nil {
		d.FlashMsg = "Geçersiz form gönderimi."
		h.render(w, http.StatusBadRequest, "login", d, nil)
		return
	}

	session, err := h.svc.AuthenticateUser(r.Context(), r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		if !errors.Is(err, app.ErrInvalidCredentials) {
			h.errorPage(w, r, err)
			return
		}
		d.FlashMsg = "Kullanıcı adı veya şifre hatalı."
		h.render(w, http.StatusUnauthorized, "login", d, nil)
		return
	}

	signed, err := h.issueToken(session)
	if err != nil {
		h.errorPage(w, r, err)
		return
	}
	h.setAuthCookie(w, signed, int(h.tokenTTL.Seconds()))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// logoutPage handles POST /logout, clearing the cookie.
func (h *Handler) logoutPage(w http.ResponseWriter, r *http.Request) {
	h.setAuthCookie(w, "", -1)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// ── Dashboard ─────────────────────────────────────────────────────────────────

func (h *Handler) dashboardPage(w http.ResponseWriter, r *http.Request) {
	dash, err := h.svc.GetDashboard(r.Context())
	if err != nil {
		h.errorPage(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "dashboard", layoutData(r, "Özet", "dashboard"), dash)
}

// ── Invoices ──────────────────────────────────────────────────────────────────

type invoicesView struct {
	Filter struct {
		Number, PartyName, From, To string
	}
	Invoices []core.Invoice
}

func (h *Handler) invoicesPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var v invoicesView
	v.Filter.Number = q.Get("fatura_no")
	v.Filter.PartyName = q.Get("cari_adi")
	v.Filter.From = q.Get("baslangic_tarihi")
	v.Filter.To = q.Get("bitis_tarihi")

	d := layoutData(r, "Faturalar", "invoices")
	f, err := invoiceFilter(q)
	if err != nil {
		h.render(w, http.StatusBadRequest, "invoices", withError(d, err), v)
		return
	}
	res, err := h.svc.ListInvoices(r.Context(), f)
	if err != nil {
		if apperr.Is(err, apperr.KindValidation) {
			h.render(w, http.StatusBadRequest, "invoices", withError(d, err), v)
			return
		}
		h.errorPage(w, r, err)
		return
	}
	v.Invoices = res.Invoices
	h.render(w, http.StatusOK, "invoices", d, v)
}

func (h *Handler) invoicePage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.errorPage(w, r, apperr.NotFound("invoice not found"))
		return
	}
	inv, err := h.svc.GetInvoice(r.Context(), id)
	if err != nil {
		h.errorPage(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "invoice", layoutData(r, "Fatura "+inv.Number, "invoices"), inv)
}

// invoiceDeleteAction handles POST /faturalar/{id}/sil.
func (h *Handler) invoiceDeleteAction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.errorPage(w, r, apperr.NotFound("invoice not found"))
		return
	}
	if err := h.svc.DeleteInvoice(r.Context(), id); err != nil {
		h.errorPage(w, r, err)
		return
	}
	http.Redirect(w, r, "/faturalar?durum=silindi", http.StatusSeeOther)
}

// ── Parties ───────────────────────────────────────────────────────────────────

type partiesView struct {
	Filter  core.PartyFilter
	Parties []core.Party
}

func (h *Handler) partiesPage(w http.ResponseWriter, r *http.Request) {
	h.renderParties(w, r, http.StatusOK, layoutData(r, "Cariler", "parties"))
}

func (h *Handler) renderParties(w http.ResponseWriter, r *http.Request, status int, d layouts.AppLayoutData) {
	q := r.URL.Query()
	v := partiesView{Filter: core.PartyFilter{Name: q.Get("adi_soyadi"), NationalID: q.Get("tc_kimlik_no")}}
	res, err := h.svc.ListParties(r.Context(), v.Filter)
	if err != nil {
		h.errorPage(w, r, err)
		return
	}
	v.Parties = res.Parties
	h.render(w, status, "parties", d, v)
}

func (h *Handler) partyCreateAction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.errorPage(w, r, apperr.Validation("invalid form submission"))
		return
	}
	_, err := h.svc.CreateParty(r.Context(), core.PartyInput{
		Name:       r.PostFormValue("adi_soyadi"),
		NationalID: r.PostFormValue("tc_kimlik_no"),
		Note:       r.PostFormValue("aciklama"),
	})
	if err != nil {
		h.formFailed(w, r, err, h.renderParties, "Cariler", "parties")
		return
	}
	http.Redirect(w, r, "/cariler?durum=kaydedildi", http.StatusSeeOther)
}

// ── Products ──────────────────────────────────────────────────────────────────

type productsView struct {
	Filter   core.ProductFilter
	Products []core.Product
	Units    []core.Unit
}

func (h *Handler) productsPage(w http.ResponseWriter, r *http.Request) {
	h.renderProducts(w, r, http.StatusOK, layoutData(r, "Ürünler", "products"))
}

func (h *Handler) renderProducts(w http.ResponseWriter, r *http.Request, status int, d layouts.AppLayoutData) {
	q := r.URL.Query()
	v := productsView{Filter: core.ProductFilter{
		Barcode:   q.Get("barkod"),
		Name:      q.Get("adi"),
		ShortName: q.Get("kisa_adi"),
	}}
	res, err := h.svc.ListProducts(r.Context(), v.Filter)
	if err != nil {
		h.errorPage(w, r, err)
		return
	}
	units, err := h.svc.ListUnits(r.Context(), core.UnitFilter{})
	if err != nil {
		h.errorPage(w, r, err)
		return
	}
	v.Products, v.Units = res.Products, units.Units
	h.render(w, status, "products", d, v)
}

func (h *Handler) productCreateAction(w http.ResponseWriter, r *http.Request) {
	in, err := productForm(r)
	if err == nil {
		_, err = h.svc.CreateProduct(r.Context(), in)
	}
	if err != nil {
		h.formFailed(w, r, err, h.renderProducts, "Ürünler", "products")
		return
	}
	http.Redirect(w, r, "/urunler?durum=kaydedildi", http.StatusSeeOther)
}

func productForm(r *http.Request) (core.ProductInput, error) {
	if err := r.ParseForm(); err != nil {
		return core.ProductInput{}, apperr.Validation("invalid form submission")
	}
	in := core.ProductInput{
		Barcode:   r.PostFormValue("barkod"),
		ShortName: r.PostFormValue("kisa_adi"),
		Name:      r.PostFormValue("adi"),
		Note:      r.PostFormValue("aciklama"),
	}
	if s := strings.TrimSpace(r.PostFormValue("birim_id")); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			return in, apperr.Validation("birim_id must be a number")
		}
		in.UnitID = &id
	}
	if s := strings.TrimSpace(r.PostFormValue("kdv")); s != "" {
		vat, err := strconv.Atoi(s)
		if err != nil {
			return in, apperr.Validation("kdv must be a whole number")
		}
		in.VATRate = vat
	}
	return in, nil
}

// ── Units ─────────────────────────────────────────────────────────────────────

type unitsView struct {
	Filter core.UnitFilter
	Units  []core.Unit
}

func (h *Handler) unitsPage(w http.ResponseWriter, r *http.Request) {
	h.renderUnits(w, r, http.StatusOK, layoutData(r, "Birimler", "units"))
}

func (h *Handler) renderUnits(w http.ResponseWriter, r *http.Request, status int, d layouts.AppLayoutData) {
	q := r.URL.Query()
	v := unitsView{Filter: core.UnitFilter{Code: q.Get("kisa_adi"), Name: q.Get("adi")}}
	res, err := h.svc.ListUnits(r.Context(), v.Filter)
	if err != nil {
		h.errorPage(w, r, err)
		return
	}
	v.Units = res.Units
	h.render(w, status, "units", d, v)
}

func (h *Handler) unitCreateAction(w http.ResponseWriter, r *http.Request) {
	in, err := unitForm(r)
	if err == nil {
		_, err = h.svc.CreateUnit(r.Context(), in)
	}
	if err != nil {
		h.formFailed(w, r, err, h.renderUnits, "Birimler", "units")
		return
	}
	http.Redirect(w, r, "/birimler?durum=kaydedildi", http.StatusSeeOther)
}

func unitForm(r *http.Request) (core.UnitInput, error) {
	if err := r.ParseForm(); err != nil {
		return core.UnitInput{}, apperr.Validation("invalid form submission")
	}
	in := core.UnitInput{
		Code: r.PostFormValue("kisa_adi"),
		Name: r.PostFormValue("adi"),
		Note: r.PostFormValue("aciklama"),
	}
	if s := strings.TrimSpace(r.PostFormValue("kg_karsiligi")); s != "" {
		f, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
		if err != nil {
			return in, apperr.Validation("kg_karsiligi must be a number")
		}
		in.KgFactor = &f
	}
	return in, nil
}

// formFailed re-renders a list page with the rejection shown inline. Errors
// the user cannot fix get the error page instead.
func (h *Handler) formFailed(
	w http.ResponseWriter, r *http.Request, err error,
	view func(http.ResponseWriter, *http.Request, int, layouts.AppLayoutData),
	title, nav string,
) {
	status, _ := statusFor(err)
	if status != http.StatusBadRequest {
		h.errorPage(w, r, err)
		return
	}
	view(w, r, status, withError(layoutData(r, title, nav), err))
}
