package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"accounting-backend/internal/adapters/web"
	"accounting-backend/internal/app"
	"accounting-backend/internal/apperr"
	"accounting-backend/internal/core"
	"accounting-backend/internal/core/memstore"
	"accounting-backend/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const testSecret = "test-secret-key-for-web-handlers"

type testServer struct {
	t       *testing.T
	handler http.Handler
	store   *memstore.Store
	svc     app.ApplicationService
	token   string
}

type apiResponse[T any] struct {
	Success     bool   `json:"success"`
	Data        T      `json:"data"`
	Total       *int   `json:"total"`
	Message     string `json:"message"`
	Error       string `json:"error"`
	Code        string `json:"code"`
	RequestID   string `json:"request_id"`
	AccessToken string `json:"access_token"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memstore.New()
	m := metrics.New()
	svc := app.NewAppService(app.Services{
		Invoices: core.NewInvoiceService(store.Invoices(), nil, m),
		Parties:  core.NewPartyService(store.Parties()),
		Products: core.NewProductService(store.Products()),
		Units:    core.NewUnitService(store.Units()),
		Users:    core.NewUserService(store.Users()),
	}, store, nil)

	_, err := svc.CreateUser(context.Background(), app.CreateUserRequest{
		Username: "admin", Password: "password1", FullName: "Admin User",
	})
	require.NoError(t, err)

	ts := &testServer{
		t:       t,
		handler: web.NewHandler(svc, web.Options{JWTSecret: testSecret, Metrics: m}),
		store:   store,
		svc:     svc,
	}
	ts.token = ts.login("admin", "password1")
	return ts
}

func (ts *testServer) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	ts.t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(ts.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) api(method, path string, body any) *httptest.ResponseRecorder {
	ts.t.Helper()
	return ts.do(method, path, body, ts.token)
}

func (ts *testServer) login(username, password string) string {
	ts.t.Helper()
	rec := ts.do(http.MethodPost, "/api/auth/login", map[string]string{"username": username, "password": password}, "")
	require.Equal(ts.t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[app.UserSession](ts.t, rec)
	require.NotEmpty(ts.t, resp.AccessToken)
	return resp.AccessToken
}

// seed creates one unit, party and product and returns their ids.
func (ts *testServer) seed() (unitID, partyID, productID int) {
	ts.t.Helper()
	ctx := context.Background()
	u, err := ts.svc.CreateUnit(ctx, core.UnitInput{Code: "ad", Name: "Adet"})
	require.NoError(ts.t, err)
	p, err := ts.svc.CreateParty(ctx, core.PartyInput{Name: "Acme Ltd"})
	require.NoError(ts.t, err)
	pr, err := ts.svc.CreateProduct(ctx, core.ProductInput{Name: "Widget", UnitID: &u.ID, VATRate: 18})
	require.NoError(ts.t, err)
	return u.ID, p.ID, pr.ID
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) apiResponse[T] {
	t.Helper()
	var out apiResponse[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func invoiceBody(partyID, productID, unitID int, number string) map[string]any {
	return map[string]any{
		"fatura_tarihi": "2024-01-01",
		"fatura_no":     number,
		"cari_id":       partyID,
		"detaylar": []map[string]any{
			{"urun_id": productID, "birim_id": unitID, "miktar": "2", "birim_fiyat": "100", "kdv_orani": 8},
			{"urun_id": productID, "birim_id": unitID, "miktar": 1, "birim_fiyat": 50, "kdv_orani": 18},
		},
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	ts.store.FailOn(memstore.OpPing, 1, apperr.Wrap(apperr.KindStorageUnavailable, errors.New("dial tcp: refused"), "database unreachable"))
	rec = ts.do(http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decode[any](t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "STORAGE_UNAVAILABLE", resp.Code)
	assert.NotContains(t, resp.Error, "dial tcp", "transport details stay server-side")
}

func TestAPI_RequiresBearer(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/api/fatura", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", decode[any](t, rec).Code)

	rec = ts.do(http.MethodGet, "/api/fatura", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(http.MethodPost, "/api/fatura/hesapla", map[string]any{"miktar": 1}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid username or password", decode[any](t, rec).Error)

	rec = ts.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "ghost", "password": "password1"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "admin"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.api(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[app.UserResult](t, rec)
	assert.Equal(t, "admin", me.Data.Username)
	assert.Equal(t, "Admin User", me.Data.FullName)
	assert.NotContains(t, rec.Body.String(), "$2a$", "password hash never leaves the server")
}

func TestInvoiceAPI_Lifecycle(t *testing.T) {
	ts := newTestServer(t)
	unitID, partyID, productID := ts.seed()

	rec := ts.api(http.MethodPost, "/api/fatura", invoiceBody(partyID, productID, unitID, ""))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[core.Invoice](t, rec)
	assert.True(t, created.Success)
	inv := created.Data
	assert.Equal(t, "FTR202401010001", inv.Number)
	assert.Equal(t, "Acme Ltd", inv.PartyName)
	assert.Equal(t, "3", inv.TotalQuantity.String())
	assert.Equal(t, "25.00", inv.TotalVAT.StringFixed(2))
	assert.Equal(t, "275.00", inv.TotalAmount.StringFixed(2))
	require.Len(t, inv.Lines, 2)
	assert.Equal(t, "216.00", inv.Lines[0].Net.StringFixed(2))
	assert.Equal(t, "Widget", inv.Lines[0].ProductName)
	assert.Equal(t, "Adet", inv.Lines[0].UnitName)

	rec = ts.api(http.MethodGet, "/api/fatura?cari_adi=acme&baslangic_tarihi=2024-01-01&bitis_tarihi=2024-01-31", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]core.Invoice](t, rec)
	require.NotNil(t, list.Total)
	assert.Equal(t, 1, *list.Total)
	assert.Empty(t, list.Data[0].Lines, "lists carry headers only")

	rec = ts.api(http.MethodGet, fmt.Sprintf("/api/fatura/%d", inv.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[core.Invoice](t, rec).Data.Lines, 2)

	rec = ts.api(http.MethodDelete, fmt.Sprintf("/api/fatura/%d", inv.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[any](t, rec).Success)
	assert.Zero(t, ts.store.InvoiceCount())
	assert.Zero(t, ts.store.LineCount())

	rec = ts.api(http.MethodDelete, fmt.Sprintf("/api/fatura/%d", inv.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode[any](t, rec).Code)

	rec = ts.api(http.MethodGet, fmt.Sprintf("/api/fatura/%d", inv.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvoiceAPI_Rejects(t *testing.T) {
	ts := newTestServer(t)
	unitID, partyID, productID := ts.seed()

	empty := invoiceBody(partyID, productID, unitID, "")
	empty["detaylar"] = []any{}
	rec := ts.api(http.MethodPost, "/api/fatura", empty)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode[any](t, rec).Code)
	assert.Zero(t, ts.store.InvoiceCount())

	rec = ts.api(http.MethodPost, "/api/fatura", invoiceBody(partyID, productID, unitID, "A-1"))
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = ts.api(http.MethodPost, "/api/fatura", invoiceBody(partyID, productID, unitID, "A-1"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	dup := decode[any](t, rec)
	assert.Equal(t, "CONFLICT", dup.Code)
	assert.Equal(t, "invoice number already exists", dup.Error)

	rec = ts.api(http.MethodPost, "/api/fatura", invoiceBody(999, productID, unitID, ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "REFERENTIAL_INTEGRITY", decode[any](t, rec).Code)

	rec = ts.api(http.MethodPost, "/api/fatura", `{"fatura_tarihi": "01.01.2024"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.api(http.MethodGet, "/api/fatura?baslangic_tarihi=2024-02-01&bitis_tarihi=2024-01-01", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.api(http.MethodGet, "/api/fatura/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 1, ts.store.InvoiceCount())
}

func TestPreviewAPI(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.api(http.MethodPost, "/api/fatura/hesapla", `{"miktar": "2", "birim_fiyat": 100, "kdv_orani": 8}`)
	require.Equal(t, http.StatusOK, rec.Code)
	preview := decode[core.LinePreview](t, rec)
	assert.Equal(t, "200.00", preview.Data.Gross.StringFixed(2))
	assert.Equal(t, "16.00", preview.Data.VAT.StringFixed(2))
	assert.Equal(t, "216.00", preview.Data.Net.StringFixed(2))
	assert.Zero(t, ts.store.InvoiceCount())

	rec = ts.api(http.MethodPost, "/api/fatura/hesapla", `{"miktar": 0, "birim_fiyat": 100, "kdv_orani": 8}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.api(http.MethodPost, "/api/fatura/hesapla", `{"miktar": "1.0005", "birim_fiyat": 100, "kdv_orani": 8}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "quantity allows at most 3 decimal places", decode[any](t, rec).Error)
}

func TestPartyAPI(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.api(http.MethodPost, "/api/cari", map[string]any{"adi_soyadi": "Beta Market", "tc_kimlik_no": "12345678901"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	party := decode[core.Party](t, rec).Data

	rec = ts.api(http.MethodPost, "/api/cari", map[string]any{"adi_soyadi": "Beta Market"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "party name already registered", decode[any](t, rec).Error)

	rec = ts.api(http.MethodPut, fmt.Sprintf("/api/cari/%d", party.ID), map[string]any{"aciklama": "wholesale"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[core.Party](t, rec).Data
	assert.Equal(t, "Beta Market", updated.Name)
	assert.Equal(t, "wholesale", updated.Note)

	rec = ts.api(http.MethodGet, "/api/cari?adi_soyadi=market", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, *decode[[]core.Party](t, rec).Total)

	rec = ts.api(http.MethodGet, "/api/cari/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.api(http.MethodDelete, fmt.Sprintf("/api/cari/%d", party.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEntityAPI_DeleteInUse(t *testing.T) {
	ts := newTestServer(t)
	unitID, partyID, productID := ts.seed()

	rec := ts.api(http.MethodPost, "/api/fatura", invoiceBody(partyID, productID, unitID, ""))
	require.Equal(t, http.StatusCreated, rec.Code)

	for _, path := range []string{
		fmt.Sprintf("/api/cari/%d", partyID),
		fmt.Sprintf("/api/urun/%d", productID),
		fmt.Sprintf("/api/birim/%d", unitID),
	} {
		rec := ts.api(http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Equal(t, "CONFLICT", decode[any](t, rec).Code, path)
	}
}

func TestProductAndUnitAPI(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.api(http.MethodPost, "/api/birim", map[string]any{"kisa_adi": "kg", "adi": "Kilogram"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	unit := decode[core.Unit](t, rec).Data
	assert.Equal(t, "1", unit.KgFactor.String())

	rec = ts.api(http.MethodPost, "/api/urun", map[string]any{"adi": "Flour", "birim_id": unit.ID, "kdv": 1, "barkod": "869"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	product := decode[core.Product](t, rec).Data
	assert.Equal(t, "Kilogram", product.UnitName)

	rec = ts.api(http.MethodPut, fmt.Sprintf("/api/urun/%d", product.ID), map[string]any{"kdv": 8})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 8, decode[core.Product](t, rec).Data.VATRate)

	rec = ts.api(http.MethodGet, "/api/urun?barkod=86", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, *decode[[]core.Product](t, rec).Total)

	rec = ts.api(http.MethodPut, fmt.Sprintf("/api/birim/%d", unit.ID), map[string]any{"kg_karsiligi": "0"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.api(http.MethodGet, fmt.Sprintf("/api/birim/%d", unit.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Kilogram", decode[core.Unit](t, rec).Data.Name)
}

func TestRequestBodyLimit(t *testing.T) {
	ts := newTestServer(t)

	body := `{"adi_soyadi": "` + strings.Repeat("a", 1<<20) + `"}`
	rec := ts.api(http.MethodPost, "/api/cari", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestMalformedJSON_FixedMessage(t *testing.T) {
	ts := newTestServer(t)
	observed, logs := observer.New(zapcore.DebugLevel)
	h := web.NewHandler(ts.svc, web.Options{JWTSecret: testSecret, Logger: zap.New(observed)})

	for _, body := range []string{`{"username": 5}`, `{"username": "admin"`, `not json`} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		resp := decode[any](t, rec)
		assert.Equal(t, "invalid JSON body", resp.Error, body)
		assert.Equal(t, "BAD_REQUEST", resp.Code)
	}

	entries := logs.FilterMessage("invalid JSON body").All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Contains(t, entries[0].ContextMap(), "error")

	rec := ts.api(http.MethodPost, "/api/fatura", `{"fatura_tarihi": "01.01.2024"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotContains(t, rec.Body.String(), "parsing time")
}

func TestRequestID(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/fatura", nil)
	req.Header.Set("X-Request-ID", "trace-42")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	assert.Equal(t, "trace-42", rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "trace-42", decode[any](t, rec).RequestID)

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "bad id with spaces")
	rec = httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	assert.Len(t, rec.Header().Get("X-Request-ID"), 36)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	unitID, partyID, productID := ts.seed()

	ts.do(http.MethodGet, "/api/health", nil, "")
	ts.api(http.MethodPost, "/api/fatura", invoiceBody(partyID, productID, unitID, ""))

	rec := ts.do(http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `route="/api/health"`)
	assert.Contains(t, body, `invoice_operations_total{operation="create",result="ok"} 1`)
}

// ── Pages ─────────────────────────────────────────────────────────────────────

func (ts *testServer) browser(method, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	ts.t.Helper()
	var r io.Reader
	if form != nil {
		r = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, r)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) browserLogin() *http.Cookie {
	ts.t.Helper()
	rec := ts.browser(http.MethodPost, "/login", url.Values{"username": {"admin"}, "password": {"password1"}}, nil)
	require.Equal(ts.t, http.StatusSeeOther, rec.Code)
	for _, c := range rec.Result().Cookies() {
		if c.Name == "auth_token" {
			return c
		}
	}
	ts.t.Fatal("login did not set auth_token")
	return nil
}

func TestPages_RedirectWithoutCookie(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.browser(http.MethodGet, "/faturalar", nil, nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = ts.browser(http.MethodGet, "/", nil, &http.Cookie{Name: "auth_token", Value: "garbage"})
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	rec = ts.browser(http.MethodGet, "/login", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="password"`)

	rec = ts.browser(http.MethodPost, "/login", url.Values{"username": {"admin"}, "password": {"bad"}}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPages_InvoiceFlow(t *testing.T) {
	ts := newTestServer(t)
	unitID, partyID, productID := ts.seed()
	rec := ts.api(http.MethodPost, "/api/fatura", invoiceBody(partyID, productID, unitID, ""))
	require.Equal(t, http.StatusCreated, rec.Code)
	inv := decode[core.Invoice](t, rec).Data
	cookie := ts.browserLogin()

	rec = ts.browser(http.MethodGet, "/", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "FTR202401010001")

	rec = ts.browser(http.MethodGet, "/faturalar?cari_adi=acme", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "275.00")

	rec = ts.browser(http.MethodGet, "/faturalar?baslangic_tarihi=yesterday", nil, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.browser(http.MethodGet, fmt.Sprintf("/faturalar/%d", inv.ID), nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Widget")

	rec = ts.browser(http.MethodPost, fmt.Sprintf("/faturalar/%d/sil", inv.ID), url.Values{}, cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/faturalar?durum=silindi", rec.Header().Get("Location"))
	assert.Zero(t, ts.store.InvoiceCount())

	rec = ts.browser(http.MethodGet, fmt.Sprintf("/faturalar/%d", inv.ID), nil, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPages_CreateForms(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.browserLogin()

	rec := ts.browser(http.MethodPost, "/birimler/yeni", url.Values{"kisa_adi": {"kg"}, "adi": {"Kilogram"}, "kg_karsiligi": {"1,5"}}, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	units, err := ts.svc.ListUnits(context.Background(), core.UnitFilter{})
	require.NoError(t, err)
	require.Len(t, units.Units, 1)
	assert.Equal(t, "1.5", units.Units[0].KgFactor.String())

	rec = ts.browser(http.MethodPost, "/urunler/yeni", url.Values{
		"adi": {"Flour"}, "birim_id": {fmt.Sprint(units.Units[0].ID)}, "kdv": {"8"},
	}, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = ts.browser(http.MethodPost, "/cariler/yeni", url.Values{"adi_soyadi": {"Acme"}}, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	rec = ts.browser(http.MethodPost, "/cariler/yeni", url.Values{"adi_soyadi": {"Acme"}}, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "party name already registered")

	rec = ts.browser(http.MethodGet, "/urunler", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Flour")
}
