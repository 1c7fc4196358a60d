package web

import (
	"encoding/json"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"accounting-backend/internal/app"
	"accounting-backend/internal/metrics"
	webui "accounting-backend/web"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	maxBodyBytes    = 1 << 20 // 1 MB
	defaultTokenTTL = time.Hour
)

// Options configures the HTTP adapter.
type Options struct {
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins []string
	SecureCookies  bool
	Logger         *zap.Logger
	Metrics        *metrics.Metrics // nil disables /metrics and request instrumentation
}

// Handler holds the ApplicationService and the parsed page templates.
type Handler struct {
	svc           app.ApplicationService
	jwtSecret     []byte
	tokenTTL      time.Duration
	secureCookies bool
	log           *zap.Logger
	pages         map[string]*template.Template
	fileServer    http.Handler
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, opts Options) http.Handler {
	staticFS, err := fs.Sub(webui.Static, "static")
	if err != nil {
		panic("web/static embed sub-FS failed: " + err.Error())
	}
	pages, err := parsePages()
	if err != nil {
		panic("web/templates parse failed: " + err.Error())
	}

	h := &Handler{
		svc:           svc,
		jwtSecret:     []byte(opts.JWTSecret),
		tokenTTL:      opts.TokenTTL,
		secureCookies: opts.SecureCookies,
		log:           opts.Logger,
		pages:         pages,
		fileServer:    http.FileServer(http.FS(staticFS)),
	}
	if h.tokenTTL <= 0 {
		h.tokenTTL = defaultTokenTTL
	}
	if h.log == nil {
		h.log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(h.log))
	r.Use(Recoverer(h.log))
	r.Use(CORS(opts.AllowedOrigins))
	if opts.Metrics != nil {
		r.Use(Metrics(opts.Metrics))
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	// ── Public ───────────────────────────────────────────────────────────────
	r.Get("/api/health", h.health)
	r.Get("/static/*", func(w http.ResponseWriter, req *http.Request) {
		http.StripPrefix("/static", h.fileServer).ServeHTTP(w, req)
	})

	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(maxBodyBytes))

		r.Post("/api/auth/login", h.login)
		r.Get("/login", h.loginPage)
		r.Post("/login", h.loginFormSubmit)
		r.Post("/logout", h.logoutPage)

		// ── Protected API routes (401 JSON when unauthenticated) ────────────
		r.Group(func(r chi.Router) {
			r.Use(h.RequireAuth)

			r.Get("/api/auth/me", h.me)

			r.Route("/api/fatura", func(r chi.Router) {
				r.Get("/", h.apiListInvoices)
				r.Post("/", h.apiCreateInvoice)
				r.Post("/hesapla", h.apiPreviewLine)
				r.Get("/{id}", h.apiGetInvoice)
				r.Delete("/{id}", h.apiDeleteInvoice)
			})
			r.Route("/api/cari", func(r chi.Router) {
				r.Get("/", h.apiListParties)
				r.Post("/", h.apiCreateParty)
				r.Get("/{id}", h.apiGetParty)
				r.Put("/{id}", h.apiUpdateParty)
				r.Delete("/{id}", h.apiDeleteParty)
			})
			r.Route("/api/urun", func(r chi.Router) {
				r.Get("/", h.apiListProducts)
				r.Post("/", h.apiCreateProduct)
				r.Get("/{id}", h.apiGetProduct)
				r.Put("/{id}", h.apiUpdateProduct)
				r.Delete("/{id}", h.apiDeleteProduct)
			})
			r.Route("/api/birim", func(r chi.Router) {
				r.Get("/", h.apiListUnits)
				r.Post("/", h.apiCreateUnit)
				r.Get("/{id}", h.apiGetUnit)
				r.Put("/{id}", h.apiUpdateUnit)
				r.Delete("/{id}", h.apiDeleteUnit)
			})
		})

		// ── Protected browser routes (redirect to /login) ───────────────────
		r.Group(func(r chi.Router) {
			r.Use(h.RequireAuthBrowser)

			r.Get("/", h.dashboardPage)
			r.Get("/faturalar", h.invoicesPage)
			r.Get("/faturalar/{id}", h.invoicePage)
			r.Post("/faturalar/{id}/sil", h.invoiceDeleteAction)
			r.Get("/cariler", h.partiesPage)
			r.Post("/cariler/yeni", h.partyCreateAction)
			r.Get("/urunler", h.productsPage)
			r.Post("/urunler/yeni", h.productCreateAction)
			r.Get("/birimler", h.unitsPage)
			r.Post("/birimler/yeni", h.unitCreateAction)
		})
	})

	return r
}

// health reports whether the service can reach its database.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Ping(r.Context()); err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"status": "ok"}, "")
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors. Decoder
// details are logged, never returned.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		h.log.Debug("invalid JSON body",
			zap.String("path", r.URL.Path), zap.String("request_id", requestIDFromContext(r.Context())), zap.Error(err))
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}

// idParam parses the {id} URL parameter, writing a 400 when it is not a positive integer.
func idParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, r, "invalid id", "VALIDATION_ERROR", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
