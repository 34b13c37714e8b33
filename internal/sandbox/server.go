package sandbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/servio/internal/contract"
	"github.com/alexanderramin/servio/internal/domain"
	"github.com/alexanderramin/servio/internal/transport"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	paymentSummaryPath = "/payments/gig-payment-summary/%d/"
	collaborationsPath = "/collaboration/all-collaborations/"
	opportunitiesPath  = "/collaboration/opportunities/all/"
)

type Server struct {
	store     *Store
	csrfToken string
	now       func() time.Time
	logger    *slog.Logger
}

type Option func(*Server)

// WithCSRFToken makes every POST carry the token in the X-CSRFToken header.
func WithCSRFToken(token string) Option {
	return func(s *Server) { s.csrfToken = token }
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewRouter builds the gin engine serving store.
func NewRouter(store *Store, opts ...Option) *gin.Engine {
	s := &Server{store: store, now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	useJSONFieldNames()

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLog())

	r.GET(contract.TaxonomyPath, s.handleTaxonomy)

	posts := r.Group("/collaboration", s.requireCSRF())
	posts.POST(strings.TrimPrefix(contract.CreateGigPath, "/collaboration"), s.handleCreateGig)
	posts.POST("/modify/:slug/", s.handleUpdateGig)
	posts.POST("/opportunities/accept-offer/:slug/", s.handleAcceptOffer)
	return r
}

func (s *Server) handleTaxonomy(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Taxonomy())
}

func (s *Server) handleCreateGig(c *gin.Context) {
	var req contract.GigSubmission
	if !bindJSON(c, &req) {
		return
	}
	if fields := s.gigRules(req.Payload, true); len(fields) > 0 {
		validationFailed(c, fields)
		return
	}
	g, err := s.store.CreateGig(req.Action, req.Payload)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gigReply(req.Action, g))
}

func (s *Server) handleUpdateGig(c *gin.Context) {
	var req contract.GigSubmission
	if !bindJSON(c, &req) {
		return
	}
	if fields := s.gigRules(req.Payload, false); len(fields) > 0 {
		validationFailed(c, fields)
		return
	}
	g, err := s.store.UpdateGig(c.Param("slug"), req.Action, req.Payload)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gigReply(req.Action, g))
}

func (s *Server) handleAcceptOffer(c *gin.Context) {
	var req contract.ProposalSubmission
	if !bindJSON(c, &req) {
		return
	}
	if err := s.store.AddProposal(c.Param("slug"), req); err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract.Reply{
		Message: "Your proposal has been sent.",
		URL:     opportunitiesPath,
	})
}

// gigRules are the checks the server schema runs across fields. The start
// date rule only applies to new gigs.
func (s *Server) gigRules(p contract.GigPayload, creating bool) map[string]string {
	fields := make(map[string]string)
	start, startErr := time.Parse(domain.DateLayout, p.StartDate)
	end, endErr := time.Parse(domain.DateLayout, p.EndDate)
	if startErr == nil && endErr == nil && !end.After(start) {
		fields["payload.endDate"] = "endDate must be greater than startDate"
	}
	if creating && startErr == nil && start.Before(domain.StartOfDay(s.now().UTC())) {
		fields["payload.startDate"] = "startDate cannot be in the past"
	}
	var total float64
	for _, r := range p.Roles {
		total += r.Budget
	}
	if total > p.ProjectBudget {
		fields["payload.roles"] = "Sum of role budgets exceeds projectBudget"
	}
	return fields
}

func gigReply(action contract.Action, g Gig) contract.Reply {
	if action == contract.ActionPublish {
		return contract.Reply{
			Message: "All set! Your gig/project is published, next step is payment.",
			URL:     fmt.Sprintf(paymentSummaryPath, g.ID),
		}
	}
	noRedirect := false
	return contract.Reply{
		Message:  "Your gig has been saved as a draft, you can publish it later.",
		URL:      collaborationsPath,
		Redirect: &noRedirect,
	}
}

func (s *Server) storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrGigNotFound):
		c.JSON(http.StatusNotFound, errorBody{Error: "Not Found", Message: err.Error()})
	case errors.Is(err, ErrGigNotOpen):
		c.JSON(http.StatusConflict, errorBody{Error: "Gig Unavailable", Message: err.Error()})
	case errors.Is(err, ErrUnknownNiche):
		c.JSON(http.StatusBadRequest, errorBody{Error: "Data Conflict Error", Message: "One or more selected categories are invalid or no longer available."})
	case errors.Is(err, ErrRoleNotInGig):
		c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid Application", Message: err.Error()})
	default:
		s.logger.Error("sandbox store failed", "err", err)
		c.JSON(http.StatusInternalServerError, errorBody{Error: "Server Error", Message: err.Error()})
	}
}

func (s *Server) requireCSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.csrfToken != "" && c.GetHeader(transport.CSRFHeader) != s.csrfToken {
			c.AbortWithStatusJSON(http.StatusForbidden, errorBody{
				Error:   "CSRF Failed",
				Message: "CSRF token missing or incorrect.",
			})
			return
		}
		c.Next()
	}
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("sandbox_request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}

// Serve runs handler on addr until ctx is cancelled, then shuts down
// within three seconds.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	logger.Info("sandbox listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("sandbox shutdown: %w", err)
	}
	logger.Info("sandbox stopped")
	return nil
}

type errorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func validationFailed(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, errorBody{
		Error:   "Validation error",
		Message: "Some required information is missing or invalid.",
		Fields:  fields,
	})
}

// bindJSON decodes and validates the body into obj, writing the 400 reply
// itself when that fails.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var (
		verrs     validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)
	switch {
	case errors.As(err, &verrs):
		validationFailed(c, fieldMessages(verrs))
	case errors.As(err, &typeErr):
		validationFailed(c, map[string]string{typeErr.Field: fmt.Sprintf("Expected %s.", typeErr.Type)})
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		c.JSON(http.StatusBadRequest, errorBody{
			Error:   "Invalid JSON payload",
			Message: "Request body should be a valid JSON data, check and try again.",
		})
	default:
		c.JSON(http.StatusBadRequest, errorBody{Error: "Bad Request", Message: err.Error()})
	}
	return false
}

func fieldMessages(verrs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		ns := fe.Namespace()
		if i := strings.IndexByte(ns, '.'); i >= 0 {
			ns = ns[i+1:]
		}
		fields[ns] = tagMessage(fe)
	}
	return fields
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "gt":
		return fmt.Sprintf("Must be greater than %s.", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be at least %s.", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Must contain at least %s item(s).", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", fe.Param())
	case "datetime":
		return "Must be a date in YYYY-MM-DD format."
	default:
		return fmt.Sprintf("Failed the %s rule.", fe.Tag())
	}
}

var jsonNamesOnce sync.Once

// useJSONFieldNames makes validation errors report wire field names.
func useJSONFieldNames() {
	jsonNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}
