package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/alexiusacademia/gowbeam/internal/aisc"
	"github.com/alexiusacademia/gowbeam/internal/buckling"
	"github.com/alexiusacademia/gowbeam/internal/catalog"
	"github.com/alexiusacademia/gowbeam/internal/report"
	"github.com/alexiusacademia/gowbeam/internal/section"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

type ctxKey struct{}

// Server exposes the catalog and Lr calculation over HTTP
type Server struct {
	logger  *logrus.Entry
	store   *catalog.Store
	grade   aisc.Grade
	modulus float64
}

// New creates a server. grade is used when a request names none and
// modulus is passed to every Lr calculation.
func New(logger *logrus.Entry, store *catalog.Store, grade aisc.Grade, modulus float64) *Server {
	return &Server{
		logger:  logger,
		store:   store,
		grade:   grade,
		modulus: modulus,
	}
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(s.requestID)

	router.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusOK)
		rw.Write([]byte("OK"))
	}).Methods(http.MethodGet)
	router.HandleFunc("/grades", s.getGrades).Methods(http.MethodGet)
	router.HandleFunc("/shapes/suggest", s.suggestShapes).Methods(http.MethodGet)
	router.HandleFunc("/shapes/{name}", s.getShape).Methods(http.MethodGet)
	router.HandleFunc("/shapes/{name}/lr", s.getLr).Methods(http.MethodGet)

	return router
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		logger := s.logger.WithFields(logrus.Fields{"request_id": id, "method": r.Method, "url": r.URL.String()})
		logger.Debug("handling request")

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, logger)))
	})
}

func (s *Server) log(r *http.Request) *logrus.Entry {
	if l, ok := r.Context().Value(ctxKey{}).(*logrus.Entry); ok {
		return l
	}
	return s.logger
}

type gradesResponse struct {
	Grades  []aisc.Grade `json:"grades"`
	Default string       `json:"default"`
}

func (s *Server) getGrades(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, gradesResponse{Grades: aisc.Grades, Default: s.grade.Name})
}

type suggestResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

func (s *Server) suggestShapes(w http.ResponseWriter, r *http.Request) {
	cat, err := s.store.Catalog()
	if err != nil {
		s.responseError(w, r, "catalog unavailable", err)
		return
	}

	q := r.URL.Query().Get("q")
	writeJSON(w, http.StatusOK, suggestResponse{Query: q, Suggestions: cat.Suggest(q)})
}

type shapeResponse struct {
	Name       string         `json:"name"`
	Catalog    []report.Row   `json:"catalog"`
	Properties []report.Field `json:"properties,omitempty"`
	Error      string         `json:"error,omitempty"`
}

func (s *Server) getShape(w http.ResponseWriter, r *http.Request) {
	cat, shape, ok := s.selectShape(w, r)
	if !ok {
		return
	}

	resp := shapeResponse{
		Name:    shape.Name,
		Catalog: report.ShapeTable(cat.Columns(), shape),
	}

	// A shape that cannot be derived is still worth showing
	props, err := section.Derive(shape)
	if err != nil {
		resp.Error = err.Error()
	} else {
		resp.Properties = report.Properties(props)
	}

	writeJSON(w, http.StatusOK, resp)
}

type lrResponse struct {
	Name  string `json:"name"`
	Grade string `json:"grade"`
	// CustomFy is true when the fy parameter overrode the grade
	CustomFy bool `json:"custom_fy"`
	report.Presentation
}

func (s *Server) getLr(w http.ResponseWriter, r *http.Request) {
	_, shape, ok := s.selectShape(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()

	grade := s.grade
	if name := query.Get("grade"); name != "" {
		g, err := aisc.LookupGrade(name)
		if err != nil {
			s.responseError(w, r, "couldn't select grade", err)
			return
		}
		grade = g
	}

	yield := aisc.Yield{Grade: grade, Custom: query.Has("fy"), CustomFy: query.Get("fy")}
	fy, err := yield.Effective()
	if err != nil {
		s.responseError(w, r, "couldn't determine Fy", err)
		return
	}

	props, err := section.Derive(shape)
	if err != nil {
		s.responseError(w, r, "couldn't derive section properties", err)
		return
	}

	result, err := buckling.ComputeLr(props, fy, s.modulus)
	if err != nil {
		s.responseError(w, r, "couldn't compute Lr", err)
		return
	}

	s.log(r).WithFields(logrus.Fields{"shape": shape.Name, "fy": fy, "lr": result.Lr}).Info("computed Lr")

	writeJSON(w, http.StatusOK, lrResponse{
		Name:         shape.Name,
		Grade:        grade.Name,
		CustomFy:     yield.Custom,
		Presentation: report.Format(result),
	})
}

func (s *Server) selectShape(w http.ResponseWriter, r *http.Request) (*catalog.Catalog, *catalog.Shape, bool) {
	cat, err := s.store.Catalog()
	if err != nil {
		s.responseError(w, r, "catalog unavailable", err)
		return nil, nil, false
	}

	name := mux.Vars(r)["name"]
	shape, err := cat.Select(name)
	if err != nil {
		s.responseError(w, r, "couldn't select shape", err)
		return nil, nil, false
	}
	return cat, shape, true
}

type Response struct {
	Message    string `json:"message,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
}

func (s *Server) responseError(w http.ResponseWriter, r *http.Request, message string, err error) {
	statusCode := statusFor(err)

	entry := s.log(r).WithError(err).WithField("status", statusCode)
	if statusCode >= http.StatusInternalServerError {
		entry.Error(message)
	} else {
		entry.Debug(message)
	}

	writeJSON(w, statusCode, Response{Message: message + ": " + err.Error(), StatusCode: statusCode})
}

func statusFor(err error) int {
	var (
		missing    *section.MissingDimensionError
		domain     *section.DomainError
		yield      *aisc.InvalidYieldStrengthError
		grade      *aisc.UnknownGradeError
		degenerate *buckling.DegenerateSectionError
		modulus    *buckling.InvalidModulusError
	)

	switch {
	case catalog.IsNotFound(err):
		return http.StatusNotFound
	case errors.As(err, &missing), errors.As(err, &domain), errors.As(err, &yield),
		errors.As(err, &grade), errors.As(err, &degenerate):
		return http.StatusUnprocessableEntity
	case errors.As(err, &modulus):
		return http.StatusInternalServerError
	}
	// the catalog is either still loading or failed to load
	return http.StatusServiceUnavailable
}

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}
