package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/matzehuels/stackscope/pkg/analyzer"
	"github.com/matzehuels/stackscope/pkg/detect"
	apperrors "github.com/matzehuels/stackscope/pkg/errors"
	"github.com/matzehuels/stackscope/pkg/schema"
)

const maxBodyBytes = 1 << 20

// RootMessage is the body of GET /.
const RootMessage = "stackscope API running"

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": RootMessage})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	url, err := requestURL(r)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	res, err := s.svc.Info(r.Context(), url)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	url, err := requestURL(r)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	res, err := s.svc.Languages(r.Context(), url)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// technologiesError is the technologies failure body. It keeps the success
// fields present so clients can render an empty result.
type technologiesError struct {
	apperrors.Body
	Technologies   []string              `json:"technologies"`
	PackageDetails detect.PackageDetails `json:"packageDetails"`
}

func withEmptyTechnologies(b apperrors.Body) any {
	empty := analyzer.EmptyTechnologies()
	return technologiesError{Body: b, Technologies: empty.Technologies, PackageDetails: empty.PackageDetails}
}

func (s *Server) handleTechnologies(w http.ResponseWriter, r *http.Request) {
	url, err := requestURL(r)
	if err != nil {
		s.writeError(w, r, err, withEmptyTechnologies)
		return
	}
	res, err := s.svc.Technologies(r.Context(), url)
	if err != nil {
		s.writeError(w, r, err, withEmptyTechnologies)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

var contentTypes = map[schema.Format]string{
	schema.FormatDOT: "text/vnd.graphviz; charset=utf-8",
	schema.FormatSVG: "image/svg+xml",
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	url, err := requestURL(r)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	format := r.URL.Query().Get("format")
	var f schema.Format
	if format != "" && format != "json" {
		if f, err = schema.ParseFormat(format); err != nil {
			s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err,
				"Unsupported format %q (want json, dot or svg)", format), nil)
			return
		}
	}

	res, err := s.svc.Schema(r.Context(), url)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	if f == "" {
		writeJSON(w, http.StatusOK, res)
		return
	}

	out, err := schema.Render(r.Context(), &res.Graph, f)
	if err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInternal, err, "Failed to render technology schema"), nil)
		return
	}
	w.Header().Set("Content-Type", contentTypes[f])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// requestURL reads the target URL from the url query parameter or, for POST,
// from a JSON body {"url": "..."}.
func requestURL(r *http.Request) (string, error) {
	url := r.URL.Query().Get("url")
	if r.Method == http.MethodPost {
		var err error
		if url, err = bodyURL(r, url); err != nil {
			return "", err
		}
	}
	if strings.TrimSpace(url) == "" {
		return "", errMissingURL
	}
	return url, nil
}

// bodyURL decodes {"url": ...}, falling back to the query value when the body
// is empty or has no url.
func bodyURL(r *http.Request, fallback string) (string, error) {
	var body struct {
		URL string `json:"url"`
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return "", apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "Request body must be JSON with a url field")
	}
	if body.URL == "" {
		return fallback, nil
	}
	return body.URL, nil
}
