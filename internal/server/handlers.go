package server

import (
	"bytes"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/rgehrsitz/fiplan/internal/calculation"
	"github.com/rgehrsitz/fiplan/internal/config"
	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/rgehrsitz/fiplan/internal/output"
	"github.com/rgehrsitz/fiplan/internal/transform"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// ValidationResponse reports the cash flow problems of a parsed configuration
type ValidationResponse struct {
	Valid       bool                `json:"valid"`
	Diagnostics []domain.Diagnostic `json:"diagnostics"`
}

// TemplateResponse describes one scenario template
type TemplateResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

var contentTypes = map[string]string{
	"json":     "application/json",
	"csv":      "text/csv; charset=utf-8",
	"html":     "text/html; charset=utf-8",
	"markdown": "text/markdown; charset=utf-8",
}

// parseBody decodes the request body as YAML when the content type says so, JSON otherwise
func (s *Server) parseBody(ctx *fasthttp.RequestCtx) (*domain.Configuration, error) {
	format := config.FormatJSON
	if bytes.Contains(ctx.Request.Header.ContentType(), []byte("yaml")) {
		format = config.FormatYAML
	}
	return s.Parser.Parse(ctx.PostBody(), format)
}

func (s *Server) handleProjection(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()

	years := calculation.RowsToShow
	if raw := args.Peek("years"); len(raw) > 0 {
		n, err := strconv.Atoi(string(raw))
		if err != nil || n < 1 || n > MaxYears {
			writeError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("years must be an integer between 1 and %d", MaxYears))
			return
		}
		years = n
	}

	format := "json"
	if raw := args.Peek("format"); len(raw) > 0 {
		format = output.NormalizeFormatName(string(raw))
	}
	formatter := output.GetFormatterByName(format)
	if formatter == nil {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("unknown format %q", format))
		return
	}

	cfg, err := s.parseBody(ctx)
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}

	if name := string(args.Peek("template")); name != "" {
		tmpl, ok := s.Templates.Get(name)
		if !ok {
			writeError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("template %s not found", name))
			return
		}
		if cfg, err = transform.ApplyTemplate(cfg, tmpl); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, err.Error())
			return
		}
	}

	projection, err := s.Engine.Project(s.context(), cfg, years)
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}

	body, err := formatter.Format(projection)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}

	contentType, ok := contentTypes[formatter.Name()]
	if !ok {
		contentType = "text/plain; charset=utf-8"
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType(contentType)
	ctx.SetBody(body)
}

func (s *Server) handleValidate(ctx *fasthttp.RequestCtx) {
	cfg, err := s.parseBody(ctx)
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}

	_, _, diagnostics := calculation.ValidateCashFlows(cfg)
	if diagnostics == nil {
		diagnostics = []domain.Diagnostic{}
	}
	writeJSON(ctx, fasthttp.StatusOK, ValidationResponse{
		Valid:       len(diagnostics) == 0,
		Diagnostics: diagnostics,
	})
}

func (s *Server) handleTemplates(ctx *fasthttp.RequestCtx) {
	templates := s.Templates.Templates()
	resp := make([]TemplateResponse, 0, len(templates))
	for _, t := range templates {
		resp = append(resp, TemplateResponse{Name: t.Name, Description: t.Description, Category: t.Category})
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (s *Server) handleListProfiles(ctx *fasthttp.RequestCtx) {
	profiles, err := s.Store.List(s.context())
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, profiles)
}

func (s *Server) handleProfile(ctx *fasthttp.RequestCtx, name string) {
	rctx := s.context()

	switch string(ctx.Method()) {
	case fasthttp.MethodGet:
		cfg, err := s.Store.Load(rctx, name)
		if err != nil {
			writeError(ctx, statusFor(err), err.Error())
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, cfg)
	case fasthttp.MethodPut:
		cfg, err := s.parseBody(ctx)
		if err != nil {
			writeError(ctx, statusFor(err), err.Error())
			return
		}
		if err := s.Store.Save(rctx, name, cfg); err != nil {
			writeError(ctx, statusFor(err), err.Error())
			return
		}
		ctx.SetStatusCode(fasthttp.StatusNoContent)
	case fasthttp.MethodDelete:
		if err := s.Store.Delete(rctx, name); err != nil {
			writeError(ctx, statusFor(err), err.Error())
			return
		}
		ctx.SetStatusCode(fasthttp.StatusNoContent)
	default:
		ctx.Response.Header.Set("Allow", "GET, PUT, DELETE")
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		status = fasthttp.StatusInternalServerError
		data, _ = json.Marshal(ErrorResponse{Status: status, Message: err.Error()})
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(data)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, ErrorResponse{
		Status:  status,
		Message: message,
	})
}
