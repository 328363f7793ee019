package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/letterpack/letterpack/internal/config"
	"github.com/letterpack/letterpack/internal/csvimport"
	"github.com/letterpack/letterpack/internal/logger"
	"github.com/letterpack/letterpack/internal/model"
	"github.com/letterpack/letterpack/internal/storage"
	"github.com/letterpack/letterpack/pkg/api"
)

// LabelForm is the single-label form submission
type LabelForm struct {
	ToPostal      string `form:"to_postal" binding:"required,max=16"`
	ToAddress1    string `form:"to_address1" binding:"required"`
	ToAddress2    string `form:"to_address2"`
	ToAddress3    string `form:"to_address3"`
	ToName        string `form:"to_name" binding:"required"`
	ToPhone       string `form:"to_phone" binding:"max=32"`
	ToHonorific   string `form:"to_honorific"`
	FromPostal    string `form:"from_postal" binding:"required,max=16"`
	FromAddress1  string `form:"from_address1" binding:"required"`
	FromAddress2  string `form:"from_address2"`
	FromAddress3  string `form:"from_address3"`
	FromName      string `form:"from_name" binding:"required"`
	FromPhone     string `form:"from_phone" binding:"max=32"`
	FromHonorific string `form:"from_honorific"`
	Layout        string `form:"layout" binding:"omitempty,oneof=center grid_4up"`
}

// Pair validates the form into a label pair
func (f LabelForm) Pair() (model.LabelPair, error) {
	return model.NewLabelPair(
		model.Address{
			PostalCode: f.ToPostal,
			Address1:   f.ToAddress1,
			Address2:   f.ToAddress2,
			Address3:   f.ToAddress3,
			Name:       f.ToName,
			Phone:      f.ToPhone,
			Honorific:  f.ToHonorific,
		},
		model.Address{
			PostalCode: f.FromPostal,
			Address1:   f.FromAddress1,
			Address2:   f.FromAddress2,
			Address3:   f.FromAddress3,
			Name:       f.FromName,
			Phone:      f.FromPhone,
			Honorific:  f.FromHonorific,
		},
		true,
	)
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	err := s.index.Execute(c.Writer, indexData{DefaultLayout: s.cfg.DefaultLayout})
	if err != nil {
		_ = c.Error(err)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// layoutMode picks the requested mode or the server default
func (s *Server) layoutMode(requested string) string {
	if requested != "" {
		return requested
	}
	if s.cfg.DefaultLayout != "" {
		return s.cfg.DefaultLayout
	}
	return config.ModeCenter
}

func (s *Server) handleLabel(c *gin.Context) {
	var form LabelForm
	if err := c.ShouldBind(&form); err != nil {
		if !handleValidationError(c, err) {
			abortError(c, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
		return
	}
	pair, err := form.Pair()
	if err != nil {
		handleValidationError(c, err)
		return
	}

	mode := s.layoutMode(form.Layout)
	ctx := c.Request.Context()
	data, err := s.gen.WithOption(api.WithLayoutMode(mode)).GenerateBytes(ctx, pair)
	if err != nil {
		s.renderFailed(c, err)
		return
	}
	s.metrics.ObserveRender(mode, 1, 1)
	s.respond(c, data, "label")
}

func (s *Server) handleBatch(c *gin.Context) {
	file, err := c.FormFile("csv")
	if err != nil {
		abortError(c, http.StatusBadRequest, ErrorResponse{
			Error:  "a CSV file is required",
			Fields: []FieldError{{Field: "csv", Message: "This field is required"}},
		})
		return
	}
	if s.cfg.MaxUploadSize > 0 && file.Size > s.cfg.MaxUploadSize {
		abortError(c, http.StatusRequestEntityTooLarge, ErrorResponse{
			Error: fmt.Sprintf("CSV file exceeds %d bytes", s.cfg.MaxUploadSize),
		})
		return
	}
	f, err := file.Open()
	if err != nil {
		s.renderFailed(c, err)
		return
	}
	defer f.Close()

	log := logger.GetGinLogger(c)
	result, err := csvimport.NewParser(csvimport.WithLogger(log)).Parse(f)
	if err != nil {
		abortError(c, http.StatusBadRequest, csvErrorResponse(err))
		return
	}

	data, pages, err := s.gen.WithOption(api.WithLayoutMode(config.ModeGrid4Up)).
		GenerateBatchBytes(c.Request.Context(), result.Pairs)
	if err != nil {
		s.renderFailed(c, err)
		return
	}
	s.metrics.ObserveRender(config.ModeGrid4Up, len(result.Pairs), pages)
	c.Header("X-Label-Count", fmt.Sprint(len(result.Pairs)))
	c.Header("X-Page-Count", fmt.Sprint(pages))
	s.respond(c, data, "labels")
}

func csvErrorResponse(err error) ErrorResponse {
	resp := ErrorResponse{Error: err.Error()}

	var importErr *csvimport.ImportError
	if errors.As(err, &importErr) {
		resp.Error = "CSV file has invalid rows"
		for _, r := range importErr.Rows {
			resp.Rows = append(resp.Rows, RowDetail{Row: r.Row, Side: r.Side, Message: r.Err.Error()})
		}
	}
	var missing *csvimport.MissingColumnsError
	if errors.As(err, &missing) {
		for _, col := range missing.Columns {
			resp.Fields = append(resp.Fields, FieldError{Field: col, Message: "Missing required column"})
		}
	}
	return resp
}

func (s *Server) renderFailed(c *gin.Context, err error) {
	logger.GetGinLogger(c).Error("Rendering failed", zap.Error(err))
	abortError(c, http.StatusInternalServerError, ErrorResponse{Error: "failed to render label"})
}

// respond sends the document as an attachment and archives it
func (s *Server) respond(c *gin.Context, data []byte, name string) {
	contentType, ext := storage.ContentTypePDF, ".pdf"
	if s.gen.Options().Backend == api.BackendRecord {
		contentType, ext = "application/json", ".json"
	}

	if s.sink != nil {
		if loc, err := s.archive(c.Request.Context(), data, contentType, ext); err != nil {
			s.metrics.archiveFailures.Inc()
			logger.GetGinLogger(c).Warn("Archiving document failed", zap.Error(err))
		} else {
			c.Header("X-Archive-Location", loc)
		}
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s%s"`, name, ext))
	c.Data(http.StatusOK, contentType, data)
}

func (s *Server) archive(ctx context.Context, data []byte, contentType, ext string) (string, error) {
	key := storage.NewObjectKey("labels", ext, time.Now())
	return s.sink.Put(ctx, key, contentType, bytes.NewReader(data))
}
