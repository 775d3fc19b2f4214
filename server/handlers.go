package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lvillar/hospreport"
	"github.com/lvillar/hospreport/archive"
	"github.com/lvillar/hospreport/doctpl"
	"github.com/lvillar/hospreport/format"
	"github.com/lvillar/hospreport/labels"
	"github.com/lvillar/hospreport/pageops"
	"github.com/lvillar/hospreport/reports"
	"github.com/lvillar/hospreport/server/respond"
)

func (s *Server) equipmentFromBody(c *gin.Context) {
	var e reports.Equipment
	if !bindJSON(c, &e) {
		return
	}
	s.renderEquipment(c, e)
}

func (s *Server) equipmentByID(c *gin.Context) {
	e, err := s.Source.Equipment(backendContext(c), c.Param("id"))
	if err != nil {
		backendError(c, err)
		return
	}
	s.renderEquipment(c, e)
}

func (s *Server) renderEquipment(c *gin.Context, e reports.Equipment) {
	var buf bytes.Buffer
	out, err := s.Reports.Equipment(&buf, e)
	if err != nil {
		generationError(c, err)
		return
	}
	s.send(c, "equipment", out.Filename, out.ID, buf.Bytes())
}

type batchRequest struct {
	IDs         []int64 `json:"ids"`
	Stamp       string  `json:"stamp,omitempty"`
	PageNumbers bool    `json:"pageNumbers,omitempty"`
}

// equipmentBatch renders one report per equipment and merges them.
func (s *Server) equipmentBatch(c *gin.Context) {
	var req batchRequest
	if !bindJSON(c, &req) {
		return
	}
	if len(req.IDs) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "ids is required", nil)
		return
	}
	if len(req.IDs) > s.maxBatch() {
		respond.Error(c, http.StatusBadRequest, "validation_error",
			fmt.Sprintf("at most %d equipment per batch", s.maxBatch()), nil)
		return
	}

	ctx := backendContext(c)
	docs := make([][]byte, 0, len(req.IDs))
	for _, id := range req.IDs {
		e, err := s.Source.Equipment(ctx, fmt.Sprint(id))
		if err != nil {
			backendError(c, err)
			return
		}
		var buf bytes.Buffer
		if _, err := s.Reports.Equipment(&buf, e); err != nil {
			generationError(c, err)
			return
		}
		docs = append(docs, buf.Bytes())
	}

	var opts pageops.Options
	if strings.TrimSpace(req.Stamp) != "" {
		opts.Stamp = &pageops.Stamp{Text: req.Stamp}
	}
	if req.PageNumbers {
		opts.PageNumbers = &pageops.PageNumberStyle{}
	}
	var merged bytes.Buffer
	if err := pageops.MergeWith(&merged, opts, docs...); err != nil {
		generationError(c, err)
		return
	}
	name := hospreport.Filename("equipamentos", fmt.Sprintf("lote_%d", len(docs)), s.now().In(s.Reports.Formatter.Location))
	s.send(c, "equipment-batch", name, "", merged.Bytes())
}

func (s *Server) trainingFromBody(c *gin.Context) {
	var t reports.Training
	if !bindJSON(c, &t) {
		return
	}
	s.renderTraining(c, t)
}

func (s *Server) trainingByID(c *gin.Context) {
	t, err := s.Source.Training(backendContext(c), c.Param("id"))
	if err != nil {
		backendError(c, err)
		return
	}
	s.renderTraining(c, t)
}

func (s *Server) renderTraining(c *gin.Context, t reports.Training) {
	var buf bytes.Buffer
	out, err := s.Reports.Training(&buf, t)
	if err != nil {
		generationError(c, err)
		return
	}
	s.send(c, "training", out.Filename, out.ID, buf.Bytes())
}

func (s *Server) technician(c *gin.Context) {
	t, err := s.Source.TechnicianOrders(backendContext(c), c.Param("id"))
	if err != nil {
		backendError(c, err)
		return
	}
	data, err := s.Stats.Render(t)
	if err != nil {
		generationError(c, err)
		return
	}
	s.send(c, "technician", s.Stats.Filename(t), "", data)
}

// template renders a doctpl JSON document with the service's institution,
// footer and formatting.
func (s *Server) template(c *gin.Context) {
	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBody))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	tpl, err := doctpl.Decode(data)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	doc, err := tpl.Document(hospreport.A4())
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_document", err.Error(), nil)
		return
	}

	gen := *s.Reports
	gen.Options = append(slices.Clone(gen.Options), hospreport.WithRepeatHeader(tpl.RepeatHeader))
	if tpl.Author != "" {
		gen.Options = append(gen.Options, hospreport.WithAuthor(tpl.Author))
	}
	key := tpl.QR
	if key == "" {
		key = format.Slug(tpl.Title)
	}
	var buf bytes.Buffer
	out, err := gen.Document(&buf, doc, "documento", key)
	if err != nil {
		generationError(c, err)
		return
	}
	s.send(c, "template", out.Filename, out.ID, buf.Bytes())
}

type labelsRequest struct {
	Symbology    string         `json:"symbology,omitempty"`
	Skip         int            `json:"skip,omitempty"`
	Border       bool           `json:"border,omitempty"`
	EquipmentIDs []int64        `json:"equipmentIds,omitempty"`
	Labels       []labels.Label `json:"labels,omitempty"`
}

// labels prints label sheets for backend equipment and explicit labels.
func (s *Server) labels(c *gin.Context) {
	var req labelsRequest
	if !bindJSON(c, &req) {
		return
	}
	symbology, err := labels.ParseSymbology(req.Symbology)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	if n := len(req.EquipmentIDs) + len(req.Labels); n == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "no labels requested", nil)
		return
	} else if len(req.EquipmentIDs) > s.maxBatch() {
		respond.Error(c, http.StatusBadRequest, "validation_error",
			fmt.Sprintf("at most %d equipment per batch", s.maxBatch()), nil)
		return
	}

	ctx := backendContext(c)
	all := make([]labels.Label, 0, len(req.EquipmentIDs)+len(req.Labels))
	for _, id := range req.EquipmentIDs {
		e, err := s.Source.Equipment(ctx, fmt.Sprint(id))
		if err != nil {
			backendError(c, err)
			return
		}
		all = append(all, labels.FromEquipment(e))
	}
	all = append(all, req.Labels...)

	var buf bytes.Buffer
	if _, err := labels.Render(&buf, all,
		labels.WithSymbology(symbology),
		labels.WithSkip(req.Skip),
		labels.WithBorder(req.Border),
	); err != nil {
		if errors.Is(err, labels.ErrNoCode) || errors.Is(err, labels.ErrUnencodable) {
			respond.Error(c, http.StatusBadRequest, "invalid_labels", err.Error(), nil)
			return
		}
		generationError(c, err)
		return
	}
	name := hospreport.Filename("etiquetas", fmt.Sprintf("%d", len(all)), s.now().In(s.Reports.Formatter.Location))
	s.send(c, "labels", name, "", buf.Bytes())
}

// archived streams a previously generated report back by its archive key.
func (s *Server) archived(c *gin.Context) {
	if s.Archive == nil {
		respond.Error(c, http.StatusNotFound, "not_found", "report archive is disabled", nil)
		return
	}
	key := strings.TrimPrefix(c.Param("key"), "/")
	rc, err := s.Archive.Open(c.Request.Context(), key)
	switch {
	case errors.Is(err, archive.ErrInvalidKey):
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid archive key", nil)
		return
	case errors.Is(err, archive.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "archived report not found", nil)
		return
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "archive_error", "could not read the archived report", nil)
		return
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "archive_error", "could not read the archived report", nil)
		return
	}
	respond.PDF(c, path.Base(key), data)
}
