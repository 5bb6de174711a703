package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/segmentio/ksuid"

	"github.com/mhoffman/tagdir/pkg/catalog"
	"github.com/mhoffman/tagdir/pkg/codec"
	"github.com/mhoffman/tagdir/pkg/exif"
	"github.com/mhoffman/tagdir/pkg/log"
)

// Server holds the API server state
type Server struct {
	catalog Cataloger
	config  ServerConfig
	metrics *Metrics
	logger  *log.Logger
}

// NewServer creates a new API server
func NewServer(cat Cataloger, config ServerConfig, metrics *Metrics, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.Options{Name: "api"})
	}
	return &Server{
		catalog: cat,
		config:  config,
		metrics: metrics,
		logger:  logger,
	}
}

// handleHealth reports service health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.metrics != nil {
		s.metrics.RecordHealthCheck(true)
	}
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleCreateImage ingests an encoded tag directory and creates a catalog
// entry for it. An optional "tags" query parameter (comma-separated tag
// identifiers) restricts ingestion to the given allow set.
func (s *Server) handleCreateImage(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.recordOp("create", false, start)
		sendError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	raws, err := codec.DecodeDirectory(body)
	if err != nil {
		s.recordOp("create", false, start)
		sendError(w, fmt.Sprintf("Invalid directory blob: %v", err), http.StatusBadRequest)
		return
	}

	var coll *exif.Collection
	if filter := r.URL.Query().Get("tags"); filter != "" {
		allow, err := parseTagList(filter)
		if err != nil {
			s.recordOp("create", false, start)
			sendError(w, fmt.Sprintf("Invalid tag filter: %v", err), http.StatusBadRequest)
			return
		}
		coll = exif.FromRawFiltered(raws, allow, exif.DefaultRegistry())
	} else {
		coll = exif.FromRaw(raws)
	}

	id, err := s.catalog.Create(coll.RawRecords())
	if err != nil {
		s.recordOp("create", false, start)
		sendError(w, fmt.Sprintf("Failed to store directory: %v", err), http.StatusInternalServerError)
		return
	}

	s.recordOp("create", true, start)
	s.logger.Info("created image %s with %d tags", id, coll.Len())
	sendSuccess(w, map[string]interface{}{"id": id.String(), "tags": coll.Len()})
}

// handleListTags returns all records of an image in ascending tag order.
func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	coll, ok := s.loadCollection(w, r, "list")
	if !ok {
		return
	}

	tags := make([]TagResponse, 0, coll.Len())
	it := coll.Iter()
	for it.Next() {
		tags = append(tags, toTagResponse(it.Record()))
	}

	s.recordOp("list", true, start)
	sendSuccess(w, tags)
}

// handleGetTag returns a single record. Missing tags report 404 rather than
// materializing a default; default materialization is an in-process
// collection behavior, not a remote read behavior.
func (s *Server) handleGetTag(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	tag, ok := s.parseTag(w, r, "get")
	if !ok {
		return
	}
	coll, ok := s.loadCollection(w, r, "get")
	if !ok {
		return
	}

	rec, ok := coll.TryGet(tag)
	if !ok {
		s.recordOp("get", false, start)
		sendError(w, fmt.Sprintf("Tag %d not present", tag), http.StatusNotFound)
		return
	}

	s.recordOp("get", true, start)
	sendSuccess(w, toTagResponse(rec))
}

// handlePutTag sets a tag value. A request with a null value removes the
// tag, mirroring the collection's Add policy.
func (s *Server) handlePutTag(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	tag, ok := s.parseTag(w, r, "put")
	if !ok {
		return
	}
	id, ok := s.parseID(w, r, "put")
	if !ok {
		return
	}
	coll, ok := s.loadCollection(w, r, "put")
	if !ok {
		return
	}

	var req SetTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.recordOp("put", false, start)
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}

	typ := exif.DataType(req.Type)
	if req.Type == 0 {
		typ = exif.DefaultRegistry().TypeOf(tag)
	}
	coll.Add(&exif.Record{Tag: tag, Type: typ, Value: req.Value})

	if err := s.catalog.Put(id, coll.RawRecords()); err != nil {
		s.recordOp("put", false, start)
		sendError(w, fmt.Sprintf("Failed to store directory: %v", err), http.StatusInternalServerError)
		return
	}

	s.recordOp("put", true, start)
	sendSuccess(w, map[string]interface{}{"tag": tag, "present": coll.ContainsTag(tag)})
}

// handleDeleteTag removes a tag from an image.
func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	tag, ok := s.parseTag(w, r, "delete")
	if !ok {
		return
	}
	id, ok := s.parseID(w, r, "delete")
	if !ok {
		return
	}
	coll, ok := s.loadCollection(w, r, "delete")
	if !ok {
		return
	}

	removed := coll.RemoveTag(tag)
	if removed {
		if err := s.catalog.Put(id, coll.RawRecords()); err != nil {
			s.recordOp("delete", false, start)
			sendError(w, fmt.Sprintf("Failed to store directory: %v", err), http.StatusInternalServerError)
			return
		}
	}

	s.recordOp("delete", true, start)
	sendSuccess(w, map[string]interface{}{"tag": tag, "removed": removed})
}

// handleExportImage returns the encoded directory blob of an image.
func (s *Server) handleExportImage(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	coll, ok := s.loadCollection(w, r, "export")
	if !ok {
		return
	}

	data, err := codec.EncodeDirectory(coll.RawRecords())
	if err != nil {
		s.recordOp("export", false, start)
		sendError(w, fmt.Sprintf("Failed to encode directory: %v", err), http.StatusInternalServerError)
		return
	}

	s.recordOp("export", true, start)
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleDeleteImage removes a catalog entry.
func (s *Server) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := s.parseID(w, r, "delete_image")
	if !ok {
		return
	}

	if err := s.catalog.Delete(id); err != nil {
		s.recordOp("delete_image", false, start)
		sendError(w, fmt.Sprintf("Failed to delete image: %v", err), http.StatusInternalServerError)
		return
	}

	s.recordOp("delete_image", true, start)
	sendSuccess(w, map[string]string{"id": id.String()})
}

// handleListImages returns the ids of all catalog entries.
func (s *Server) handleListImages(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ids, err := s.catalog.List()
	if err != nil {
		s.recordOp("list_images", false, start)
		sendError(w, fmt.Sprintf("Failed to list images: %v", err), http.StatusInternalServerError)
		return
	}

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}

	s.recordOp("list_images", true, start)
	sendSuccess(w, out)
}

// loadCollection resolves the {id} URL parameter and loads the image's
// records into a collection.
func (s *Server) loadCollection(w http.ResponseWriter, r *http.Request, op string) (*exif.Collection, bool) {
	id, ok := s.parseID(w, r, op)
	if !ok {
		return nil, false
	}

	raws, err := s.catalog.Get(id)
	if err != nil {
		if err == catalog.ErrNotFound {
			sendError(w, fmt.Sprintf("Image %s not found", id), http.StatusNotFound)
		} else {
			sendError(w, fmt.Sprintf("Failed to load image: %v", err), http.StatusInternalServerError)
		}
		return nil, false
	}
	return exif.FromRaw(raws), true
}

func (s *Server) parseID(w http.ResponseWriter, r *http.Request, op string) (ksuid.KSUID, bool) {
	id, err := ksuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		sendError(w, "Invalid image id", http.StatusBadRequest)
		return ksuid.Nil, false
	}
	return id, true
}

func (s *Server) parseTag(w http.ResponseWriter, r *http.Request, op string) (uint16, bool) {
	tag, err := strconv.ParseUint(chi.URLParam(r, "tag"), 10, 16)
	if err != nil {
		sendError(w, "Invalid tag identifier", http.StatusBadRequest)
		return 0, false
	}
	return uint16(tag), true
}

func (s *Server) recordOp(op string, success bool, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordCatalogOperation(op, success, time.Since(start))
	}
}

// parseTagList parses a comma-separated tag identifier list into a TagSet.
func parseTagList(list string) (*exif.TagSet, error) {
	allow := exif.NewTagSet()
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tag, err := strconv.ParseUint(part, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("bad tag %q: %w", part, err)
		}
		allow.Put(uint16(tag))
	}
	return allow, nil
}

func toTagResponse(rec *exif.Record) TagResponse {
	return TagResponse{
		Tag:   rec.Tag,
		Type:  rec.Type.String(),
		Count: rec.Count(),
		Value: rec.Value,
	}
}

// startMetricsUpdater periodically refreshes the catalog entry gauge.
func (s *Server) startMetricsUpdater() {
	if s.metrics == nil {
		return
	}
	for {
		if ids, err := s.catalog.List(); err == nil {
			s.metrics.UpdateCatalogStats(len(ids))
		}
		time.Sleep(30 * time.Second)
	}
}
