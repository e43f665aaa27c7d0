package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/go-trip-booking/internal/application/trip"
	"github.com/go-trip-booking/internal/domain"
	"github.com/go-trip-booking/internal/pkg/validate"
	"github.com/go-trip-booking/internal/transport/http/middleware"
)

// downloadURLTTL bounds how long a presigned image link stays valid.
const downloadURLTTL = 15 * time.Minute

// TripHandler exposes the trip catalogue and booking operations.
type TripHandler struct {
	svc trip.Service
}

func NewTripHandler(svc trip.Service) *TripHandler {
	return &TripHandler{svc: svc}
}

// List handles GET /trips. Query parameters (location, start_date, end_date,
// max_price, sort) narrow the result; without any it returns the full
// catalogue.
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	trips, err := h.svc.Search(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newTripListEnvelope(trips))
}

func filterFromQuery(r *http.Request) (domain.TripFilter, error) {
	q := r.URL.Query()
	filter := domain.TripFilter{Location: q.Get("location")}
	if v := q.Get("start_date"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return domain.TripFilter{}, fmt.Errorf("start_date must be in YYYY-MM-DD format: %w", domain.ErrBadRequest)
		}
		filter.StartDate = &t
	}
	if v := q.Get("end_date"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return domain.TripFilter{}, fmt.Errorf("end_date must be in YYYY-MM-DD format: %w", domain.ErrBadRequest)
		}
		filter.EndDate = &t
	}
	if v := q.Get("max_price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return domain.TripFilter{}, fmt.Errorf("max_price must be a number: %w", domain.ErrBadRequest)
		}
		filter.MaxPrice = &p
	}
	if v := q.Get("sort"); v != "" {
		order, ok := domain.ParseSortOrder(v)
		if !ok {
			return domain.TripFilter{}, fmt.Errorf("unknown sort order %q: %w", v, domain.ErrBadRequest)
		}
		filter.SortBy = order
	}
	return filter, nil
}

func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newTripDTO(t))
}

func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req trip.CreateTripRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	t, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newTripDTO(t))
}

func (h *TripHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req trip.UpdateTripRequest
	if !decodeBody(w, r, &req) {
		return
	}
	t, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newTripDTO(t))
}

func (h *TripHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "trip deleted"})
}

func (h *TripHandler) Publish(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Publish(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newTripDTO(t))
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h *TripHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req cancelRequest
	if !decodeBody(w, r, &req) {
		return
	}
	t, err := h.svc.Cancel(r.Context(), chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newTripDTO(t))
}

func (h *TripHandler) Complete(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Complete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newTripDTO(t))
}

// Book reserves a spot for the authenticated user.
func (h *TripHandler) Book(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	t, err := h.svc.Book(r.Context(), chi.URLParam(r, "id"), user.ID().String())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newTripDTO(t))
}

// CancelBooking releases the authenticated user's spot.
func (h *TripHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	t, err := h.svc.CancelBooking(r.Context(), chi.URLParam(r, "id"), user.ID().String())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newTripDTO(t))
}

// Popular handles GET /trips/popular?limit=N.
func (h *TripHandler) Popular(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	locations, err := h.svc.PopularDestinations(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]LocationDTO, len(locations))
	for i, l := range locations {
		out[i] = newLocationDTO(l)
	}
	writeJSON(w, http.StatusOK, out)
}

// UploadImage handles multipart POST /trips/{id}/image.
func (h *TripHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	// 10 MB in-memory limit before spilling to disk.
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "malformed multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	t, err := h.svc.AttachImage(r.Context(), chi.URLParam(r, "id"), header.Filename, contentType, file)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newTripDTO(t))
}

type imageURLResponse struct {
	URL       string `json:"url"`
	ExpiresIn string `json:"expires_in,omitempty"`
}

// ImageURL resolves the trip image to a client-fetchable URL.
func (h *TripHandler) ImageURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.svc.ImageDownloadURL(r.Context(), chi.URLParam(r, "id"), downloadURLTTL)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, imageURLResponse{URL: url, ExpiresIn: downloadURLTTL.String()})
}
