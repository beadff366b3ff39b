package http

import (
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"realty-agent/calculator"
	"realty-agent/domain"
	"realty-agent/service"
)

const (
	maxUploadBytes   = 32 << 20
	maxUploadMemory  = 8 << 20
	propertyFormPart = "property"
	imagesFormPart   = "images"
)

type PropertyHandler struct {
	properties *service.PropertyService
	calculator *CalculatorHandler
}

func NewPropertyHandler(properties *service.PropertyService, calculator *CalculatorHandler) *PropertyHandler {
	return &PropertyHandler{properties: properties, calculator: calculator}
}

// List handles GET /properties?type=&status=&featured=&minPrice=&maxPrice=
func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.PropertyFilter{
		Type:   domain.PropertyType(q.Get("type")),
		Status: domain.PropertyStatus(q.Get("status")),
	}
	filter.FeaturedOnly, _ = strconv.ParseBool(q.Get("featured"))

	var err error
	if filter.MinPrice, err = parseOptionalFloat(q.Get("minPrice")); err != nil {
		writeError(w, http.StatusBadRequest, "parámetro minPrice inválido")
		return
	}
	if filter.MaxPrice, err = parseOptionalFloat(q.Get("maxPrice")); err != nil {
		writeError(w, http.StatusBadRequest, "parámetro maxPrice inválido")
		return
	}

	properties, err := h.properties.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, properties)
}

func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.properties.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Roi runs the ROI calculator for a listing, starting from the defaults for
// its price. Any calculator field given in the query string overrides the
// default, e.g. ?monthlyRentalIncome=1500&loanTermYears=15. Other query
// parameters, such as explain or tracking tags, are ignored.
func (h *PropertyHandler) Roi(w http.ResponseWriter, r *http.Request) {
	p, err := h.properties.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	session := calculator.NewRoiSession(service.DefaultRoiInput(p.Price))
	for key, values := range r.URL.Query() {
		if !calculator.Field(key).IsRoi() || len(values) == 0 {
			continue
		}
		value, err := strconv.ParseFloat(values[0], 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "valor inválido para "+key)
			return
		}
		if err := session.Apply(calculator.Field(key), value); err != nil {
			writeServiceError(w, r, err)
			return
		}
	}

	h.calculator.respondRoi(w, r, session.Input())
}

// Create accepts either a JSON property or a multipart form with the
// property JSON in the "property" part and files in "images".
func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, uploads, ok := readPropertyRequest(w, r)
	if !ok {
		return
	}

	created, err := h.properties.Create(r.Context(), p, uploads)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, uploads, ok := readPropertyRequest(w, r)
	if !ok {
		return
	}

	updated, err := h.properties.Update(r.Context(), r.PathValue("id"), p, uploads)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.properties.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func readPropertyRequest(w http.ResponseWriter, r *http.Request) (domain.Property, []domain.Upload, bool) {
	var p domain.Property

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return p, nil, decodeJSON(w, r, &p)
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "formulario inválido")
		return p, nil, false
	}
	defer r.MultipartForm.RemoveAll()

	if err := json.Unmarshal([]byte(r.FormValue(propertyFormPart)), &p); err != nil {
		writeError(w, http.StatusBadRequest, "campo property inválido")
		return p, nil, false
	}

	var uploads []domain.Upload
	for _, fh := range r.MultipartForm.File[imagesFormPart] {
		f, err := fh.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "no se pudo leer "+fh.Filename)
			return p, nil, false
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			writeError(w, http.StatusBadRequest, "no se pudo leer "+fh.Filename)
			return p, nil, false
		}
		uploads = append(uploads, domain.Upload{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return p, uploads, true
}

func parseOptionalFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
