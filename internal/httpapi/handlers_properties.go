package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"primehavenwebserver/internal/domain"
)

type propertyResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Price        float64   `json:"price"`
	Location     string    `json:"location"`
	Address      string    `json:"address"`
	Size         string    `json:"size"`
	Bedrooms     int       `json:"bedrooms"`
	PropertyType string    `json:"propertyType"`
	Category     string    `json:"category"`
	BuildingType string    `json:"buildingType"`
	Images       []string  `json:"images"`
	Features     []string  `json:"features"`
	Description  string    `json:"description"`
	Featured     bool      `json:"featured"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toPropertyResponse(p domain.Property) propertyResponse {
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	return propertyResponse{
		ID:           p.ID,
		Title:        p.Title,
		Price:        p.Price,
		Location:     p.Location,
		Address:      p.Address,
		Size:         p.Size,
		Bedrooms:     p.Bedrooms,
		PropertyType: p.PropertyType,
		Category:     p.Category,
		BuildingType: p.BuildingType,
		Images:       p.Images,
		Features:     p.Features,
		Description:  p.Description,
		Featured:     p.Featured,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (a *api) handlePropertiesList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.PropertyFilter{
		Category:     strings.TrimSpace(q.Get("category")),
		PropertyType: strings.TrimSpace(q.Get("type")),
	}
	if v := q.Get("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			WriteDomainError(w, domain.NewValidationError(map[string]string{"featured": "must be true or false"}))
			return
		}
		filter.Featured = &featured
	}

	props, err := a.propertiesSvc.List(r.Context(), filter)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	out := make([]propertyResponse, 0, len(props))
	for _, p := range props {
		out = append(out, toPropertyResponse(p))
	}
	WriteJSON(w, http.StatusOK, out)
}

func (a *api) handlePropertyGet(w http.ResponseWriter, r *http.Request) {
	p, err := a.propertiesSvc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toPropertyResponse(p))
}

type propertyRequest struct {
	Title        string   `json:"title"`
	Price        float64  `json:"price"`
	Location     string   `json:"location"`
	Address      string   `json:"address"`
	Size         string   `json:"size"`
	Bedrooms     int      `json:"bedrooms"`
	PropertyType string   `json:"propertyType"`
	Category     string   `json:"category"`
	BuildingType string   `json:"buildingType"`
	Images       []string `json:"images"`
	Features     []string `json:"features"`
	Description  string   `json:"description"`
	Featured     bool     `json:"featured"`
}

func (req *propertyRequest) validate() map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(req.Title) == "" {
		fields["title"] = "required"
	}
	if req.Price < 0 {
		fields["price"] = "must not be negative"
	}
	if strings.TrimSpace(req.Location) == "" {
		fields["location"] = "required"
	}
	if req.Bedrooms < 0 {
		fields["bedrooms"] = "must not be negative"
	}
	return fields
}

func (a *api) handlePropertyCreate(w http.ResponseWriter, r *http.Request) {
	var req propertyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}
	if fields := req.validate(); len(fields) > 0 {
		WriteDomainError(w, domain.NewValidationError(fields))
		return
	}

	p, err := a.propertiesSvc.Create(r.Context(), domain.Property{
		Title:        strings.TrimSpace(req.Title),
		Price:        req.Price,
		Location:     strings.TrimSpace(req.Location),
		Address:      strings.TrimSpace(req.Address),
		Size:         strings.TrimSpace(req.Size),
		Bedrooms:     req.Bedrooms,
		PropertyType: strings.TrimSpace(req.PropertyType),
		Category:     strings.TrimSpace(req.Category),
		BuildingType: strings.TrimSpace(req.BuildingType),
		Images:       req.Images,
		Features:     req.Features,
		Description:  req.Description,
		Featured:     req.Featured,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, toPropertyResponse(p))
}

type propertyPatchRequest struct {
	Title        *string   `json:"title"`
	Price        *float64  `json:"price"`
	Location     *string   `json:"location"`
	Address      *string   `json:"address"`
	Size         *string   `json:"size"`
	Bedrooms     *int      `json:"bedrooms"`
	PropertyType *string   `json:"propertyType"`
	Category     *string   `json:"category"`
	BuildingType *string   `json:"buildingType"`
	Images       *[]string `json:"images"`
	Features     *[]string `json:"features"`
	Description  *string   `json:"description"`
	Featured     *bool     `json:"featured"`
}

func (a *api) handlePropertyUpdate(w http.ResponseWriter, r *http.Request) {
	var req propertyPatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}

	fields := map[string]string{}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		fields["title"] = "must not be empty"
	}
	if req.Price != nil && *req.Price < 0 {
		fields["price"] = "must not be negative"
	}
	if req.Bedrooms != nil && *req.Bedrooms < 0 {
		fields["bedrooms"] = "must not be negative"
	}
	if len(fields) > 0 {
		WriteDomainError(w, domain.NewValidationError(fields))
		return
	}

	p, err := a.propertiesSvc.Update(r.Context(), r.PathValue("id"), domain.PropertyUpdate{
		Title:        req.Title,
		Price:        req.Price,
		Location:     req.Location,
		Address:      req.Address,
		Size:         req.Size,
		Bedrooms:     req.Bedrooms,
		PropertyType: req.PropertyType,
		Category:     req.Category,
		BuildingType: req.BuildingType,
		Images:       req.Images,
		Features:     req.Features,
		Description:  req.Description,
		Featured:     req.Featured,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toPropertyResponse(p))
}

func (a *api) handlePropertyDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.propertiesSvc.Delete(r.Context(), r.PathValue("id")); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) handlePropertyStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.propertiesSvc.Stats(r.Context())
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int{
		"total":     stats.Total,
		"forSale":   stats.ForSale,
		"forRent":   stats.ForRent,
		"land":      stats.Land,
		"carcass":   stats.Carcass,
		"preFinish": stats.PreFinish,
		"finished":  stats.Finished,
		"featured":  stats.Featured,
	})
}
