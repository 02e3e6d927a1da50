package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"primehavenwebserver/internal/domain"
	"primehavenwebserver/internal/service"
)

type stubPropertiesStore struct {
	t *testing.T

	listFunc   func(context.Context, domain.PropertyFilter) ([]domain.Property, error)
	getFunc    func(context.Context, string) (domain.Property, error)
	createFunc func(context.Context, domain.Property) (domain.Property, error)
	updateFunc func(context.Context, string, domain.PropertyUpdate) (domain.Property, error)
	deleteFunc func(context.Context, string) error
	statsFunc  func(context.Context) (domain.PropertyStats, error)
}

func (s *stubPropertiesStore) ListProperties(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	if s.listFunc != nil {
		return s.listFunc(ctx, filter)
	}
	s.t.Fatalf("ListProperties called unexpectedly")
	return nil, errors.New("unexpected call")
}

func (s *stubPropertiesStore) GetPropertyByID(ctx context.Context, id string) (domain.Property, error) {
	if s.getFunc != nil {
		return s.getFunc(ctx, id)
	}
	s.t.Fatalf("GetPropertyByID called unexpectedly")
	return domain.Property{}, errors.New("unexpected call")
}

func (s *stubPropertiesStore) CreateProperty(ctx context.Context, p domain.Property) (domain.Property, error) {
	if s.createFunc != nil {
		return s.createFunc(ctx, p)
	}
	s.t.Fatalf("CreateProperty called unexpectedly")
	return domain.Property{}, errors.New("unexpected call")
}

func (s *stubPropertiesStore) UpdateProperty(ctx context.Context, id string, upd domain.PropertyUpdate) (domain.Property, error) {
	if s.updateFunc != nil {
		return s.updateFunc(ctx, id, upd)
	}
	s.t.Fatalf("UpdateProperty called unexpectedly")
	return domain.Property{}, errors.New("unexpected call")
}

func (s *stubPropertiesStore) DeleteProperty(ctx context.Context, id string) error {
	if s.deleteFunc != nil {
		return s.deleteFunc(ctx, id)
	}
	s.t.Fatalf("DeleteProperty called unexpectedly")
	return errors.New("unexpected call")
}

func (s *stubPropertiesStore) GetPropertyStats(ctx context.Context) (domain.PropertyStats, error) {
	if s.statsFunc != nil {
		return s.statsFunc(ctx)
	}
	s.t.Fatalf("GetPropertyStats called unexpectedly")
	return domain.PropertyStats{}, errors.New("unexpected call")
}

func TestPropertiesListParsesFilters(t *testing.T) {
	var gotFilter domain.PropertyFilter
	api := &api{
		propertiesSvc: &service.PropertiesService{
			Store: &stubPropertiesStore{
				t: t,
				listFunc: func(_ context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
					gotFilter = filter
					return nil, nil
				},
			},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/properties?category=For+Sale&type=Land&featured=true", nil)
	rr := httptest.NewRecorder()
	api.handlePropertiesList(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	if gotFilter.Category != "For Sale" || gotFilter.PropertyType != "Land" {
		t.Fatalf("unexpected filter: %#v", gotFilter)
	}
	if gotFilter.Featured == nil || !*gotFilter.Featured {
		t.Fatalf("featured filter not applied: %#v", gotFilter.Featured)
	}

	// Empty list still serializes as [], not null.
	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Fatalf("unexpected body: %s", rr.Body)
	}
}

func TestPropertiesListRejectsBadFeatured(t *testing.T) {
	api := &api{}

	req := httptest.NewRequest(http.MethodGet, "/v1/properties?featured=maybe", nil)
	rr := httptest.NewRecorder()
	api.handlePropertiesList(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
}

func TestPropertyGetUnknownIs404(t *testing.T) {
	api := &api{
		propertiesSvc: &service.PropertiesService{
			Store: &stubPropertiesStore{
				t: t,
				getFunc: func(_ context.Context, _ string) (domain.Property, error) {
					return domain.Property{}, domain.ErrNotFound
				},
			},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/properties/prop-404", nil)
	req.SetPathValue("id", "prop-404")
	rr := httptest.NewRecorder()
	api.handlePropertyGet(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
}

func TestPropertyCreateValidation(t *testing.T) {
	api := &api{}

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/properties", strings.NewReader(`{"title":"","price":-5,"location":""}`))
	rr := httptest.NewRecorder()
	api.handlePropertyCreate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "validation_error") {
		t.Fatalf("unexpected body: %s", rr.Body)
	}
}

func TestPropertyUpdatePartialPatch(t *testing.T) {
	var gotUpd domain.PropertyUpdate
	api := &api{
		propertiesSvc: &service.PropertiesService{
			Store: &stubPropertiesStore{
				t: t,
				updateFunc: func(_ context.Context, id string, upd domain.PropertyUpdate) (domain.Property, error) {
					if id != "prop-1" {
						t.Fatalf("unexpected id: %s", id)
					}
					gotUpd = upd
					return domain.Property{ID: id, Title: "Kept", Featured: *upd.Featured}, nil
				},
			},
		},
	}

	req := httptest.NewRequest(http.MethodPatch, "/v1/admin/properties/prop-1", strings.NewReader(`{"featured":true,"price":125000}`))
	req.SetPathValue("id", "prop-1")
	rr := httptest.NewRecorder()
	api.handlePropertyUpdate(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rr.Code, rr.Body)
	}
	if gotUpd.Featured == nil || !*gotUpd.Featured {
		t.Fatalf("featured not patched: %#v", gotUpd)
	}
	if gotUpd.Price == nil || *gotUpd.Price != 125000 {
		t.Fatalf("price not patched: %#v", gotUpd)
	}
	if gotUpd.Title != nil {
		t.Fatalf("title should be untouched: %#v", gotUpd.Title)
	}
}

func TestPropertyStatsPayload(t *testing.T) {
	api := &api{
		propertiesSvc: &service.PropertiesService{
			Store: &stubPropertiesStore{
				t: t,
				statsFunc: func(_ context.Context) (domain.PropertyStats, error) {
					return domain.PropertyStats{Total: 10, ForSale: 4, ForRent: 3, Land: 2, Featured: 1}, nil
				},
			},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/properties/stats", nil)
	rr := httptest.NewRecorder()
	api.handlePropertyStats(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	var got map[string]int
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got["total"] != 10 || got["forSale"] != 4 || got["featured"] != 1 {
		t.Fatalf("unexpected stats: %#v", got)
	}
}
