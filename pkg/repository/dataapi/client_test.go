package dataapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/marketplace-labs/briefdesk/pkg/domain/interfaces"
	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
	"github.com/marketplace-labs/briefdesk/pkg/domain/types"
	"github.com/marketplace-labs/briefdesk/pkg/repository/dataapi"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *dataapi.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := dataapi.New(srv.URL+"/api", "secret-token")
	gt.NoError(t, err).Required()
	return client
}

func TestGetBrief(t *testing.T) {
	var gotAuth, gotPath string
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"briefs": {
			"id": "1234",
			"title": "I need a thing",
			"frameworkSlug": "digital-outcomes-and-specialists",
			"lotSlug": "digital-specialists",
			"status": "closed",
			"ownerId": "123",
			"niceToHaveRequirements": ["Nice1", "Nice2"],
			"specialistRole": "developer"
		}}`))
	})

	brief, err := client.Brief().Get(context.Background(), "1234")
	gt.NoError(t, err).Required()

	gt.Value(t, gotAuth).Equal("Bearer secret-token")
	gt.Value(t, gotPath).Equal("/api/briefs/1234")
	gt.Value(t, brief.Status).Equal(types.BriefStatusClosed)
	gt.Array(t, brief.NiceToHaveRequirements).Length(2)
	gt.Value(t, brief.Answers["specialistRole"]).Equal(any("developer"))
}

func TestStatusMapping(t *testing.T) {
	t.Run("404 is not found", func(t *testing.T) {
		client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
		_, err := client.Brief().Get(context.Background(), "9999")
		gt.Error(t, err).Is(interfaces.ErrNotFound)
	})

	t.Run("5xx is unavailable", func(t *testing.T) {
		client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		_, err := client.BriefResponse().ListByBrief(context.Background(), "1234")
		gt.Error(t, err).Is(dataapi.ErrUnavailable)
	})

	t.Run("4xx is a plain failure", func(t *testing.T) {
		client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error": "invalid"}`))
		})
		_, err := client.Brief().Create(context.Background(), &model.Brief{Title: "x"})
		gt.Error(t, err)
	})
}

func TestListBriefResponses(t *testing.T) {
	var gotQuery map[string][]string
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"briefResponses": [
			{"id": "1", "briefId": "1234", "status": "submitted", "supplierName": "Kev's Butties", "essentialRequirements": [true, true]},
			{"id": "2", "briefId": "1234", "status": "submitted", "supplierName": "Kev's Pies", "essentialRequirements": [true, false]}
		]}`))
	})

	responses, err := client.BriefResponse().ListByBrief(context.Background(), "1234",
		types.BriefResponseStatusSubmitted, types.BriefResponseStatusPendingAwarded)
	gt.NoError(t, err).Required()

	gt.Value(t, gotQuery["brief_id"][0]).Equal("1234")
	gt.Value(t, gotQuery["status"][0]).Equal("submitted,pending-awarded")
	gt.Array(t, responses).Length(2)
	gt.Value(t, responses[0].SupplierName()).Equal("Kev's Butties")
	gt.Value(t, len(responses[1].Answers["essentialRequirements"].([]any))).Equal(2)
}

func TestUpdateBriefSendsFlatRecord(t *testing.T) {
	var body map[string]map[string]any
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.Method).Equal(http.MethodPut)
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&body)).Required()
		_ = json.NewEncoder(w).Encode(map[string]any{"briefs": body["briefs"]})
	})

	brief := &model.Brief{
		ID:      "1234",
		Title:   "Updated",
		Status:  types.BriefStatusDraft,
		Answers: map[string]any{"location": "London"},
	}
	updated, err := client.Brief().Update(context.Background(), brief)
	gt.NoError(t, err).Required()

	gt.Value(t, body["briefs"]["location"]).Equal(any("London"))
	gt.Value(t, body["briefs"]["title"]).Equal(any("Updated"))
	gt.Value(t, updated.Answers["location"]).Equal(any("London"))
}

func TestFrameworkPutUnsupported(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	err := client.Framework().Put(context.Background(), &model.Framework{Slug: "g-cloud-9"})
	gt.Error(t, err).Is(interfaces.ErrUnsupported)
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := dataapi.New("ftp://example.com", "")
	gt.Error(t, err)
}
