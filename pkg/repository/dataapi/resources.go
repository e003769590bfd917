package dataapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/marketplace-labs/briefdesk/pkg/domain/interfaces"
	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
	"github.com/marketplace-labs/briefdesk/pkg/domain/types"
)

type frameworkClient struct{ c *Client }

func (r *frameworkClient) Get(ctx context.Context, slug string) (*model.Framework, error) {
	var out struct {
		Frameworks model.Framework `json:"frameworks"`
	}
	if err := r.c.do(ctx, http.MethodGet, "/frameworks/"+url.PathEscape(slug), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Frameworks, nil
}

func (r *frameworkClient) List(ctx context.Context) ([]*model.Framework, error) {
	var out struct {
		Frameworks []*model.Framework `json:"frameworks"`
	}
	if err := r.c.do(ctx, http.MethodGet, "/frameworks", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Frameworks, nil
}

// Put is not available: frameworks are administered in the data API itself
func (r *frameworkClient) Put(ctx context.Context, f *model.Framework) error {
	return goerr.Wrap(interfaces.ErrUnsupported, "frameworks are read-only through the data API", goerr.V("slug", f.Slug))
}

type briefClient struct{ c *Client }

type briefEnvelope struct {
	Briefs *model.Brief `json:"briefs"`
}

func (r *briefClient) Create(ctx context.Context, b *model.Brief) (*model.Brief, error) {
	var out briefEnvelope
	if err := r.c.do(ctx, http.MethodPost, "/briefs", nil, briefEnvelope{Briefs: b}, &out); err != nil {
		return nil, err
	}
	if out.Briefs == nil {
		return nil, goerr.New("data API returned no brief")
	}
	return out.Briefs, nil
}

func (r *briefClient) Get(ctx context.Context, id string) (*model.Brief, error) {
	var out briefEnvelope
	if err := r.c.do(ctx, http.MethodGet, "/briefs/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	if out.Briefs == nil {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "brief not found", goerr.V(model.BriefIDKey, id))
	}
	return out.Briefs, nil
}

func (r *briefClient) ListByOwner(ctx context.Context, ownerID string, statuses ...types.BriefStatus) ([]*model.Brief, error) {
	q := url.Values{"user_id": {ownerID}}
	if len(statuses) > 0 {
		names := make([]string, len(statuses))
		for i, s := range statuses {
			names[i] = s.String()
		}
		q.Set("status", strings.Join(names, ","))
	}

	var out struct {
		Briefs []*model.Brief `json:"briefs"`
	}
	if err := r.c.do(ctx, http.MethodGet, "/briefs", q, nil, &out); err != nil {
		return nil, err
	}
	if out.Briefs == nil {
		return []*model.Brief{}, nil
	}
	return out.Briefs, nil
}

func (r *briefClient) Update(ctx context.Context, b *model.Brief) (*model.Brief, error) {
	var out briefEnvelope
	if err := r.c.do(ctx, http.MethodPut, "/briefs/"+url.PathEscape(b.ID), nil, briefEnvelope{Briefs: b}, &out); err != nil {
		return nil, err
	}
	if out.Briefs == nil {
		return nil, goerr.New("data API returned no brief", goerr.V(model.BriefIDKey, b.ID))
	}
	return out.Briefs, nil
}

func (r *briefClient) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, "/briefs/"+url.PathEscape(id), nil, nil, nil)
}

type briefResponseClient struct{ c *Client }

type briefResponseEnvelope struct {
	BriefResponses *model.BriefResponse `json:"briefResponses"`
}

func (r *briefResponseClient) Create(ctx context.Context, resp *model.BriefResponse) (*model.BriefResponse, error) {
	var out briefResponseEnvelope
	if err := r.c.do(ctx, http.MethodPost, "/brief-responses", nil, briefResponseEnvelope{BriefResponses: resp}, &out); err != nil {
		return nil, err
	}
	if out.BriefResponses == nil {
		return nil, goerr.New("data API returned no brief response")
	}
	return out.BriefResponses, nil
}

func (r *briefResponseClient) Get(ctx context.Context, id string) (*model.BriefResponse, error) {
	var out briefResponseEnvelope
	if err := r.c.do(ctx, http.MethodGet, "/brief-responses/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	if out.BriefResponses == nil {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "brief response not found", goerr.V(model.ResponseIDKey, id))
	}
	return out.BriefResponses, nil
}

func (r *briefResponseClient) ListByBrief(ctx context.Context, briefID string, statuses ...types.BriefResponseStatus) ([]*model.BriefResponse, error) {
	q := url.Values{"brief_id": {briefID}}
	if len(statuses) > 0 {
		names := make([]string, len(statuses))
		for i, s := range statuses {
			names[i] = s.String()
		}
		q.Set("status", strings.Join(names, ","))
	}

	var out struct {
		BriefResponses []*model.BriefResponse `json:"briefResponses"`
	}
	if err := r.c.do(ctx, http.MethodGet, "/brief-responses", q, nil, &out); err != nil {
		return nil, err
	}
	if out.BriefResponses == nil {
		return []*model.BriefResponse{}, nil
	}
	return out.BriefResponses, nil
}

func (r *briefResponseClient) Update(ctx context.Context, resp *model.BriefResponse) (*model.BriefResponse, error) {
	var out briefResponseEnvelope
	if err := r.c.do(ctx, http.MethodPut, "/brief-responses/"+url.PathEscape(resp.ID), nil, briefResponseEnvelope{BriefResponses: resp}, &out); err != nil {
		return nil, err
	}
	if out.BriefResponses == nil {
		return nil, goerr.New("data API returned no brief response", goerr.V(model.ResponseIDKey, resp.ID))
	}
	return out.BriefResponses, nil
}

type projectClient struct{ c *Client }

func (r *projectClient) Create(ctx context.Context, p *model.DirectAwardProject) (*model.DirectAwardProject, error) {
	var out struct {
		Project *model.DirectAwardProject `json:"project"`
	}
	body := map[string]any{"project": p}
	if err := r.c.do(ctx, http.MethodPost, "/direct-award/projects", nil, body, &out); err != nil {
		return nil, err
	}
	if out.Project == nil {
		return nil, goerr.New("data API returned no project")
	}
	return out.Project, nil
}

func (r *projectClient) ListByOwner(ctx context.Context, ownerID string) ([]*model.DirectAwardProject, error) {
	var out struct {
		Projects []*model.DirectAwardProject `json:"projects"`
	}
	q := url.Values{"user-id": {ownerID}}
	if err := r.c.do(ctx, http.MethodGet, "/direct-award/projects", q, nil, &out); err != nil {
		return nil, err
	}
	if out.Projects == nil {
		return []*model.DirectAwardProject{}, nil
	}
	return out.Projects, nil
}
