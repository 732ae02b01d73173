package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"

	mp "mime/multipart"

	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/model"
	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/multipart"
)

// defaultFileDescription is sent when a staged file has no description of
// its own; the backend requires the key either way.
const defaultFileDescription = "attachment uploaded from case creation"

// GetCases fetches one page of cases for the given criteria. The backend
// pages are 0-based; PageData is 1-based like the UI.
func (c *Client) GetCases(ctx context.Context, criteria model.FilterCriteria, page model.PageData) (model.CasePage, error) {
	query := url.Values{}
	size := page.Size
	if size <= 0 {
		size = model.DefaultPageSize
	}
	backendPage := page.Page - 1
	if backendPage < 0 {
		backendPage = 0
	}
	query.Set("size", strconv.Itoa(size))
	query.Set("page", strconv.Itoa(backendPage))

	setOpt := func(key string, v *string) {
		if v != nil && *v != "" {
			query.Set(key, *v)
		}
	}
	setOpt("searchKey", criteria.SearchKey)
	setOpt("sort", criteria.Sort)
	setOpt("fromPeriod", criteria.FromPeriod)
	setOpt("toPeriod", criteria.ToPeriod)
	setOpt("finalResultId", criteria.FinalResultID)
	setOpt("lawsuitTypeId", criteria.LawsuitTypeID)
	setOpt("courtId", criteria.CourtID)
	setOpt("state", criteria.State)

	var out model.CasePage
	if err := c.get(ctx, "/cases", query, &out, requestOptions{}); err != nil {
		return model.CasePage{}, fmt.Errorf("failed to fetch cases: %w", err)
	}
	return out, nil
}

// GetCase fetches a single case by id.
func (c *Client) GetCase(ctx context.Context, id int) (model.CaseDetails, error) {
	var out model.CaseDetails
	if err := c.get(ctx, fmt.Sprintf("/cases/%d", id), nil, &out, requestOptions{}); err != nil {
		return model.CaseDetails{}, fmt.Errorf("failed to fetch case %d: %w", id, err)
	}
	return out, nil
}

// CreateCase submits a new case as one multipart payload: every nested
// request field flattened to dotted/bracketed keys plus one binary part
// per staged file. Never retried.
func (c *Client) CreateCase(ctx context.Context, req model.CaseRequest) (model.CaseDetails, error) {
	// Districts arrive from the lookup endpoint with their city list
	// embedded; the backend rejects it inside a case payload.
	req.District.Cities = nil

	files := req.Documents.Files
	req.Documents = model.CaseDocuments{}

	var buf bytes.Buffer
	w := mp.NewWriter(&buf)

	for _, field := range multipart.Flatten(req) {
		if err := w.WriteField(field.Key, field.Value); err != nil {
			return model.CaseDetails{}, fmt.Errorf("failed to write form field %s: %w", field.Key, err)
		}
	}

	for i, f := range files {
		part, err := w.CreateFormFile(fmt.Sprintf("documents.files[%d].file", i), f.Name)
		if err != nil {
			return model.CaseDetails{}, fmt.Errorf("failed to create file part for %s: %w", f.Name, err)
		}
		content := f.Content
		if content == nil && f.Path != "" {
			content, err = os.ReadFile(f.Path)
			if err != nil {
				return model.CaseDetails{}, fmt.Errorf("failed to read staged file %s: %w", f.Path, err)
			}
		}
		if _, err := part.Write(content); err != nil {
			return model.CaseDetails{}, fmt.Errorf("failed to write file %s: %w", f.Name, err)
		}

		desc := f.Description
		if desc == "" {
			desc = defaultFileDescription
		}
		if err := w.WriteField(fmt.Sprintf("documents.files[%d].name", i), f.Name); err != nil {
			return model.CaseDetails{}, fmt.Errorf("failed to write file name field: %w", err)
		}
		if err := w.WriteField(fmt.Sprintf("documents.files[%d].description", i), desc); err != nil {
			return model.CaseDetails{}, fmt.Errorf("failed to write file description field: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return model.CaseDetails{}, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	var out model.CaseDetails
	err := c.doWithBody(ctx, http.MethodPost, "/cases", nil, &buf, &out, requestOptions{contentType: w.FormDataContentType()})
	if err != nil {
		if err == ErrUnauthorized {
			return model.CaseDetails{}, err
		}
		return model.CaseDetails{}, fmt.Errorf("failed to create case: %w", err)
	}
	return out, nil
}

// UpdateCase replaces a case. JSON body; the backend accepts the write
// model without attachments on update.
func (c *Client) UpdateCase(ctx context.Context, id int, req model.CaseRequest) (model.CaseDetails, error) {
	req.District.Cities = nil
	var out model.CaseDetails
	if err := c.putJSON(ctx, fmt.Sprintf("/cases/%d", id), req, &out); err != nil {
		return model.CaseDetails{}, fmt.Errorf("failed to update case %d: %w", id, err)
	}
	return out, nil
}

// DeleteCase removes a case. Destructive: never retried.
func (c *Client) DeleteCase(ctx context.Context, id int) error {
	if err := c.delete(ctx, fmt.Sprintf("/cases/%d", id)); err != nil {
		return fmt.Errorf("failed to delete case %d: %w", id, err)
	}
	return nil
}

// Sub-resource accessors. Each returns the envelope payload directly.

// GetCaseNotes lists the notes of a case.
func (c *Client) GetCaseNotes(ctx context.Context, caseID int) ([]model.CaseNote, error) {
	var out []model.CaseNote
	if err := c.get(ctx, fmt.Sprintf("/cases/%d/notes", caseID), nil, &out, requestOptions{}); err != nil {
		return nil, fmt.Errorf("failed to fetch notes for case %d: %w", caseID, err)
	}
	return out, nil
}

// AddCaseNote attaches a note to a case.
func (c *Client) AddCaseNote(ctx context.Context, caseID int, title, content string, private bool) (model.CaseNote, error) {
	body := map[string]interface{}{"title": title, "content": content, "isPrivate": private}
	var out model.CaseNote
	if err := c.postJSON(ctx, fmt.Sprintf("/cases/%d/notes", caseID), body, &out); err != nil {
		return model.CaseNote{}, fmt.Errorf("failed to add note to case %d: %w", caseID, err)
	}
	return out, nil
}

// DeleteCaseNote removes a note from a case.
func (c *Client) DeleteCaseNote(ctx context.Context, caseID, noteID int) error {
	if err := c.delete(ctx, fmt.Sprintf("/cases/%d/notes/%d", caseID, noteID)); err != nil {
		return fmt.Errorf("failed to delete note %d of case %d: %w", noteID, caseID, err)
	}
	return nil
}

// GetCaseDocuments lists the stored documents of a case.
func (c *Client) GetCaseDocuments(ctx context.Context, caseID int) ([]model.CaseDocument, error) {
	var out []model.CaseDocument
	if err := c.get(ctx, fmt.Sprintf("/cases/%d/documents", caseID), nil, &out, requestOptions{}); err != nil {
		return nil, fmt.Errorf("failed to fetch documents for case %d: %w", caseID, err)
	}
	return out, nil
}

// DeleteCaseDocument removes a stored document from a case.
func (c *Client) DeleteCaseDocument(ctx context.Context, caseID, documentID int) error {
	if err := c.delete(ctx, fmt.Sprintf("/cases/%d/documents/%d", caseID, documentID)); err != nil {
		return fmt.Errorf("failed to delete document %d of case %d: %w", documentID, caseID, err)
	}
	return nil
}

// GetCaseJudgements lists the judgements recorded on a case.
func (c *Client) GetCaseJudgements(ctx context.Context, caseID int) ([]model.CaseJudgement, error) {
	var out []model.CaseJudgement
	if err := c.get(ctx, fmt.Sprintf("/cases/%d/judgements", caseID), nil, &out, requestOptions{}); err != nil {
		return nil, fmt.Errorf("failed to fetch judgements for case %d: %w", caseID, err)
	}
	return out, nil
}

// GetCaseTeamMembers lists the users working a case.
func (c *Client) GetCaseTeamMembers(ctx context.Context, caseID int) ([]model.CaseTeamMember, error) {
	var out []model.CaseTeamMember
	if err := c.get(ctx, fmt.Sprintf("/cases/%d/team-members", caseID), nil, &out, requestOptions{}); err != nil {
		return nil, fmt.Errorf("failed to fetch team members for case %d: %w", caseID, err)
	}
	return out, nil
}

// GetCaseEvents lists the calendar events of a case.
func (c *Client) GetCaseEvents(ctx context.Context, caseID int) ([]model.CaseEvent, error) {
	var out []model.CaseEvent
	if err := c.get(ctx, fmt.Sprintf("/cases/%d/events", caseID), nil, &out, requestOptions{}); err != nil {
		return nil, fmt.Errorf("failed to fetch events for case %d: %w", caseID, err)
	}
	return out, nil
}

// AddCaseEvent creates a calendar entry on a case.
func (c *Client) AddCaseEvent(ctx context.Context, caseID int, event model.CaseEvent) (model.CaseEvent, error) {
	var out model.CaseEvent
	if err := c.postJSON(ctx, fmt.Sprintf("/cases/%d/events", caseID), event, &out); err != nil {
		return model.CaseEvent{}, fmt.Errorf("failed to add event to case %d: %w", caseID, err)
	}
	return out, nil
}
