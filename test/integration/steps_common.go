package integration

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/atol-data/metadata-broker/pkg/server/middleware"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	authToken    string
	submissionID uint
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{tc: tc}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Background steps
	sc.Step(`^the broker server is running$`, s.theBrokerServerIsRunning)
	sc.Step(`^I am authenticated as "([^"]*)" with roles "([^"]*)"$`, s.iAmAuthenticatedAs)

	// Import steps
	sc.Step(`^I import the following "([^"]*)" dataset:$`, s.iImportDataset)
	sc.Step(`^an? "([^"]*)" record with natural key "([^"]*)" should exist$`, s.recordShouldExist)

	// Submission steps
	sc.Step(`^I stage the "([^"]*)" record "([^"]*)" for submission$`, s.iStageRecord)
	sc.Step(`^I transition the submission to "([^"]*)"$`, s.iTransitionSubmission)
	sc.Step(`^the submission status should be "([^"]*)"$`, s.theSubmissionStatusShouldBe)

	// Fetched archive steps
	sc.Step(`^I append a fetched snapshot with accession "([^"]*)" to the "([^"]*)" record "([^"]*)"$`, s.iAppendFetchedSnapshot)

	// Export steps
	sc.Step(`^I export the sample document for "([^"]*)"$`, s.iExportSampleDocument)
	sc.Step(`^I export the runs document for "([^"]*)"$`, s.iExportRunsDocument)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response body should contain "([^"]*)"$`, s.theResponseBodyShouldContain)
}

// Background steps

func (s *StepsContext) theBrokerServerIsRunning() error {
	// Server is already running via TestContext
	return nil
}

func (s *StepsContext) iAmAuthenticatedAs(login, roles string) error {
	token, err := middleware.Issue(s.tc.TokenKey, login, strings.Split(roles, ","), time.Hour)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}
	s.authToken = token
	return nil
}

// Import steps

func (s *StepsContext) iImportDataset(kind string, dataset *godog.DocString) error {
	return s.doRequest("POST", "/import/"+kind, dataset.Content)
}

func (s *StepsContext) recordShouldExist(kind, naturalKey string) error {
	_, err := s.recordID(kind, naturalKey)
	return err
}

// Submission steps

func (s *StepsContext) iStageRecord(kind, naturalKey string) error {
	id, err := s.recordID(kind, naturalKey)
	if err != nil {
		return err
	}

	if err := s.doRequest("POST", fmt.Sprintf("/submissions/%s/%d", kind, id), ""); err != nil {
		return err
	}

	// Remember the submission id for the transition steps
	if s.response.StatusCode == http.StatusCreated {
		var sub struct {
			ID uint `json:"id"`
		}
		if err := json.Unmarshal(s.responseBody, &sub); err != nil {
			return fmt.Errorf("failed to parse submission response: %w", err)
		}
		s.submissionID = sub.ID
	}
	return nil
}

func (s *StepsContext) iTransitionSubmission(status string) error {
	body := fmt.Sprintf(`{"status": %q}`, status)
	return s.doRequest("POST", fmt.Sprintf("/submissions/%d/transition", s.submissionID), body)
}

func (s *StepsContext) theSubmissionStatusShouldBe(expected string) error {
	if err := s.doRequest("GET", fmt.Sprintf("/submissions/%d", s.submissionID), ""); err != nil {
		return err
	}

	var sub struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(s.responseBody, &sub); err != nil {
		return fmt.Errorf("failed to parse submission response: %w", err)
	}
	if sub.Status != expected {
		return fmt.Errorf("expected submission status %q, got %q", expected, sub.Status)
	}
	return nil
}

// Fetched archive steps

func (s *StepsContext) iAppendFetchedSnapshot(accession, kind, naturalKey string) error {
	id, err := s.recordID(kind, naturalKey)
	if err != nil {
		return err
	}

	body := fmt.Sprintf(`{"accession": %q, "raw": {"accession": %q}}`, accession, accession)
	return s.doRequest("POST", fmt.Sprintf("/fetched/%s/%d", kind, id), body)
}

// Export steps

func (s *StepsContext) iExportSampleDocument(naturalKey string) error {
	id, err := s.recordID("sample", naturalKey)
	if err != nil {
		return err
	}
	return s.doRequest("GET", fmt.Sprintf("/xml/samples/%d", id), "")
}

func (s *StepsContext) iExportRunsDocument(naturalKey string) error {
	id, err := s.recordID("experiment", naturalKey)
	if err != nil {
		return err
	}
	return s.doRequest("GET", fmt.Sprintf("/xml/runs/%d", id), "")
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(expectedStatus int) error {
	if s.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d: %s", expectedStatus, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseBodyShouldContain(expected string) error {
	if !strings.Contains(string(s.responseBody), expected) {
		return fmt.Errorf("expected body to contain %q, got: %s", expected, string(s.responseBody))
	}
	return nil
}

// Helpers

// recordID resolves a record id through the natural key lookup endpoint
func (s *StepsContext) recordID(kind, naturalKey string) (uint, error) {
	path := fmt.Sprintf("/records/%s?natural_key=%s", kind, url.QueryEscape(naturalKey))
	if err := s.doRequest("GET", path, ""); err != nil {
		return 0, err
	}
	if s.response.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("record %s/%s not found: status %d: %s", kind, naturalKey, s.response.StatusCode, string(s.responseBody))
	}

	var rec struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(s.responseBody, &rec); err != nil {
		return 0, fmt.Errorf("failed to parse record response: %w", err)
	}
	return rec.ID, nil
}

func (s *StepsContext) doRequest(method, path, body string) error {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, s.tc.ServerURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.authToken)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	s.response, err = s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}

	s.responseBody, err = io.ReadAll(s.response.Body)
	_ = s.response.Body.Close()
	return err
}
