// Package service logs in to the judge and sends submissions.
package service

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	httpclient "kat/internal/cli/http"
	appErr "kat/pkg/errors"
	"kat/pkg/utils/logger"

	"go.uber.org/zap"
)

var submissionIDPattern = regexp.MustCompile(`Submission ID: ([0-9]+)`)

// Transport is the judge client used for login and submit.
type Transport interface {
	Get(ctx context.Context, url string) (httpclient.ResponseInfo, error)
	PostMultipart(ctx context.Context, url string, form httpclient.Form) (httpclient.ResponseInfo, error)
}

// Credentials authenticate against the judge.
type Credentials struct {
	Username string
	Token    string
}

// Submission describes one file to send.
type Submission struct {
	ProblemID string
	// Language is the judge's name for the language, e.g. "Python 3".
	Language string
	FilePath string
}

// Receipt identifies an accepted upload.
type Receipt struct {
	SubmissionID string
	StatusURL    string
}

// Service talks to one judge site with a shared session.
type Service struct {
	client Transport
	site   Site
	creds  Credentials
}

// NewService creates a submission service.
func NewService(client Transport, site Site, creds Credentials) *Service {
	return &Service{client: client, site: site, creds: creds}
}

// Site returns the judge site this service talks to.
func (s *Service) Site() Site {
	return s.site
}

// Login establishes a session cookie on the shared transport.
func (s *Service) Login(ctx context.Context) error {
	if s.creds.Username == "" || s.creds.Token == "" {
		return appErr.New(appErr.CredentialsMissing)
	}
	resp, err := s.client.PostMultipart(ctx, s.site.LoginURL(), httpclient.Form{
		Fields: []httpclient.Field{
			{Name: "script", Value: "true"},
			{Name: "user", Value: s.creds.Username},
			{Name: "token", Value: s.creds.Token},
		},
	})
	if err != nil {
		return appErr.Wrapf(err, appErr.LoginFailed, "send login request failed: %v", err)
	}
	switch resp.StatusCode {
	case http.StatusOK:
		logger.Debug(ctx, "logged in to judge", zap.String("user", s.creds.Username))
		return nil
	case http.StatusForbidden:
		return appErr.New(appErr.LoginFailed).WithMessage("invalid username or token, please check your kattisrc file")
	default:
		return appErr.Newf(appErr.LoginFailed, "login failed, status code: %d", resp.StatusCode)
	}
}

// ProblemExists reports whether the problem page exists on the site.
func (s *Service) ProblemExists(ctx context.Context, problemID string) (bool, error) {
	resp, err := s.client.Get(ctx, s.site.ProblemURL(problemID))
	if err != nil {
		return false, err
	}
	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, appErr.Newf(appErr.RequestFailed, "get problem %s failed, status code: %d", problemID, resp.StatusCode)
	}
}

// Send checks the problem exists, logs in and uploads the solution file.
func (s *Service) Send(ctx context.Context, sub Submission) (Receipt, error) {
	if err := ValidateProblemID(sub.ProblemID); err != nil {
		return Receipt{}, err
	}
	exists, err := s.ProblemExists(ctx, sub.ProblemID)
	if err != nil {
		return Receipt{}, err
	}
	if !exists {
		return Receipt{}, appErr.Newf(appErr.ProblemNotFound, "problem does not exist: %s", sub.ProblemID)
	}
	if err := s.Login(ctx); err != nil {
		return Receipt{}, err
	}

	content, err := os.ReadFile(sub.FilePath)
	if err != nil {
		return Receipt{}, appErr.Wrapf(err, appErr.IOFailed, "read file %s failed: %v", sub.FilePath, err)
	}
	fileName := filepath.Base(sub.FilePath)
	mainClass, _, _ := strings.Cut(fileName, ".")

	resp, err := s.client.PostMultipart(ctx, s.site.SubmitURL(), httpclient.Form{
		Fields: []httpclient.Field{
			{Name: "submit", Value: "true"},
			{Name: "submit_ctr", Value: "2"},
			{Name: "language", Value: sub.Language},
			{Name: "mainclass", Value: mainClass},
			{Name: "problem", Value: sub.ProblemID},
			{Name: "script", Value: "true"},
		},
		Files: []httpclient.FilePart{{Field: "sub_file[]", FileName: fileName, Content: content}},
	})
	if err != nil {
		return Receipt{}, appErr.Wrapf(err, appErr.SubmitFailed, "send submission failed: %v", err)
	}
	switch {
	case resp.StatusCode >= 500:
		return Receipt{}, appErr.Newf(appErr.JudgeUnavailable,
			"the judge server might be down, status code: %d, please try again later", resp.StatusCode)
	case resp.StatusCode >= 400:
		return Receipt{}, appErr.Newf(appErr.SubmitFailed,
			"submission rejected, status code: %d, please check your submission and try again", resp.StatusCode)
	case !resp.IsSuccess():
		return Receipt{}, appErr.Newf(appErr.SubmitFailed, "submission failed, status code: %d", resp.StatusCode)
	}

	id, err := ExtractSubmissionID(resp.Body)
	if err != nil {
		return Receipt{}, err
	}
	logger.Info(ctx, "submission sent", zap.String("problem_id", sub.ProblemID), zap.String("submission_id", id))
	return Receipt{SubmissionID: id, StatusURL: s.site.SubmissionURL(id)}, nil
}

// ExtractSubmissionID finds "Submission ID: <digits>" in a submit response.
func ExtractSubmissionID(body []byte) (string, error) {
	m := submissionIDPattern.FindSubmatch(body)
	if m == nil {
		return "", appErr.New(appErr.SubmissionIDMissing).WithDetail("body", string(body))
	}
	return string(m[1]), nil
}
