package service

import (
	"fmt"
	"regexp"
	"strings"

	appErr "kat/pkg/errors"
)

var problemIDPattern = regexp.MustCompile(`^[a-zA-Z0-9.]+$`)

// ValidateProblemID accepts ids like "twosum" and "itu.seatallocation".
func ValidateProblemID(id string) error {
	if !problemIDPattern.MatchString(id) {
		return appErr.Newf(appErr.InvalidProblemID, "invalid problem id %q", id)
	}
	return nil
}

// Site builds judge URLs for one host.
type Site struct {
	baseURL string
}

// NewSite creates a site for hostname. A bare hostname is served over https;
// a value that already carries a scheme is used as is.
func NewSite(hostname string) Site {
	hostname = strings.TrimRight(hostname, "/")
	if strings.Contains(hostname, "://") {
		return Site{baseURL: hostname}
	}
	return Site{baseURL: "https://" + hostname}
}

// SiteForProblem picks the host serving problemID. Ids with a dot prefix,
// such as "itu.seatallocation", live on "<prefix>.kattis.com".
func SiteForProblem(defaultHost, problemID string) Site {
	if prefix, _, ok := strings.Cut(problemID, "."); ok && prefix != "" {
		return NewSite(prefix + ".kattis.com")
	}
	return NewSite(defaultHost)
}

func (s Site) BaseURL() string   { return s.baseURL }
func (s Site) LoginURL() string  { return s.baseURL + "/login" }
func (s Site) SubmitURL() string { return s.baseURL + "/submit" }

func (s Site) ProblemURL(problemID string) string {
	return fmt.Sprintf("%s/problems/%s", s.baseURL, problemID)
}

func (s Site) SubmissionURL(submissionID string) string {
	return fmt.Sprintf("%s/submissions/%s", s.baseURL, submissionID)
}

func (s Site) SamplesURL(problemID string) string {
	return s.ProblemURL(problemID) + "/file/statement/samples.zip"
}
