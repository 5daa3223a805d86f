package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/openrdap/rdap"

	"domainwatch/domain"
	"domainwatch/registry"
)

// maxRDAPBody caps how much of a response is read when classifying.
const maxRDAPBody = 1 << 20

// RDAPClient performs a single RDAP round trip against an explicit endpoint
// and normalizes the response to a tri-state outcome. Endpoints are pinned
// per source, so bootstrap discovery is never involved.
type RDAPClient struct {
	HTTP *http.Client
}

func NewRDAPClient(timeout time.Duration) *RDAPClient {
	return &RDAPClient{HTTP: &http.Client{Timeout: timeout}}
}

func (c *RDAPClient) Query(ctx context.Context, src registry.Source, fqdn string) (domain.Outcome, error) {
	url := strings.TrimSuffix(src.Endpoint, "/") + "/" + fqdn
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		// A URL that cannot even be built will not improve with retries.
		return domain.OutcomeUnknown, nil
	}
	req.Header.Set("Accept", "application/rdap+json, application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return domain.OutcomeUnknown, fmt.Errorf("%w: %v", errTransient, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.OutcomeFree, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return domain.OutcomeUnknown, fmt.Errorf("%w: http %d from %s", errTransient, resp.StatusCode, src.Endpoint)
	case resp.StatusCode != http.StatusOK:
		return domain.OutcomeUnknown, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRDAPBody))
	if err != nil {
		return domain.OutcomeUnknown, fmt.Errorf("%w: %v", errTransient, err)
	}
	return classifyRDAPBody(body), nil
}

// classifyRDAPBody maps a 200 body to an outcome. A body carrying an RDAP
// error object with code 404 counts the same as a transport-level 404.
func classifyRDAPBody(body []byte) domain.Outcome {
	var d rdap.Domain
	if err := json.Unmarshal(body, &d); err == nil && strings.EqualFold(d.ObjectClassName, "domain") {
		return domain.OutcomeTaken
	}
	var e rdap.Error
	if err := json.Unmarshal(body, &e); err == nil && e.ErrorCode != nil && *e.ErrorCode == http.StatusNotFound {
		return domain.OutcomeFree
	}
	return domain.OutcomeUnknown
}
