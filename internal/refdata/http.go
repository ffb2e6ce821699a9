package refdata

import (
	"context"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/dealcraft/dealcraft/internal/model"
	"github.com/dealcraft/dealcraft/internal/resilience"
)

// maxBodyBytes caps reference downloads.
const maxBodyBytes = 10 << 20

// HTTPOptions configures an HTTPProvider.
type HTTPOptions struct {
	Timeout time.Duration
	Retry   resilience.Policy
	// Limiter throttles outbound requests. Nil means unlimited.
	Limiter *rate.Limiter
}

// HTTPProvider fetches records from URLs serving JSON or YAML. Like
// FileProvider it fetches on every call.
type HTTPProvider struct {
	partnersURL  string
	companiesURL string
	client       *http.Client
	retry        resilience.Policy
	limiter      *rate.Limiter
}

// NewHTTPProvider returns an HTTPProvider for the two URLs.
func NewHTTPProvider(partnersURL, companiesURL string, opts HTTPOptions) *HTTPProvider {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPProvider{
		partnersURL:  partnersURL,
		companiesURL: companiesURL,
		client:       &http.Client{Timeout: timeout},
		retry:        opts.Retry,
		limiter:      opts.Limiter,
	}
}

// Partners fetches the partner roster.
func (h *HTTPProvider) Partners(ctx context.Context) ([]model.Partner, error) {
	var partners []model.Partner
	if err := h.fetch(ctx, h.partnersURL, &partners); err != nil {
		return nil, eris.Wrap(err, "refdata: fetch partners")
	}
	return partners, nil
}

// Companies fetches the preloaded companies.
func (h *HTTPProvider) Companies(ctx context.Context) ([]model.Company, error) {
	var companies []model.Company
	if err := h.fetch(ctx, h.companiesURL, &companies); err != nil {
		return nil, eris.Wrap(err, "refdata: fetch companies")
	}
	return companies, nil
}

// response is one successful GET.
type response struct {
	body        []byte
	contentType string
}

func (h *HTTPProvider) fetch(ctx context.Context, rawURL string, dst any) error {
	resp, err := resilience.Do(ctx, h.retry, func(ctx context.Context) (response, error) {
		return h.get(ctx, rawURL)
	})
	if err != nil {
		return err
	}
	return decode(formatName(rawURL, resp.contentType), resp.body, dst)
}

// formatName returns a name whose extension selects the decoder: the URL
// path when it carries a known extension, otherwise one derived from the
// response Content-Type.
func formatName(rawURL, contentType string) string {
	name := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		name = u.Path
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return name
	}
	if mt, _, err := mime.ParseMediaType(contentType); err == nil && strings.Contains(mt, "yaml") {
		return name + ".yaml"
	}
	return name
}

func (h *HTTPProvider) get(ctx context.Context, rawURL string) (response, error) {
	if h.limiter != nil {
		if err := h.limiter.Wait(ctx); err != nil {
			return response{}, eris.Wrap(err, "rate limit wait")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return response{}, eris.Wrapf(err, "build request %s", rawURL)
	}
	req.Header.Set("Accept", "application/json, application/yaml")

	resp, err := h.client.Do(req)
	if err != nil {
		return response{}, eris.Wrapf(err, "get %s", rawURL)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		statusErr := eris.Errorf("get %s: status %d", rawURL, resp.StatusCode)
		if resilience.IsTransientStatus(resp.StatusCode) {
			return response{}, resilience.Transient(statusErr, resp.StatusCode)
		}
		return response{}, statusErr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return response{}, resilience.Transient(eris.Wrapf(err, "read body %s", rawURL), 0)
	}
	return response{body: body, contentType: resp.Header.Get("Content-Type")}, nil
}
