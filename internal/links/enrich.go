package links

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"
)

const (
	maxContentChars = 2000
	maxSummaryChars = 300

	// NoTitle stands in for pages without a <title>.
	NoTitle = "Sin título"
)

var (
	titleRe  = regexp.MustCompile(`(?i)<title[^>]*>([^<]*)</title>`)
	scriptRe = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	tagRe    = regexp.MustCompile(`<[^>]+>`)
	spaceRe  = regexp.MustCompile(`\s+`)

	errRejectedURL = errors.New("URL no permitida (esquema o dirección privada)")
)

// Record is the outcome of fetching one link. Records are never mutated after creation.
type Record struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	Summary       string `json:"summary"`
	Succeeded     bool   `json:"succeeded"`
	FailureReason string `json:"failureReason,omitempty"`
}

// Options configures an Enricher. Zero values pick defaults.
type Options struct {
	Timeout      time.Duration
	MaxBodyBytes int64
	// RateLimitRPS is a global limit on fetch starts. Set to <=0 to disable.
	RateLimitRPS float64
	UserAgent    string
	// Client overrides the HTTP client. Timeout is ignored when set.
	Client *http.Client
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = 2 << 20
	}
	if o.UserAgent == "" {
		o.UserAgent = "outreach-link-reader/1.0"
	}
	return o
}

// Enricher fetches links and reduces each page to a short text summary.
type Enricher struct {
	client    *http.Client
	limiter   *rate.Limiter
	maxBody   int64
	userAgent string
	allow     func(string) bool
}

// NewEnricher creates an Enricher.
func NewEnricher(opts Options) *Enricher {
	opts = opts.withDefaults()

	client := opts.Client
	if client == nil {
		client = &http.Client{
			Timeout: opts.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return errors.New("too many redirects")
				}
				if !IsValid(req.URL.String()) {
					return errRejectedURL
				}
				return nil
			},
		}
	}

	var limiter *rate.Limiter
	if opts.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimitRPS), 1)
	}

	return &Enricher{
		client:    client,
		limiter:   limiter,
		maxBody:   opts.MaxBodyBytes,
		userAgent: opts.UserAgent,
		allow:     IsValid,
	}
}

// EnrichAll fetches every URL concurrently and waits for all of them.
// The result has the same length and order as urls; a failed fetch yields a
// Record with Succeeded=false instead of an error.
func (e *Enricher) EnrichAll(ctx context.Context, urls []string) []Record {
	out := make([]Record, len(urls))

	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			out[i] = e.enrichOne(ctx, u)
		}(i, u)
	}
	wg.Wait()

	return out
}

func (e *Enricher) enrichOne(ctx context.Context, rawURL string) (rec Record) {
	rawURL = strings.TrimSpace(rawURL)
	defer func() {
		if r := recover(); r != nil {
			rec = failed(rawURL, fmt.Errorf("panic: %v", r))
		}
	}()

	if !e.allow(rawURL) {
		return failed(rawURL, errRejectedURL)
	}
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return failed(rawURL, err)
		}
	}

	body, err := e.fetch(ctx, rawURL)
	if err != nil {
		log.Printf("enrich: %s: %v", rawURL, err)
		return failed(rawURL, err)
	}
	return Summarize(rawURL, body)
}

func (e *Enricher) fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error al leer la URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("error al leer la URL: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBody))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(data), nil
}

// Summarize turns an HTML document into a successful Record.
func Summarize(rawURL, page string) Record {
	title := NoTitle
	if m := titleRe.FindStringSubmatch(page); m != nil {
		if t := strings.TrimSpace(html.UnescapeString(m[1])); t != "" {
			title = t
		}
	}

	clean := scriptRe.ReplaceAllString(page, "")
	clean = styleRe.ReplaceAllString(clean, "")
	clean = tagRe.ReplaceAllString(clean, " ")
	clean = html.UnescapeString(clean)
	clean = strings.TrimSpace(spaceRe.ReplaceAllString(clean, " "))

	content := truncateRunes(clean, maxContentChars)
	summary := truncateRunes(content, maxSummaryChars)
	if utf8.RuneCountInString(content) > maxSummaryChars {
		summary += "..."
	}

	return Record{
		URL:       rawURL,
		Title:     title,
		Content:   content,
		Summary:   summary,
		Succeeded: true,
	}
}

func failed(rawURL string, err error) Record {
	return Record{
		URL:           rawURL,
		Succeeded:     false,
		FailureReason: err.Error(),
	}
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
