// Package ingest harvests raw sources into corpus shards.
//
// A source may be a local file, an http(s) URL, or standard input. Pages
// pass through readability extraction (optionally a CSS selector), then
// boilerplate trimming, before landing as JSONL documents ready for
// filtering.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/chriscorrea/winnow/internal/boiler"
	"github.com/chriscorrea/winnow/internal/corpus"
)

// Size limits to prevent memory overload from oversized sources.
const (
	MaxFileSizeBytes = 50 * 1024 * 1024  // 50MB limit for files
	MaxHTTPSizeBytes = 100 * 1024 * 1024 // 100MB limit for HTTP content (may not have Content-Length)
)

// HTTPRequestTimeout bounds a whole fetch.
const HTTPRequestTimeout = 30 * time.Second

// phase timeouts derived from HTTPRequestTimeout
var (
	httpDialTimeout           = HTTPRequestTimeout / 6
	httpTLSTimeout            = HTTPRequestTimeout / 6
	httpResponseHeaderTimeout = HTTPRequestTimeout / 2
)

// limitedReadCloser wraps an io.ReadCloser to enforce size limits
type limitedReadCloser struct {
	io.ReadCloser
	N      int64  // max bytes remaining
	source string // for error messages
}

func (l *limitedReadCloser) Read(p []byte) (n int, err error) {
	if l.N <= 0 {
		return 0, fmt.Errorf("content from %q exceeds size limit", l.source)
	}
	if int64(len(p)) > l.N {
		p = p[0:l.N]
	}
	n, err = l.ReadCloser.Read(p)
	l.N -= int64(n)
	return
}

// httpClient is shared across fetches; safe for concurrent use.
var httpClient = &http.Client{
	Timeout: HTTPRequestTimeout,
	Transport: &http.Transport{
		Dial: (&net.Dialer{
			Timeout: httpDialTimeout,
		}).Dial,
		TLSHandshakeTimeout:   httpTLSTimeout,
		ResponseHeaderTimeout: httpResponseHeaderTimeout,
		DisableKeepAlives:     true,
	},
}

// Open retrieves content from a source and returns an io.ReadCloser.
// Three source forms are supported:
//   - "-" reads from standard input
//   - URLs starting with "http://" or "https://" are fetched via HTTP
//   - everything else is treated as a local file path
func Open(ctx context.Context, source string) (io.ReadCloser, error) {
	switch {
	case source == "-":
		return &limitedReadCloser{
			ReadCloser: os.Stdin,
			N:          MaxFileSizeBytes,
			source:     "stdin",
		}, nil
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		return openURL(ctx, source)
	default:
		return openFile(source)
	}
}

func openURL(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for URL %q: %w", url, err)
	}
	req.Header.Set("User-Agent", "winnow/0.1")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL %q: %w", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP request failed for URL %q: status %d %s", url, resp.StatusCode, resp.Status)
	}

	// reject oversized responses up front when the server declares a length
	if contentLength := resp.Header.Get("Content-Length"); contentLength != "" {
		if size, err := strconv.ParseInt(contentLength, 10, 64); err == nil {
			if size > MaxHTTPSizeBytes {
				resp.Body.Close()
				return nil, fmt.Errorf("HTTP content too large (%d bytes > %d bytes limit)",
					size, MaxHTTPSizeBytes)
			}
		}
	}

	// responses without Content-Length are capped while reading
	return &limitedReadCloser{
		ReadCloser: resp.Body,
		N:          MaxHTTPSizeBytes,
		source:     url,
	}, nil
}

func openFile(path string) (io.ReadCloser, error) {
	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file %q does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to access file %q: %w", path, err)
	}

	if fileInfo.Size() > MaxFileSizeBytes {
		return nil, fmt.Errorf("file %q is too large (%d bytes > %d bytes limit)",
			path, fileInfo.Size(), MaxFileSizeBytes)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}

	return file, nil
}

// ExtractOptions control how text is pulled out of a fetched page.
type ExtractOptions struct {
	// Selector is an optional CSS selector; when set it overrides
	// readability extraction.
	Selector string
	// All skips readability and takes the whole page body.
	All bool
	// Markdown preserves document structure as Markdown instead of
	// emitting plain text.
	Markdown bool
	// BaseURL gives readability context for resolving relative links.
	BaseURL *url.URL
}

// FromHTML extracts text from an HTML page. By default readability
// isolates the main article content; a selector or the All option
// widens the catch.
func FromHTML(content io.Reader, opts ExtractOptions) (string, error) {
	if opts.Selector != "" {
		return extractSelector(content, opts.Selector, opts.Markdown)
	}
	if opts.All {
		return extractAll(content, opts.Markdown)
	}
	return extractArticle(content, opts.BaseURL, opts.Markdown)
}

// extractArticle uses readability to isolate the main article content.
func extractArticle(content io.Reader, baseURL *url.URL, markdown bool) (string, error) {
	if baseURL == nil {
		baseURL = &url.URL{}
	}

	article, err := readability.FromReader(content, baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract main content: %w", err)
	}

	if markdown {
		return convertToMarkdown(article.Content)
	}
	return article.TextContent, nil
}

// extractSelector pulls the elements matching a CSS selector.
func extractSelector(content io.Reader, selector string, markdown bool) (string, error) {
	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	selection := doc.Find(selector)
	if selection.Length() == 0 {
		return "", fmt.Errorf("no elements found matching selector: %s", selector)
	}

	if !markdown {
		var parts []string
		selection.Each(func(i int, s *goquery.Selection) {
			if text := strings.TrimSpace(s.Text()); text != "" {
				parts = append(parts, text)
			}
		})
		return strings.Join(parts, "\n"), nil
	}

	var htmlParts []string
	selection.Each(func(i int, s *goquery.Selection) {
		html, err := s.Html()
		if err == nil {
			// wrap each element to preserve structure
			tagName := goquery.NodeName(s)
			htmlParts = append(htmlParts, fmt.Sprintf("<%s>%s</%s>", tagName, html, tagName))
		}
	})
	if len(htmlParts) == 0 {
		return "", fmt.Errorf("failed to extract HTML from selection")
	}
	return convertToMarkdown(strings.Join(htmlParts, "\n"))
}

// extractAll takes the whole page without readability filtering.
func extractAll(content io.Reader, markdown bool) (string, error) {
	if markdown {
		htmlBytes, err := io.ReadAll(content)
		if err != nil {
			return "", fmt.Errorf("failed to read HTML content: %w", err)
		}
		return convertToMarkdown(string(htmlBytes))
	}

	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc.Find("body").Text(), nil
}

// convertToMarkdown converts an HTML string to tidy Markdown.
func convertToMarkdown(htmlString string) (string, error) {
	converter := md.NewConverter("", true, nil)

	converter.Use(md.Plugin(func(c *md.Converter) []md.Rule {
		return []md.Rule{
			// tidy up excessive whitespace
			{
				Filter: []string{"*"},
				Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
					cleaned := strings.TrimSpace(content)
					result := strings.ReplaceAll(cleaned, "\n\n\n", "\n\n")
					return &result
				},
			},
		}
	}))

	markdown, err := converter.ConvertString(htmlString)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}

	cleaned := strings.TrimSpace(markdown)
	cleaned = strings.ReplaceAll(cleaned, "\n\n\n", "\n\n")

	return cleaned, nil
}

// Paragraphs splits extracted text into trimmed, non-empty blocks, one
// per line of the source text.
func Paragraphs(text string) []string {
	var blocks []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			blocks = append(blocks, trimmed)
		}
	}
	return blocks
}

// DocumentWriter accepts harvested documents. Both *corpus.Writer and
// *corpus.FileWriter satisfy it.
type DocumentWriter interface {
	Write(corpus.Document) error
}

// Options configure a harvest.
type Options struct {
	// Selector optionally narrows extraction to a CSS selector.
	Selector string
	// All skips readability and takes whole page bodies.
	All bool
	// Markdown emits Markdown-structured text instead of plain prose.
	Markdown bool
	// KeepChrome disables boilerplate paragraph trimming.
	KeepChrome bool
	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Stats tallies a harvest.
type Stats struct {
	Sources   int // sources attempted
	Harvested int // documents written
	Failed    int // sources that could not be fetched or parsed
	Skipped   int // sources with no prose left after extraction
}

// Build harvests each source into a document on w. Individual source
// failures are logged and counted, not fatal; the error return covers
// context cancellation and write failures only.
func Build(ctx context.Context, sources []string, w DocumentWriter, opts Options) (*Stats, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	detector := boiler.New()
	stats := &Stats{}

	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Sources++

		text, err := harvest(ctx, source, opts)
		if err != nil {
			stats.Failed++
			logger.Warn("source failed", "source", source, "error", err)
			continue
		}

		blocks := Paragraphs(text)
		if !opts.KeepChrome {
			blocks = detector.Trim(blocks)
		}
		if len(blocks) == 0 {
			stats.Skipped++
			logger.Warn("source yielded no prose", "source", source)
			continue
		}

		doc := corpus.Document{
			Text: strings.Join(blocks, "\n"),
			Meta: map[string]json.RawMessage{
				"source": mustJSON(source),
			},
		}
		if err := w.Write(doc); err != nil {
			return stats, fmt.Errorf("writing document for %q: %w", source, err)
		}
		stats.Harvested++
		logger.Debug("source harvested", "source", source, "paragraphs", len(blocks))
	}

	return stats, nil
}

// harvest fetches one source and extracts its text.
func harvest(ctx context.Context, source string, opts Options) (string, error) {
	content, err := Open(ctx, source)
	if err != nil {
		return "", err
	}
	defer content.Close()

	extract := ExtractOptions{
		Selector: opts.Selector,
		All:      opts.All,
		Markdown: opts.Markdown,
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		if u, err := url.Parse(source); err == nil {
			extract.BaseURL = u
		}
	}
	return FromHTML(content, extract)
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err) // strings always marshal
	}
	return b
}
