package network

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"unicode/utf8"

	"golang.org/x/net/html/charset"

	"github.com/chrisuehlinger/xmlnode/xmlnode"
)

// Resource is the raw content of a location.
type Resource struct {
	Location    string
	Content     []byte
	ContentType string // media type, without parameters
	Charset     string
	Cached      bool
}

// IsHTML reports whether the resource should be parsed as HTML.
func (r *Resource) IsHTML() bool {
	return IsHTMLContentType(r.ContentType)
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger for fetch events.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Loader reads resources from local files, file URLs, data URLs and HTTP.
// Remote resources are cached for the life of the Loader.
type Loader struct {
	client *Client
	logger *slog.Logger

	mu    sync.Mutex
	cache map[string]*Resource
}

// NewLoader creates a resource loader. A nil client gets the defaults.
func NewLoader(client *Client, opts ...LoaderOption) *Loader {
	if client == nil {
		client = NewClient()
	}
	l := &Loader{
		client: client,
		logger: slog.New(slog.DiscardHandler),
		cache:  make(map[string]*Resource),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the resource at location.
func (l *Loader) Load(ctx context.Context, location string) (*Resource, error) {
	switch {
	case IsDataURL(location):
		return loadDataURL(location)
	case IsHTTPURL(location):
		return l.loadHTTP(ctx, location)
	}
	return loadFile(location)
}

func loadDataURL(location string) (*Resource, error) {
	dataURL, err := ParseDataURL(location)
	if err != nil {
		return nil, err
	}
	return &Resource{
		Location:    location,
		Content:     dataURL.Data,
		ContentType: dataURL.MediaType,
		Charset:     dataURL.Charset,
	}, nil
}

func loadFile(location string) (*Resource, error) {
	path, err := FilePath(location)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Resource{
		Location:    location,
		Content:     content,
		ContentType: GuessContentType(path),
	}, nil
}

func (l *Loader) loadHTTP(ctx context.Context, location string) (*Resource, error) {
	l.mu.Lock()
	cached, ok := l.cache[location]
	l.mu.Unlock()
	if ok {
		res := *cached
		res.Cached = true
		return &res, nil
	}

	resp, err := l.client.Get(ctx, location)
	if err != nil {
		l.logger.Debug("fetch failed", "url", location, "err", err)
		return nil, err
	}
	mediaType, cs := ParseContentType(resp.ContentType)
	if mediaType == "application/octet-stream" || mediaType == "text/plain" {
		if guess := GuessContentType(resp.URL); guess != "application/octet-stream" {
			mediaType = guess
		}
	}
	l.logger.Debug("fetched", "url", location, "status", resp.StatusCode, "type", mediaType, "bytes", len(resp.Body))

	res := &Resource{
		Location:    location,
		Content:     resp.Body,
		ContentType: mediaType,
		Charset:     cs,
	}
	l.mu.Lock()
	l.cache[location] = res
	l.mu.Unlock()
	return res, nil
}

// LoadDocument loads location and parses it as HTML when its content type
// says so (or asHTML is set), and as XML otherwise.
func (l *Loader) LoadDocument(ctx context.Context, location string, asHTML bool, opts ...xmlnode.Option) (*xmlnode.Document, error) {
	res, err := l.Load(ctx, location)
	if err != nil {
		return nil, &xmlnode.Error{Op: "load", Kind: xmlnode.ErrParse, Err: err}
	}
	if asHTML || res.IsHTML() {
		// HTML carries its encoding in the header or a meta tag; XML in its
		// own declaration, which the XML parser reads.
		var r io.Reader = bytes.NewReader(res.Content)
		if len(res.Content) > 0 && (res.Charset != "" || !utf8.Valid(res.Content)) {
			r, err = charset.NewReader(r, contentTypeHeader(res))
			if err != nil {
				return nil, &xmlnode.Error{Op: "load", Kind: xmlnode.ErrParse, Err: fmt.Errorf("%s: %w", location, err)}
			}
		}
		return xmlnode.ParseHTML(r, opts...)
	}
	return xmlnode.ParseBytes(res.Content, opts...)
}

func contentTypeHeader(res *Resource) string {
	if res.Charset == "" {
		return res.ContentType
	}
	return res.ContentType + "; charset=" + res.Charset
}
