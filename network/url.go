package network

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// IsDataURL returns true if the URL is a data URL.
func IsDataURL(urlStr string) bool {
	return strings.HasPrefix(strings.ToLower(urlStr), "data:")
}

// IsHTTPURL returns true for http and https URLs.
func IsHTTPURL(urlStr string) bool {
	lower := strings.ToLower(urlStr)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// IsFileURL returns true for file URLs.
func IsFileURL(urlStr string) bool {
	return strings.HasPrefix(strings.ToLower(urlStr), "file://")
}

// IsLocal reports whether location names a local file, either as a plain
// path or as a file URL.
func IsLocal(location string) bool {
	return !IsDataURL(location) && !IsHTTPURL(location)
}

// DataURL represents a parsed data URL.
type DataURL struct {
	MediaType string
	Charset   string
	Base64    bool
	Data      []byte
}

// ParseDataURL parses a data URL and returns its components.
// Format: data:[<mediatype>][;base64],<data>
func ParseDataURL(urlStr string) (*DataURL, error) {
	if !IsDataURL(urlStr) {
		return nil, fmt.Errorf("not a data URL")
	}

	content := urlStr[5:]
	commaIdx := strings.Index(content, ",")
	if commaIdx == -1 {
		return nil, fmt.Errorf("invalid data URL: missing comma")
	}
	metadata, data := content[:commaIdx], content[commaIdx+1:]

	result := &DataURL{MediaType: "text/plain"}
	for i, part := range strings.Split(metadata, ";") {
		switch {
		case part == "base64":
			result.Base64 = true
		case strings.HasPrefix(strings.ToLower(part), "charset="):
			result.Charset = strings.ToLower(part[8:])
		case i == 0 && part != "":
			result.MediaType = strings.ToLower(part)
		}
	}

	if result.Base64 {
		decoded, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 data: %w", err)
		}
		result.Data = decoded
		return result, nil
	}
	decoded, err := url.PathUnescape(data)
	if err != nil {
		return nil, fmt.Errorf("failed to URL-decode data: %w", err)
	}
	result.Data = []byte(decoded)
	return result, nil
}

// FilePath returns the local path a file URL or plain path refers to.
func FilePath(location string) (string, error) {
	if !IsFileURL(location) {
		return location, nil
	}
	u, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("invalid file URL: %w", err)
	}
	if u.Host != "" && u.Host != "localhost" {
		return "", fmt.Errorf("file URL %s names a remote host", location)
	}
	return u.Path, nil
}

// GuessContentType guesses a media type from the extension of a path or URL.
func GuessContentType(location string) string {
	if u, err := url.Parse(location); err == nil && u.Path != "" {
		location = u.Path
	}
	switch strings.ToLower(path.Ext(location)) {
	case ".html", ".htm":
		return "text/html"
	case ".xhtml":
		return "application/xhtml+xml"
	case ".svg":
		return "image/svg+xml"
	case ".yaml", ".yml":
		return "application/yaml"
	case ".xml", ".xsd", ".xsl", ".rss", ".atom", ".plist":
		return "application/xml"
	}
	return "application/octet-stream"
}
