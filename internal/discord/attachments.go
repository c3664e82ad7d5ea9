package discord

import (
	"fmt"
	"io"
	"net/http"
	"sld/internal/structures"
)

// ErrAttachmentTooLarge is the one import failure that gets its own
// user-visible message.
var ErrAttachmentTooLarge = fmt.Errorf("attachment exceeds the size limit")

// AttachmentFetcher downloads import attachments with a hard byte cap;
// the transfer is aborted once the cap is crossed instead of buffering
// the rest.
type AttachmentFetcher struct {
	http     *http.Client
	maxBytes int64
}

func NewAttachmentFetcher(conf *structures.Config) *AttachmentFetcher {
	return &AttachmentFetcher{
		http:     &http.Client{Timeout: conf.Resolver.Timeout},
		maxBytes: conf.Import.MaxAttachmentBytes,
	}
}

func (f *AttachmentFetcher) Fetch(url string) (string, error) {
	resp, err := f.http.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("attachment fetch status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > f.maxBytes {
		return "", ErrAttachmentTooLarge
	}
	return string(data), nil
}
