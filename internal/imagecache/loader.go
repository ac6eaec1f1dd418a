package imagecache

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"time"

	"resty.dev/v3"
)

// HTTPLoader treats an image as ready once its header decodes.
type HTTPLoader struct {
	client *resty.Client
}

func NewHTTPLoader(timeout time.Duration) *HTTPLoader {
	client := resty.New().
		SetTimeout(timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5)).
		SetHeader("Accept", "image/png,image/jpeg,image/gif,image/*;q=0.8")
	return &HTTPLoader{client: client}
}

func (l *HTTPLoader) Load(ctx context.Context, src string) error {
	resp, err := l.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(src)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("HTTP error: %s", resp.Status())
	}
	if _, _, err := image.DecodeConfig(resp.Body); err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	return nil
}

func (l *HTTPLoader) Close() error {
	return l.client.Close()
}
