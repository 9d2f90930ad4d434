package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/ruhienterprises/careers-api/internal/config"
	"github.com/tidwall/gjson"
)

// ErrObjectExists is returned when an upload would overwrite an existing key.
var ErrObjectExists = errors.New("storage object already exists")

type UploadOptions struct {
	ContentType  string
	CacheControl string // seconds, sent as max-age
	Upsert       bool
}

type StorageObject struct {
	Name      string
	Size      int64
	CreatedAt time.Time
}

type StorageServiceInterface interface {
	Upload(ctx context.Context, key string, body io.Reader, opts UploadOptions) error
	PublicURL(key string) string
	ObjectKey(publicURL string) (string, bool)
	Download(ctx context.Context, key string) ([]byte, string, error)
	List(ctx context.Context, prefix string) ([]StorageObject, error)
	Remove(ctx context.Context, keys []string) error
}

// StorageService talks to a hosted object-storage REST API laid out as
// /storage/v1/object/{bucket}/{key}.
type StorageService struct {
	Client   *resty.Client
	BaseURL  string
	Bucket   string
	PageSize int
}

func NewStorageService(cfg *config.StorageConfig) *StorageService {
	client := resty.New().
		SetBaseURL(cfg.URL).
		SetTimeout(60*time.Second).
		SetHeader("Authorization", "Bearer "+cfg.ServiceKey).
		SetHeader("apikey", cfg.ServiceKey)
	return &StorageService{
		Client:   client,
		BaseURL:  cfg.URL,
		Bucket:   cfg.Bucket,
		PageSize: 100,
	}
}

func (s *StorageService) objectPath(key string) string {
	return fmt.Sprintf("/storage/v1/object/%s/%s", url.PathEscape(s.Bucket), url.PathEscape(key))
}

func (s *StorageService) Upload(ctx context.Context, key string, body io.Reader, opts UploadOptions) error {
	req := s.Client.R().
		SetContext(ctx).
		SetHeader("x-upsert", fmt.Sprintf("%t", opts.Upsert)).
		SetBody(body)
	if opts.ContentType != "" {
		req.SetHeader("Content-Type", opts.ContentType)
	}
	if opts.CacheControl != "" {
		req.SetHeader("Cache-Control", "max-age="+opts.CacheControl)
	}

	resp, err := req.Post(s.objectPath(key))
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	if resp.IsError() {
		if isDuplicate(resp) {
			return fmt.Errorf("upload %s: %w", key, ErrObjectExists)
		}
		return fmt.Errorf("upload %s: %s", key, errorMessage(resp))
	}
	return nil
}

func (s *StorageService) PublicURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.BaseURL, url.PathEscape(s.Bucket), url.PathEscape(key))
}

// ObjectKey maps a public URL from PublicURL back to its key. URLs on any
// other host, bucket or path are refused.
func (s *StorageService) ObjectKey(publicURL string) (string, bool) {
	rest, ok := strings.CutPrefix(publicURL, s.PublicURL(""))
	if !ok {
		return "", false
	}
	key, err := url.PathUnescape(rest)
	if err != nil || !ValidObjectKey(key) {
		return "", false
	}
	return key, true
}

var objectKeyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidObjectKey reports whether key is a flat object name with no path
// segments or query.
func ValidObjectKey(key string) bool {
	return len(key) <= 255 && objectKeyPattern.MatchString(key)
}

// Download fetches an object by key from the configured bucket. The request
// path is always relative to BaseURL.
func (s *StorageService) Download(ctx context.Context, key string) ([]byte, string, error) {
	if !ValidObjectKey(key) {
		return nil, "", fmt.Errorf("download %q: invalid object key", key)
	}
	resp, err := s.Client.R().SetContext(ctx).Get(s.objectPath(key))
	if err != nil {
		return nil, "", fmt.Errorf("download %s: %w", key, err)
	}
	if resp.IsError() {
		return nil, "", fmt.Errorf("download %s: %s", key, errorMessage(resp))
	}
	return resp.Body(), resp.Header().Get("Content-Type"), nil
}

// List pages through every object under prefix.
func (s *StorageService) List(ctx context.Context, prefix string) ([]StorageObject, error) {
	var objects []StorageObject
	for offset := 0; ; offset += s.PageSize {
		resp, err := s.Client.R().
			SetContext(ctx).
			SetBody(map[string]any{
				"prefix": prefix,
				"limit":  s.PageSize,
				"offset": offset,
				"sortBy": map[string]string{"column": "created_at", "order": "asc"},
			}).
			Post(fmt.Sprintf("/storage/v1/object/list/%s", url.PathEscape(s.Bucket)))
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("list objects: %s", errorMessage(resp))
		}

		page := gjson.ParseBytes(resp.Body()).Array()
		for _, item := range page {
			objects = append(objects, StorageObject{
				Name:      item.Get("name").String(),
				Size:      item.Get("metadata.size").Int(),
				CreatedAt: item.Get("created_at").Time(),
			})
		}
		if len(page) < s.PageSize {
			return objects, nil
		}
	}
}

func (s *StorageService) Remove(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	resp, err := s.Client.R().
		SetContext(ctx).
		SetBody(map[string][]string{"prefixes": keys}).
		Delete(fmt.Sprintf("/storage/v1/object/%s", url.PathEscape(s.Bucket)))
	if err != nil {
		return fmt.Errorf("remove objects: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("remove objects: %s", errorMessage(resp))
	}
	return nil
}

func isDuplicate(resp *resty.Response) bool {
	if resp.StatusCode() == http.StatusConflict {
		return true
	}
	body := resp.String()
	return gjson.Get(body, "statusCode").String() == "409" ||
		strings.EqualFold(gjson.Get(body, "error").String(), "Duplicate")
}

func errorMessage(resp *resty.Response) string {
	body := resp.String()
	if msg := gjson.Get(body, "message").String(); msg != "" {
		return fmt.Sprintf("status %d: %s", resp.StatusCode(), msg)
	}
	return fmt.Sprintf("status %d", resp.StatusCode())
}
