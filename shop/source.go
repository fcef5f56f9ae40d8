package shop

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/mytheresa/storefront/models"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// CatalogSource provides the static product list.
type CatalogSource interface {
	Fetch(ctx context.Context) ([]models.Product, error)
	Location() string
}

// NewSource returns an HTTP source for http(s) URLs and a file source
// for anything else.
func NewSource(location string, client *http.Client) CatalogSource {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		if client == nil {
			client = http.DefaultClient
		}
		return &HTTPSource{URL: location, Client: client}
	}
	return &FileSource{Path: location}
}

type FileSource struct {
	Path string
}

func (s *FileSource) Fetch(ctx context.Context) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	return decodeCatalog(data, s.Path)
}

func (s *FileSource) Location() string {
	return s.Path
}

type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	name := s.URL
	if u, err := url.Parse(s.URL); err == nil {
		name = u.Path
	}
	return decodeCatalog(data, name)
}

func (s *HTTPSource) Location() string {
	return s.URL
}

// yamlProduct mirrors models.Product for YAML documents, which carry
// prices as plain numbers.
type yamlProduct struct {
	ID          int64    `yaml:"id"`
	Name        string   `yaml:"name"`
	Price       float64  `yaml:"price"`
	Image       string   `yaml:"image"`
	Colors      []string `yaml:"colors"`
	Rating      float64  `yaml:"rating"`
	Description string   `yaml:"description"`
}

func decodeCatalog(data []byte, name string) ([]models.Product, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		var records []yamlProduct
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("decode yaml catalog: %w", err)
		}
		products := make([]models.Product, len(records))
		for i, r := range records {
			products[i] = models.Product{
				ID:          r.ID,
				Name:        r.Name,
				Price:       decimal.NewFromFloat(r.Price),
				Image:       r.Image,
				Colors:      r.Colors,
				Rating:      r.Rating,
				Description: r.Description,
			}
		}
		return products, nil
	default:
		var products []models.Product
		if err := json.Unmarshal(data, &products); err != nil {
			return nil, fmt.Errorf("decode json catalog: %w", err)
		}
		return products, nil
	}
}
