package config

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Debug bool       `yaml:"debug"`
	Http  HttpConfig `yaml:"http"`
	Site  SiteConfig `yaml:"site"`
}

type HttpConfig struct {
	Listen          string        `yaml:"listen"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// SiteConfig points at the on-disk layout of the site.
type SiteConfig struct {
	Templates     string        `yaml:"templates"`
	Index         string        `yaml:"index"`
	Static        string        `yaml:"static"`
	StaticPrefix  string        `yaml:"static_prefix"`
	CacheDuration time.Duration `yaml:"cache_duration"`
}

const TemplateExt = ".html"

func NewConfig() *Config {
	return &Config{
		Http: HttpConfig{
			Listen:          "127.0.0.1:5000",
			ShutdownTimeout: 10 * time.Second,
		},
		Site: SiteConfig{
			Templates:     "./templates",
			Index:         "index.html",
			Static:        "./static",
			StaticPrefix:  "/static",
			CacheDuration: 10 * time.Second,
		},
	}
}

// IndexName returns the index template name as the view engine knows it.
func (c *SiteConfig) IndexName() string {
	return strings.TrimSuffix(c.Index, TemplateExt)
}

func (c *Config) Validate() error {
	if c.Http.Listen == "" {
		return fmt.Errorf("http.listen must not be empty")
	}
	if !strings.HasPrefix(c.Site.StaticPrefix, "/") {
		return fmt.Errorf("site.static_prefix must start with '/', got %q", c.Site.StaticPrefix)
	}
	if !strings.HasSuffix(c.Site.Index, TemplateExt) || c.Site.IndexName() == "" {
		return fmt.Errorf("site.index must be a %s file, got %q", TemplateExt, c.Site.Index)
	}
	if strings.ContainsAny(c.Site.Index, `/\`) {
		return fmt.Errorf("site.index must be a file name inside site.templates, got %q", c.Site.Index)
	}
	if c.Site.Templates == "" || c.Site.Static == "" {
		return fmt.Errorf("site.templates and site.static are required")
	}
	return nil
}
