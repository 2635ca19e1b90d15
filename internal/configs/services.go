package configs

import (
	"fmt"

	"github.com/spf13/viper"
)

// Category groups services the way the report orders them.
type Category struct {
	Name     string   `mapstructure:"name"`
	Services []string `mapstructure:"services"`
}

// ServiceCatalog maps deployable services to their source repositories.
type ServiceCatalog struct {
	Categories []Category        `mapstructure:"categories"`
	Repos      map[string]string `mapstructure:"repos"`
}

// Ordered returns all services in category order.
func (c ServiceCatalog) Ordered() []string {
	var services []string
	for _, cat := range c.Categories {
		services = append(services, cat.Services...)
	}
	return services
}

// Repo returns the source repository for a service, "unknown" when unmapped.
func (c ServiceCatalog) Repo(service string) string {
	if repo, ok := c.Repos[service]; ok {
		return repo
	}
	return "unknown"
}

// DefaultCatalog is the built-in platform service map.
func DefaultCatalog() ServiceCatalog {
	return ServiceCatalog{
		Categories: []Category{
			{Name: "oms", Services: []string{"oms-api", "oms-consumer", "oms-scheduler", "oms-web", "oms-worker"}},
			{Name: "health", Services: []string{"health-api", "health-celery-beat", "health-celery-worker", "health-consumer", "health-s3-nginx"}},
			{Name: "partner", Services: []string{"partner-api", "partner-consumer", "partner-scheduler", "partner-web",
				"partner-worker-high", "partner-worker-low", "partner-worker-medium"}},
			{Name: "occ", Services: []string{"occ-api", "occ-web"}},
			{Name: "web", Services: []string{"bifrost"}},
		},
		Repos: map[string]string{
			"oms-api": "oms", "oms-consumer": "oms", "oms-scheduler": "oms",
			"oms-worker": "oms", "oms-web": "oms-web",
			"health-api": "health-api", "health-celery-beat": "health-api",
			"health-celery-worker": "health-api", "health-consumer": "health-api",
			"health-s3-nginx": "health-api",
			"partner-api":     "partner-api", "partner-consumer": "partner-api",
			"partner-scheduler": "partner-api", "partner-web": "partner-web",
			"partner-worker-high": "partner-api", "partner-worker-low": "partner-api",
			"partner-worker-medium": "partner-api",
			"occ-api":               "occ", "occ-web": "occ-web",
			"bifrost": "bifrost",
		},
	}
}

// LoadCatalog reads a service catalog override from a YAML file.
func LoadCatalog(path string) (ServiceCatalog, error) {
	v := viper.New()
	v.SetConfigFile(path)

	var catalog ServiceCatalog
	if err := v.ReadInConfig(); err != nil {
		return catalog, fmt.Errorf("read catalog: %w", err)
	}
	if err := v.Unmarshal(&catalog); err != nil {
		return catalog, fmt.Errorf("unmarshal catalog: %w", err)
	}
	if len(catalog.Categories) == 0 {
		return catalog, fmt.Errorf("catalog %s defines no categories", path)
	}
	return catalog, nil
}
