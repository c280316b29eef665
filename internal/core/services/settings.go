package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/formats"
	"github.com/custodia-labs/innergraph/internal/core/ports/driven"
	"github.com/custodia-labs/innergraph/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// LoadSettings reads settings from store, falling back to defaults for
// missing or invalid values.
func LoadSettings(store driven.ConfigStore) domain.Settings {
	s, _ := NewSettingsService(store).Get()
	return *s
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Client: domain.ClientSettings{
			Name:    s.getClient(defaults.Client.Name),
			Version: s.getString(domain.KeyClientVersion, defaults.Client.Version),
			HL:      s.getString(domain.KeyClientHL, defaults.Client.HL),
			GL:      s.getString(domain.KeyClientGL, defaults.Client.GL),
		},
		Transport: domain.TransportSettings{
			BaseURL:           s.getString(domain.KeyBaseURL, defaults.Transport.BaseURL),
			Timeout:           time.Duration(s.getInt(domain.KeyTimeoutSeconds, int(defaults.Transport.Timeout/time.Second))) * time.Second,
			RequestsPerSecond: s.getFloat(domain.KeyRequestsPerSecond, defaults.Transport.RequestsPerSecond),
			Burst:             s.getInt(domain.KeyBurst, defaults.Transport.Burst),
		},
		Formats: domain.FormatDefaults{
			Quality:   s.getQuality(defaults.Formats.Quality),
			Container: s.configStore.GetString(domain.KeyFormatContainer),
			Codec:     s.configStore.GetString(domain.KeyFormatCodec),
		},
		DataDir: s.configStore.GetString(domain.KeyDataDir),
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	values := []struct {
		key   string
		value any
	}{
		{domain.KeyClientName, settings.Client.Name},
		{domain.KeyClientVersion, settings.Client.Version},
		{domain.KeyClientHL, settings.Client.HL},
		{domain.KeyClientGL, settings.Client.GL},
		{domain.KeyBaseURL, settings.Transport.BaseURL},
		{domain.KeyTimeoutSeconds, int(settings.Transport.Timeout / time.Second)},
		{domain.KeyRequestsPerSecond, settings.Transport.RequestsPerSecond},
		{domain.KeyBurst, settings.Transport.Burst},
		{domain.KeyFormatQuality, settings.Formats.Quality},
		{domain.KeyFormatContainer, settings.Formats.Container},
		{domain.KeyFormatCodec, settings.Formats.Codec},
		{domain.KeyDataDir, settings.DataDir},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return s.configStore.Save()
}

// Set validates and persists a single key.
func (s *SettingsService) Set(key, value string) error {
	parsed, err := parseSetting(key, strings.TrimSpace(value))
	if err != nil {
		return err
	}
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return s.configStore.Save()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

func parseSetting(key, value string) (any, error) {
	switch key {
	case domain.KeyClientName:
		if !validClient(value) {
			return nil, fmt.Errorf("%w: unknown client %q", domain.ErrInvalidInput, value)
		}
		return value, nil
	case domain.KeyTimeoutSeconds, domain.KeyBurst:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		return n, nil
	case domain.KeyRequestsPerSecond:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("%w: %s must be a positive number", domain.ErrInvalidInput, key)
		}
		return f, nil
	case domain.KeyFormatQuality:
		if err := formats.ValidateQuality(value); err != nil {
			return nil, err
		}
		return value, nil
	case domain.KeyClientVersion, domain.KeyClientHL, domain.KeyClientGL, domain.KeyBaseURL,
		domain.KeyFormatContainer, domain.KeyFormatCodec, domain.KeyDataDir:
		return value, nil
	default:
		return nil, fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

func validClient(name string) bool {
	switch name {
	case domain.ClientWeb, domain.ClientMusic, domain.ClientKids, domain.ClientAndroid:
		return true
	}
	return false
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	raw, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	var val float64
	switch v := raw.(type) {
	case float64:
		val = v
	case int64:
		val = float64(v)
	case int:
		val = float64(v)
	case string:
		val, _ = strconv.ParseFloat(v, 64)
	}
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getClient(defaultVal string) string {
	val := s.configStore.GetString(domain.KeyClientName)
	if !validClient(val) {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getQuality(defaultVal string) string {
	val := s.configStore.GetString(domain.KeyFormatQuality)
	if val == "" || formats.ValidateQuality(val) != nil {
		return defaultVal
	}
	return val
}
