package cmd

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// loadConfig reads the INI file at path and validates it. A missing file
// yields errConfigMissing so that no client is ever constructed.
func loadConfig(path string) (*config, error) {
	cfg, err := readConfig(path)
	if err != nil {
		return nil, err
	}
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// readConfig parses and decodes path without validating values.
func readConfig(path string) (*config, error) {
	ok, err := afero.Exists(appFs, path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s %w", path, errConfigMissing)
	}

	v := viper.New()
	v.SetFs(appFs)
	v.SetConfigFile(path)
	v.SetConfigType("ini")
	for k, val := range configDefaults {
		v.SetDefault(k, val)
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	for _, section := range []string{"tenable_io", "tenable_sc"} {
		if !v.InConfig(section) {
			return nil, fmt.Errorf("config %s is missing the [%s] section", path, section)
		}
	}

	cfg := &config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.TenableIO.ScanIDs = splitScanIDs(cfg.TenableIO.ScanIDsRaw)
	return cfg, nil
}

// splitScanIDs turns "100, 101,102" into its non-empty elements.
func splitScanIDs(raw string) []string {
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

var configValidator = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New()
	// Report INI names (tenable_io.access_key) rather than Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
		switch name {
		case "-":
			return "scan_ids"
		case "":
			return f.Name
		}
		return name
	})
	return v
}

// validateConfig checks value ranges and rejects unedited template
// placeholders.
func validateConfig(cfg *config) error {
	err := configValidator.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		key := strings.TrimPrefix(fe.Namespace(), "config.")
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		msgs = append(msgs, fmt.Sprintf("%s: %s", key, rule))
	}
	sort.Strings(msgs)
	return errors.New(strings.Join(msgs, "; "))
}
