package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// notify.command only matters when the desktop backend is on
	_ = v.RegisterValidation("required_if_backend_desktop", func(fl validator.FieldLevel) bool {
		parent, ok := fl.Parent().Interface().(NotifyConfig)
		if !ok {
			return true
		}
		for _, b := range parent.Backends {
			if strings.EqualFold(b, "desktop") {
				return strings.TrimSpace(fl.Field().String()) != ""
			}
		}
		return true
	}, true)
	return v
}

// Validate checks field constraints and that inbox and photo settings are usable.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	for _, b := range c.Notify.Backends {
		if b == "inbox" && strings.TrimSpace(c.Notify.InboxPath) == "" {
			return errors.New("invalid config: notify.inbox_path is required for the inbox backend")
		}
	}
	if fi, err := os.Stat(c.Photo.Dir); err != nil || !fi.IsDir() {
		return fmt.Errorf("invalid config: photo.dir %q is not a directory", c.Photo.Dir)
	}
	return nil
}

func asNotFound(err error, target *viper.ConfigFileNotFoundError) bool {
	if errors.As(err, target) {
		return true
	}
	// SetConfigFile with a missing explicit path surfaces an fs error instead
	return errors.Is(err, os.ErrNotExist)
}
