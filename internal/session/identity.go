package session

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/jasicon/jasreg/internal/registration"
)

// envIdentity holds the identity overrides read from the environment.
type envIdentity struct {
	DisplayName string `env:"JASREG_DISPLAY_NAME"`
	Email       string `env:"JASREG_EMAIL"`
	UniqueID    string `env:"JASREG_UID"`
}

// IdentityFromEnv overlays JASREG_DISPLAY_NAME, JASREG_EMAIL and JASREG_UID
// onto base. Unset variables keep the base values.
func IdentityFromEnv(base registration.Identity) (registration.Identity, error) {
	return identityFromEnv(base, env.Options{})
}

func identityFromEnv(base registration.Identity, opts env.Options) (registration.Identity, error) {
	var e envIdentity
	if err := env.ParseWithOptions(&e, opts); err != nil {
		return base, fmt.Errorf("parse identity env: %w", err)
	}
	if e.DisplayName != "" {
		base.DisplayName = e.DisplayName
	}
	if e.Email != "" {
		base.Email = e.Email
	}
	if e.UniqueID != "" {
		base.UniqueID = e.UniqueID
	}
	return base, nil
}
