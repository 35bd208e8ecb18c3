package providers

import (
	"fmt"

	"github.com/gookit/validate"

	"codetrack/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return v.Errors
	}

	// slices of structs are not walked by the struct validator
	for i := range c.conf.Sources.Gfg.Proxies {
		pv := validate.Struct(&c.conf.Sources.Gfg.Proxies[i])
		if !pv.Validate() {
			return fmt.Errorf("sources.gfg.proxies[%d]: %w", i, pv.Errors)
		}
	}
	return nil
}
