package config

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/s4mli/umbral/common"
	"gopkg.in/yaml.v2"
)

type Validator interface{ Validate() []error }

// LoadConfig reads the section of configFile at app -> env into config.
func LoadConfig(app, env string, configFile string, config interface{}) error {
	raw, err := ioutil.ReadFile(configFile)
	if err != nil {
		return errors.Wrap(err, "read config")
	}
	var appConfigs map[string]map[string]interface{}
	if err := yaml.Unmarshal(raw, &appConfigs); err != nil {
		return errors.Wrapf(err, "parse %s", configFile)
	}
	configs, ok := appConfigs[app]
	if !ok {
		return errors.Errorf("ensure config is for %s", app)
	}
	envConfig, ok := configs[env]
	if !ok {
		return errors.Errorf("missing config for %s", env)
	}
	c, err := yaml.Marshal(envConfig)
	if err != nil {
		return errors.Wrapf(err, "config for %s", env)
	}
	if err := yaml.Unmarshal(c, config); err != nil {
		return errors.Wrapf(err, "config for %s", env)
	}
	if v, ok := config.(Validator); ok {
		if errs := v.Validate(); len(errs) > 0 {
			return errors.Errorf("config error: \n\t%s", common.ErrorToString(errs))
		}
	}
	return nil
}
