package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/s4mli/umbral/admin"
	"github.com/s4mli/umbral/cleaner"
	"github.com/s4mli/umbral/config"
	"github.com/s4mli/umbral/logging"
	"github.com/s4mli/umbral/logging/dynamic"
	"github.com/s4mli/umbral/restful"
)

const APP_NAME = "umbral"

type heartbeat struct {
	stop   chan struct{}
	logger logging.Logger
}

func (h *heartbeat) Name() string { return "heartbeat" }
func (h *heartbeat) Stop()        { close(h.stop) }

func (h *heartbeat) run(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for n := 0; ; n++ {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
			h.logger.Tracef("beat %d", n)
			h.logger.Debugf("beat %d", n)
			h.logger.Infof("beat %d", n)
			h.logger.Warnf("beat %d", n)
		}
	}
}

func main() {
	env := os.Getenv(fmt.Sprintf("%s_ENV", strings.ToUpper(APP_NAME)))
	if env == "" {
		env = "development"
	}
	var configFile, levels string
	var every time.Duration
	flag.StringVar(&configFile, "config", "./umbral.yaml", "configuration file to load")
	flag.StringVar(&levels, "set", "", "comma separated name=level overrides applied after loading")
	flag.DurationVar(&every, "every", 5*time.Second, "heartbeat interval")
	flag.Parse()

	handle, err := config.Init(APP_NAME, env, configFile, config.DefaultDeserializers())
	if err != nil {
		logging.DefaultLogger(fmt.Sprintf(" < %s > ", APP_NAME), logging.INFO, 100).Error(err)
		os.Exit(1)
	}
	logger := logging.GetLogger(" < main > ")
	logger.Debugf("running with %s", handle.Config())

	for _, pair := range strings.Split(levels, ",") {
		if name, token, ok := strings.Cut(strings.TrimSpace(pair), "="); ok {
			if lvl, err := logging.ParseLogLevel(token); err != nil {
				logger.Warnf("skip override %s: %s", pair, err.Error())
			} else {
				dynamic.Set(name, lvl)
			}
		}
	}

	hb := &heartbeat{make(chan struct{}), logging.GetLogger(" < heartbeat > ")}
	go hb.run(every)
	cleaner.Register(hb)

	if web := handle.Config().Web; web.Port > 0 {
		api := admin.Register(restful.NewAPI(logging.GetLogger(" < admin > ")), nil)
		go api.Start(web.Port, web.MaxConns)
		cleaner.Register(api)
	}
	cleaner.Run(context.Background(), logger)
}
