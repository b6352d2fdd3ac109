package main

import (
	"fmt"
	"log"

	"github.com/vpyshma/baraholka-bot/bot"
	"github.com/vpyshma/baraholka-bot/core/cmd"
)

func main() {
	err := cmd.Run(cmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (cmd.ConfigCarrier, error) {
			return bot.LoadConfig(path)
		},
		Bootstrap: func(cfg cmd.ConfigCarrier) (cmd.TelegramApp, error) {
			appCfg, ok := cfg.(*bot.Config)
			if !ok {
				return nil, fmt.Errorf("unexpected config type %T", cfg)
			}
			return bot.New(appCfg)
		},
	})
	if err != nil {
		log.Fatalf("baraholka-bot: %v", err)
	}
}
