package main

import (
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"essay-feedback/api/internal/telegram"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot (long polling)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if cfg.TelegramBotToken == "" {
			return errors.New("TELEGRAM_BOT_TOKEN is empty")
		}

		svc, closeFn, err := buildService(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer closeFn()

		bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
		if err != nil {
			return err
		}
		bot.Debug = false
		logger.Info("telegram bot authorized", zap.String("username", bot.Self.UserName))

		r := &telegram.Router{
			Bot:     bot,
			Eval:    svc,
			Log:     logger.Named("telegram"),
			Timeout: cfg.RequestTimeout,
		}
		r.RunPolling(ctx)
		return nil
	},
}
