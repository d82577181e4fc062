package handlers

import (
	"medialetter/internal/catalog"
	"medialetter/internal/config"
	"medialetter/internal/email"
	"medialetter/internal/llm"
	"medialetter/internal/newsletter"
	"medialetter/internal/render"
)

// buildService wires the pipeline from the loaded configuration.
func buildService() *newsletter.Service {
	cfg := config.Get()

	source := catalog.NewJellyfinClient(
		cfg.Jellyfin.BaseURL,
		cfg.Jellyfin.APIKey,
		cfg.Newsletter.IncludePosters,
		nil,
	)
	sender := email.NewSMTPSender(email.SMTPOptions{
		Host:        cfg.SMTP.Host,
		Port:        cfg.SMTP.Port,
		Username:    cfg.SMTP.Username,
		Password:    cfg.SMTP.Password,
		UseTLS:      cfg.SMTP.UseTLS,
		SenderEmail: cfg.SMTP.SenderEmail,
		SenderName:  cfg.SMTP.SenderName,
	})

	return newsletter.NewService(llm.NewClient(nil), source, sender, render.New(), cfg)
}
