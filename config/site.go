package config

import "time"

const (
	DefaultPageSize       = 6
	DefaultCarouselSize   = 3
	DefaultMailTimeout    = 10 * time.Second
	DefaultRequestTimeout = 30 * time.Second
)

// Site holds the settings the public listings and the contact form depend on.
type Site struct {
	PageSize       int
	CarouselSize   int
	OperatorEmail  string
	FromEmail      string
	MailTimeout    time.Duration
	RequestTimeout time.Duration
}

func NewSite(config map[string]string) Site {
	site := Site{
		PageSize:       GetInt(config, "BLOG_PAGE_SIZE", DefaultPageSize),
		CarouselSize:   GetInt(config, "CAROUSEL_SIZE", DefaultCarouselSize),
		FromEmail:      GetString(config, "RESEND_FROM_EMAIL", ""),
		MailTimeout:    GetDuration(config, "MAIL_TIMEOUT_SECONDS", DefaultMailTimeout),
		RequestTimeout: GetDuration(config, "REQUEST_TIMEOUT_SECONDS", DefaultRequestTimeout),
	}
	site.OperatorEmail = GetString(config, "OPERATOR_EMAIL", site.FromEmail)

	if site.PageSize < 1 {
		site.PageSize = DefaultPageSize
	}
	if site.CarouselSize < 0 {
		site.CarouselSize = DefaultCarouselSize
	}
	if site.MailTimeout <= 0 {
		site.MailTimeout = DefaultMailTimeout
	}
	if site.RequestTimeout <= 0 {
		site.RequestTimeout = DefaultRequestTimeout
	}
	return site
}
