// Package timezone keeps the application time zone used for timestamps and date parsing.
//
// Call Init once at startup with the configured APP_TIMEZONE:
//
//	timezone.Init(cfg.App.Timezone)
//	now := timezone.Now()
//	formatted := timezone.Format(now, constant.DateFormat)
//
// Until Init runs every helper works in UTC. Use IANA names such as "UTC" or "Asia/Jakarta".
package timezone
