// Package config loads svxdash settings from a TOML file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/svxdash/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
//	log_file = "/var/log/svxlink"
//	log_lines = 30
//	date_formats = ["2006-01-02 15:04:05", "02.01.2006 15:04:05", "2006/01/02 15:04:05"]
//	timezone = "Europe/Bucharest"
//	api_bind = "127.0.0.1:8080"
//	dtmf_control = "/dev/shm/svxlink_dtmf_ctrl"
//	ptt_control = "/dev/shm/svxlink_ptt_ctrl"
//	service_name = "svxlink"
//	nats_url = ""
//	nats_subject_prefix = "svxdash"
//	poll_seconds = 2
//	log_level = "info"
//	app_log = "~/.local/state/svxdash/svxdash.log"
//
// Every field is optional. date_formats uses Go reference-time layouts and is
// tried in order, so list the most specific layout first. timezone names the
// zone the reflector writes its timestamps in; empty means the local zone.
// An empty nats_url disables announcements.
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files, invalid
// TOML and unknown time zones. A missing file is not an error.
//
// The returned Config is a plain value. Config.Engine hands the relevant part
// to talker.New, so nothing downstream reads global settings.
package config
