// Package config loads the pager configuration.
//
// Settings come from three layers, later layers overriding earlier ones:
//
//  1. Built-in defaults (see Default).
//  2. A TOML or YAML file, chosen by extension.
//  3. SCROLLVIEW_* environment variables.
//
// The layers are merged as plain maps by package loader and then decoded
// into a typed Config. Decoding collects every problem it finds, so a
// single Load reports all invalid settings at once:
//
//	cfg, err := config.Load("~/.config/scrollview/config.toml")
//	if errors.Is(err, config.ErrInvalidConfig) {
//		for _, ve := range config.Errors(err) {
//			fmt.Println(ve.Path, ve.Message)
//		}
//	}
//
// An example file:
//
//	[scroll_area]
//	overflow_edge_threshold = { y_start = 2, y_end = 2 }
//	scroll_timeout = "500ms"
//	min_thumb_size = 1
//	keep_mounted = false
//	direction = "ltr"
//	auto_hide = false
//
//	[theme]
//	thumb = "#8a8a8a"
//	thumb_active = "#d0d0d0"
//
//	[logging]
//	level = "info"
//	file = "/tmp/scrollview.log"
//
//	[session]
//	enabled = true
//
// Package watcher reloads the file when it changes on disk.
package config
