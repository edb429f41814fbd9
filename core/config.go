package core

import (
	"strconv"
	"strings"

	"github.com/wansing/kiosk/util"
)

const defaultNewsPageSize = 10

// Config is loaded once at startup and never modified afterwards.
type Config struct {
	BadWords          []string // forbidden comment substrings, matched case-sensitively
	ModerationWarning string   // shown when a comment is rejected
	NewsPageSize      int      // news items per page
}

// LoadConfig reads config/kiosk.ini. The file and each key are optional.
func LoadConfig() Config {

	var config = Config{
		BadWords:          []string{"scoundrel", "rascal"},
		ModerationWarning: "Watch your language!",
		NewsPageSize:      defaultNewsPageSize,
	}

	kv, err := util.Ini("kiosk.ini")
	if err != nil {
		return config
	}

	if v, ok := kv["bad-words"]; ok {
		config.BadWords = nil
		for _, word := range strings.Split(v, ",") {
			if word = strings.TrimSpace(word); word != "" {
				config.BadWords = append(config.BadWords, word)
			}
		}
	}

	if v, ok := kv["moderation-warning"]; ok && v != "" {
		config.ModerationWarning = v
	}

	if v, ok := kv["news-page-size"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.NewsPageSize = n
		}
	}

	return config
}
