// Package useragent recognizes crawlers and scripted clients by their User-Agent.
package useragent

import (
	_ "embed"
	"log/slog"
	"strings"
	"sync"

	"go.elara.ws/pcre"
	"gopkg.in/yaml.v3"
)

//go:embed bots.yml
var botsYAML []byte

// Bot describes a matched automated client.
type Bot struct {
	Regex    string `yaml:"regex"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
}

type regexCache struct {
	compiled map[string]*pcre.Regexp
	mu       sync.RWMutex
}

func (rc *regexCache) get(pattern string) (*pcre.Regexp, error) {
	rc.mu.RLock()
	if regex, ok := rc.compiled[pattern]; ok {
		rc.mu.RUnlock()
		return regex, nil
	}
	rc.mu.RUnlock()

	rc.mu.Lock()
	defer rc.mu.Unlock()
	if regex, ok := rc.compiled[pattern]; ok {
		return regex, nil
	}

	regex, err := pcre.Compile("(?i)" + pattern)
	if err != nil {
		return nil, err
	}
	rc.compiled[pattern] = regex
	return regex, nil
}

type detector struct {
	bots  []Bot
	cache *regexCache
}

var (
	instance *detector
	once     sync.Once
)

func getDetector() *detector {
	once.Do(func() {
		instance = &detector{cache: &regexCache{compiled: make(map[string]*pcre.Regexp)}}
		if err := yaml.Unmarshal(botsYAML, &instance.bots); err != nil {
			slog.Default().Error("Failed to parse bot database", slog.Any("error", err))
		}
	})
	return instance
}

// DetectBot returns the bot matching userAgent, if any.
func DetectBot(userAgent string) (*Bot, bool) {
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return nil, false
	}

	d := getDetector()
	for i := range d.bots {
		regex, err := d.cache.get(d.bots[i].Regex)
		if err != nil {
			continue
		}
		if regex.MatchString(userAgent) {
			bot := d.bots[i]
			return &bot, true
		}
	}
	return nil, false
}

// IsBot reports whether userAgent belongs to a crawler or scripted client.
func IsBot(userAgent string) bool {
	_, ok := DetectBot(userAgent)
	return ok
}
