// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/anisan-cli/bgmsync/constant"
	"github.com/anisan-cli/bgmsync/key"
	"github.com/anisan-cli/bgmsync/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.App + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.BangumiUsername, "", "Bangumi username owning the collection.\nResolved from the access token when empty")
	register(key.BangumiPrivate, true, "Add newly collected subjects as private collections")
	register(key.BangumiAccessToken, "", "Bangumi access token (https://next.bgm.tv/demo/access-token).\nFalls back to the system keyring, see \"bgmsync auth login\"")
	register(key.BangumiGenres, "动画|anime", "Case-insensitive regular expression matched against the series genres.\nSeries that do not match are skipped")
	register(key.BangumiAPIURL, "https://api.bgm.tv", "Base URL of the Bangumi API")
	register(key.BangumiCache, true, "Cache Bangumi subject and episode listings on disk")
	register(key.EmbyHost, "", "Media server address used by config-driven syncs, e.g. http://127.0.0.1:8096")
	register(key.EmbyAPIKey, "", "Media server API key")
	register(key.EmbyUserID, "", "Media server user id whose items are read")
	register(key.NetworkProxy, "", "Outbound proxy applied to every catalog client.\nSupports http, https and socks5 URLs")
	register(key.NetworkTimeout, 30, "Per-request timeout in seconds")
	register(key.ServeAddress, "127.0.0.1:58000", "Listen address of \"bgmsync serve\"")
	register(key.LogsWrite, false, "Also write logs to a rotating file")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Check for a newer release when running \"bgmsync version\"")
	register(key.IconsVariant, "plain", "Icons used in sync reports.\nAvailable options are: emoji, nerd, plain")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(style.Purple),
	"blue":     style.Fg(style.Blue),
	"cyan":     style.Fg(style.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(style.Green)(b)
			}
			return style.Fg(style.Red)(b)
		case string:
			return style.Fg(style.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
