package logger

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type Fields map[string]any

var log = zerolog.New(os.Stdout).With().Timestamp().Logger()

var sensitiveKeys = map[string]struct{}{
	"password":      {},
	"passwordhash":  {},
	"password_hash": {},
}

func Info(message string, fields Fields) {
	log.Info().Fields(sanitizedFields(fields)).Msg(message)
}

func Warn(message string, fields Fields) {
	log.Warn().Fields(sanitizedFields(fields)).Msg(message)
}

func Error(message string, err error, fields Fields) {
	log.Error().Err(err).Fields(sanitizedFields(fields)).Msg(message)
}

// SanitizePayload deep-copies payload through JSON and masks any field whose
// name looks like a credential, so request bodies can be logged verbatim.
func SanitizePayload(payload any) any {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "<unavailable>"
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "<unavailable>"
	}

	return sanitizeValue(data)
}

func sanitizedFields(fields Fields) map[string]any {
	if fields == nil {
		return map[string]any{}
	}

	out, ok := SanitizePayload(fields).(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return out
}

func sanitizeValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, inner := range typed {
			if isSensitiveKey(key) {
				out[key] = "******"
				continue
			}
			out[key] = sanitizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, sanitizeValue(item))
		}
		return out
	default:
		return value
	}
}

func isSensitiveKey(key string) bool {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), "-", ""))
	_, ok := sensitiveKeys[normalized]
	return ok
}
