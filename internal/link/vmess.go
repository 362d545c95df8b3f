package link

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"proxy-normalizer/internal/domain"
)

const vmessCipher = "auto"

func parseVMess(text, name string) (domain.Proxy, error) {
	_, payload, _ := strings.Cut(strings.TrimSpace(text), "://")
	payload, _, _ = strings.Cut(payload, "#")

	decoded, ok := DecodeBase64Loose(payload)
	if !ok {
		return nil, newParseError("vmess", "decode", "payload is not base64 encoded text", ErrInvalidPayload)
	}
	v, err := decodeJSONObject(decoded)
	if err != nil {
		return nil, newParseError("vmess", "decode", "payload is not a JSON object",
			fmt.Errorf("%w: %v", ErrInvalidPayload, err))
	}

	server := stringField(v, "add")
	if server == "" {
		return nil, newParseError("vmess", "address", "add is empty", ErrMissingField)
	}
	port, err := intField(v, "port")
	if err != nil {
		return nil, newParseError("vmess", "port", "port is missing or malformed", err)
	}
	// a malformed alterId is treated as absent
	alterID, _ := intField(v, "aid")

	network := stringField(v, "net")
	if network == "" {
		network = defaultNetwork
	}

	proxy := domain.Proxy{
		"name":             name,
		"type":             "vmess",
		"server":           bracketHost(server),
		"port":             port,
		"uuid":             stringField(v, "id"),
		"alterId":          alterID,
		"cipher":           vmessCipher,
		"tls":              false,
		"udp":              true,
		"skip-cert-verify": true,
		"network":          network,
	}

	if tlsEnabled(v["tls"]) {
		proxy["tls"] = true
		if sni := stringField(v, "sni"); sni != "" {
			proxy["servername"] = sni
		}
	}

	switch network {
	case "ws":
		opts := map[string]any{}
		if path := stringField(v, "path"); path != "" {
			opts["path"] = path
		}
		if host := stringField(v, "host"); host != "" {
			opts["headers"] = map[string]any{"Host": host}
		}
		if len(opts) > 0 {
			proxy["ws-opts"] = opts
		}
	case "grpc":
		proxy["grpc-opts"] = map[string]any{
			"grpc-service-name": stringField(v, "path"),
		}
	}

	return proxy, nil
}

func tlsEnabled(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "tls" || t == "true"
	}
	return false
}

func stringField(v map[string]any, key string) string {
	switch t := v[key].(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

// intField accepts both JSON numbers and numeric strings; a missing or empty
// value yields 0 and ErrMissingField.
func intField(v map[string]any, key string) (int, error) {
	switch t := v[key].(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n), nil
		}
		f, err := t.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s=%s", ErrInvalidPort, key, t)
		}
		return int(f), nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			break
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("%w: %s=%q", ErrInvalidPort, key, t)
		}
		return n, nil
	case nil:
	default:
		return 0, fmt.Errorf("%w: %s has type %T", ErrInvalidPort, key, t)
	}
	return 0, fmt.Errorf("%w: %s", ErrMissingField, key)
}

// DescribeVMess returns a display name for a vmess link: its "ps" remark, or
// add:port when there is none.
func DescribeVMess(text string) (string, bool) {
	_, payload, _ := strings.Cut(strings.TrimSpace(text), "://")
	decoded, ok := DecodeBase64Loose(payload)
	if !ok {
		return "", false
	}
	v, err := decodeJSONObject(decoded)
	if err != nil {
		return "", false
	}

	if ps := strings.TrimSpace(stringField(v, "ps")); ps != "" {
		return ps, true
	}
	server := stringField(v, "add")
	if server == "" {
		return "", false
	}
	return server + ":" + stringField(v, "port"), true
}
