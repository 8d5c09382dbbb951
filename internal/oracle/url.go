package oracle

import (
	"net"
	"sort"
	"strconv"
	"strings"
)

// JDBCURL builds a thin-driver service-name URL:
//
//	jdbc:oracle:thin:@<host>:<port>/<databaseName>[?k=v&...]
//
// Parameters are appended unescaped in key order.
func JDBCURL(host string, port int, databaseName string, params map[string]string) string {
	var b strings.Builder
	b.WriteString("jdbc:oracle:thin:@")
	b.WriteString(net.JoinHostPort(host, strconv.Itoa(port)))
	b.WriteString("/")
	b.WriteString(databaseName)

	if len(params) == 0 {
		return b.String()
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for i, k := range keys {
		if i == 0 {
			b.WriteString("?")
		} else {
			b.WriteString("&")
		}
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(params[k])
	}

	return b.String()
}
