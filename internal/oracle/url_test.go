package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJDBCURL(t *testing.T) {
	tests := []struct {
		name   string
		host   string
		port   int
		db     string
		params map[string]string
		want   string
	}{
		{
			name: "no params",
			host: "localhost",
			port: 49153,
			db:   "quarkusdb",
			want: "jdbc:oracle:thin:@localhost:49153/quarkusdb",
		},
		{
			name: "network alias",
			host: "oracle-a1b2c",
			port: Port,
			db:   "quarkusdb",
			want: "jdbc:oracle:thin:@oracle-a1b2c:1521/quarkusdb",
		},
		{
			name:   "params sorted",
			host:   "localhost",
			port:   1521,
			db:     "app",
			params: map[string]string{"oracle.jdbc.timezoneAsRegion": "false", "TNS_ADMIN": "/tmp/tns"},
			want:   "jdbc:oracle:thin:@localhost:1521/app?TNS_ADMIN=/tmp/tns&oracle.jdbc.timezoneAsRegion=false",
		},
		{
			name: "ipv6 host",
			host: "::1",
			port: 1521,
			db:   "app",
			want: "jdbc:oracle:thin:@[::1]:1521/app",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JDBCURL(tt.host, tt.port, tt.db, tt.params))
		})
	}
}
