package rmqconsumer

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"file-exchange-api/config"
	"file-exchange-api/internal/infrastructure/mq"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	defer func() { os.Stdout = old }()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	_ = w.Close()
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	_ = r.Close()
	return buf.String()
}

func Test_delivery_Table(t *testing.T) {
	type tc struct {
		name       string
		routingKey string
		event      mq.Event
		wantOut    string
	}
	cases := []tc{
		{
			name:       "verification mail",
			routingKey: mq.KindVerificationEmail,
			event: mq.Event{
				Kind:      mq.KindVerificationEmail,
				Recipient: "a@x.com",
				Subject:   "Verify Your Email",
				Body:      "Click to verify: http://localhost:8000/verify-email/tok",
			},
			wantOut: "Action=VerificationMailSent To=a@x.com Subject=\"Verify Your Email\" Body=\"Click to verify: http://localhost:8000/verify-email/tok\"\n",
		},
		{
			name:       "upload notice",
			routingKey: mq.KindUploadNotice,
			event: mq.Event{
				Kind:      mq.KindUploadNotice,
				Recipient: "client@x.com",
				Subject:   "New file available",
				Body:      "report.docx is ready for download",
			},
			wantOut: "Action=UploadNoticeSent To=client@x.com Subject=\"New file available\" Body=\"report.docx is ready for download\"\n",
		},
		{
			name:       "unknown kind -> empty action",
			routingKey: "password_reset",
			event:      mq.Event{Kind: "password_reset"},
			wantOut:    "Action= To= Subject=\"\" Body=\"\"\n",
		},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(tt.event)
			require.NoError(t, err)

			c := &Consumer{}
			out := captureStdout(t, func() {
				msg := amqp091.Delivery{RoutingKey: tt.routingKey, Body: body}
				require.NoError(t, c.delivery(msg))
			})
			require.Equal(t, tt.wantOut, out)
		})
	}
}

func Test_delivery_BadPayload(t *testing.T) {
	c := &Consumer{}
	err := c.delivery(amqp091.Delivery{RoutingKey: mq.KindVerificationEmail, Body: []byte("{not json")})
	require.Error(t, err)
}

func TestConnect_InvalidDSN(t *testing.T) {
	l := zap.NewNop()
	c := New(config.MQ{}, l, nil)

	err := c.Connect("amqp://bad:://dsn")
	require.Error(t, err)
	require.Nil(t, c.chConsume)
	require.Nil(t, c.conn)
}
