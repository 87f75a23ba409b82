package rmqconsumer

import (
	"io"
	"os"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cloudnest-api/config"
	"cloudnest-api/internal/infrastructure/mq"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	require.NoError(t, w.Close())
	os.Stdout = orig

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestConsumer_Delivery(t *testing.T) {
	c := New(config.MQ{}, zap.NewNop(), nil)

	tests := []struct {
		routingKey string
		body       string
		want       string
	}{
		{mq.ActionFolderCreated, `{"detail":{"folder":"docs"}}`, "Action=FolderCreated EventBody={\"detail\":{\"folder\":\"docs\"}}\n"},
		{mq.ActionFolderRenamed, `{}`, "Action=FolderRenamed EventBody={}\n"},
		{mq.ActionFolderDeleted, `{}`, "Action=FolderDeleted EventBody={}\n"},
		{mq.ActionFileUploaded, `{}`, "Action=FileUploaded EventBody={}\n"},
		{mq.ActionFileMoved, `{}`, "Action=FileMoved EventBody={}\n"},
		{mq.ActionReconcileRequired, `{"detail":{"op":"folder.rename"}}`, "Action=ReconcileRequired EventBody={\"detail\":{\"op\":\"folder.rename\"}}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.routingKey, func(t *testing.T) {
			out := captureStdout(t, func() {
				err := c.delivery(amqp091.Delivery{
					RoutingKey: tt.routingKey,
					Body:       []byte(tt.body),
				})
				assert.NoError(t, err)
			})

			assert.Equal(t, tt.want, out)
		})
	}
}
