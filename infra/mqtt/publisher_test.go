package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/ridership/core/metrics"
	"github.com/kilianp07/ridership/core/montecarlo"
)

type published struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

// mockClient implements pahoClient and paho.Client for tests.
type mockClient struct {
	opts         *paho.ClientOptions
	published    []published
	publishErrs  []error
	disconnected bool
}

func (m *mockClient) IsConnected() bool { return !m.disconnected }
func (m *mockClient) Connect() paho.Token {
	if m.opts != nil && m.opts.OnConnect != nil {
		m.opts.OnConnect(m)
	}
	return &dummyToken{}
}
func (m *mockClient) Disconnect(uint) { m.disconnected = true }
func (m *mockClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	var b []byte
	switch v := payload.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	}
	m.published = append(m.published, published{topic, qos, retained, b})
	if len(m.publishErrs) > 0 {
		err := m.publishErrs[0]
		m.publishErrs = m.publishErrs[1:]
		return &dummyToken{err: err}
	}
	return &dummyToken{}
}
func (m *mockClient) Subscribe(string, byte, paho.MessageHandler) paho.Token { return &dummyToken{} }
func (m *mockClient) SubscribeMultiple(map[string]byte, paho.MessageHandler) paho.Token {
	return &dummyToken{}
}
func (m *mockClient) Unsubscribe(...string) paho.Token        { return &dummyToken{} }
func (m *mockClient) AddRoute(string, paho.MessageHandler)    {}
func (m *mockClient) OptionsReader() paho.ClientOptionsReader { return paho.ClientOptionsReader{} }
func (m *mockClient) IsConnectionOpen() bool                  { return !m.disconnected }

type dummyToken struct{ err error }

func (d dummyToken) Wait() bool                     { return true }
func (d dummyToken) WaitTimeout(time.Duration) bool { return true }
func (d dummyToken) Done() <-chan struct{}          { ch := make(chan struct{}); close(ch); return ch }
func (d dummyToken) Error() error                   { return d.err }

func withMockClient(t *testing.T, mc *mockClient) {
	t.Helper()
	newMQTTClient = func(o *paho.ClientOptions) pahoClient { mc.opts = o; return mc }
	t.Cleanup(func() {
		newMQTTClient = func(opts *paho.ClientOptions) pahoClient { return paho.NewClient(opts) }
	})
}

func sampleSummary() coremetrics.RunSummary {
	return coremetrics.RunSummary{
		RunID:       "run-1",
		Scenario:    "rainy",
		Trials:      100,
		Interval:    montecarlo.Interval{Lower: 10, Mean: 11, Upper: 12},
		ValueAtRisk: 9,
	}
}

func TestPublisherRecordRun(t *testing.T) {
	mc := &mockClient{}
	withMockClient(t, mc)
	pub, err := NewPublisher(Config{Broker: "tcp://localhost:1883", QoS: 1})
	require.NoError(t, err)

	require.Len(t, mc.published, 1)
	assert.Equal(t, "ridership/status", mc.published[0].topic)
	assert.Equal(t, "online", string(mc.published[0].payload))
	assert.True(t, mc.opts.WillEnabled)
	assert.Equal(t, "ridership/status", mc.opts.WillTopic)
	assert.Equal(t, "offline", string(mc.opts.WillPayload))

	require.NoError(t, pub.RecordRun(sampleSummary()))
	require.Len(t, mc.published, 2)
	msg := mc.published[1]
	assert.Equal(t, "ridership/runs/rainy", msg.topic)
	assert.Equal(t, byte(1), msg.qos)
	var got coremetrics.RunSummary
	require.NoError(t, json.Unmarshal(msg.payload, &got))
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, 11.0, got.Interval.Mean)
}

func TestPublisherRetry(t *testing.T) {
	mc := &mockClient{}
	withMockClient(t, mc)
	pub, err := NewPublisher(Config{Broker: "tcp://localhost:1883", MaxRetries: 1, BackoffMS: 1})
	require.NoError(t, err)
	mc.publishErrs = []error{errors.New("net fail"), nil}

	require.NoError(t, pub.RecordRun(sampleSummary()))
	assert.Len(t, mc.published, 3)
}

func TestPublisherRetryExhausted(t *testing.T) {
	mc := &mockClient{}
	withMockClient(t, mc)
	pub, err := NewPublisher(Config{Broker: "tcp://localhost:1883", MaxRetries: 1, BackoffMS: 1})
	require.NoError(t, err)
	fail := errors.New("net fail")
	mc.publishErrs = []error{fail, fail}

	err = pub.RecordRun(sampleSummary())
	assert.ErrorIs(t, err, fail)
}

func TestPublisherClose(t *testing.T) {
	mc := &mockClient{}
	withMockClient(t, mc)
	pub, err := NewPublisher(Config{Broker: "tcp://localhost:1883", TopicPrefix: "cta/"})
	require.NoError(t, err)

	require.NoError(t, pub.Close())
	last := mc.published[len(mc.published)-1]
	assert.Equal(t, "cta/status", last.topic)
	assert.Equal(t, "offline", string(last.payload))
	assert.True(t, last.retained)
	assert.True(t, mc.disconnected)
	assert.NoError(t, pub.Close())
}

func TestRunTopicSanitises(t *testing.T) {
	p := &Publisher{prefix: "ridership"}
	assert.Equal(t, "ridership/runs/a_b_c_", p.RunTopic("a/b+c#"))
	assert.Equal(t, "ridership/runs/default", p.RunTopic(""))
}

func TestNewPublisherRequiresBroker(t *testing.T) {
	_, err := NewPublisher(Config{})
	assert.Error(t, err)
}
