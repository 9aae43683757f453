package mqtt

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	coremetrics "github.com/kilianp07/ridership/core/metrics"
	"github.com/kilianp07/ridership/infra/logger"
)

const (
	statusOnline  = "online"
	statusOffline = "offline"
)

// Publisher sends run summaries to an MQTT broker. It implements
// metrics.MetricsSink so it can be configured as a sink.
//
// Summaries go to <prefix>/runs/<scenario>. The retained <prefix>/status
// topic carries "online" while connected and "offline" as last will.
type Publisher struct {
	cli        pahoClient
	prefix     string
	qos        byte
	retain     bool
	maxRetries int
	backoff    time.Duration
	log        logger.Logger
}

// NewPublisher connects to the broker described by cfg.
func NewPublisher(cfg Config) (*Publisher, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	log := logger.New("mqtt_publisher")
	p := &Publisher{
		prefix:     strings.TrimSuffix(cfg.TopicPrefix, "/"),
		qos:        cfg.QoS,
		retain:     cfg.Retain,
		maxRetries: cfg.MaxRetries,
		backoff:    time.Duration(cfg.BackoffMS) * time.Millisecond,
		log:        log,
	}
	opts.SetWill(p.statusTopic(), statusOffline, cfg.QoS, true)
	opts.OnConnect = func(c paho.Client) {
		log.Infof("MQTT connected")
		c.Publish(p.statusTopic(), p.qos, true, statusOnline)
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	p.cli = c
	return p, nil
}

// RunTopic returns the topic a scenario's summaries are published on.
func (p *Publisher) RunTopic(scenario string) string {
	return p.prefix + "/runs/" + topicSegment(scenario)
}

func (p *Publisher) statusTopic() string { return p.prefix + "/status" }

// RecordRun publishes the summary as JSON, retrying with exponential backoff.
func (p *Publisher) RecordRun(s coremetrics.RunSummary) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	topic := p.RunTopic(s.Scenario)
	var publishErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		token := p.cli.Publish(topic, p.qos, p.retain, payload)
		token.Wait()
		publishErr = token.Error()
		if publishErr == nil {
			p.log.Debugf("published run %s to %s", s.RunID, topic)
			return nil
		}
		p.log.Errorf("publish attempt %d failed: %v", attempt+1, publishErr)
		if attempt < p.maxRetries {
			time.Sleep(p.backoff * time.Duration(1<<attempt))
		}
	}
	return fmt.Errorf("publish %s: %w", topic, publishErr)
}

// Close marks the publisher offline and disconnects.
func (p *Publisher) Close() error {
	if p.cli == nil || !p.cli.IsConnected() {
		return nil
	}
	token := p.cli.Publish(p.statusTopic(), p.qos, true, statusOffline)
	token.WaitTimeout(time.Second)
	p.cli.Disconnect(250)
	return nil
}

// topicSegment replaces characters that are not allowed in a topic level.
func topicSegment(s string) string {
	if s == "" {
		return "default"
	}
	return strings.NewReplacer("/", "_", "+", "_", "#", "_").Replace(s)
}
